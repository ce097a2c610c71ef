package printer

import (
	"encoding/xml"
	"strings"
)

// XMLDeclaration opens every XML document written by this package.
const XMLDeclaration = `<?xml version="1.0" encoding="ISO-8859-1"?>`

// escape makes s safe for XML character data and attribute values.
// Control characters that XML 1.0 does not allow become '?'.
func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(strings.Map(xmlChar, s)))
	return b.String()
}

func xmlChar(r rune) rune {
	if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
		return '?'
	}
	return r
}

func pad(indent string, level int) string {
	if indent == "" || level <= 0 {
		return ""
	}
	return strings.Repeat(indent, level)
}
