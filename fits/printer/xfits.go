package printer

import (
	"fmt"
	"strings"

	"github.com/joshuapare/fitskit/internal/format"
	"github.com/joshuapare/fitskit/pkg/header"
)

// XFitsStylesheet is the processing instruction of XFits documents.
const XFitsStylesheet = `<?xml-stylesheet type="text/xml" href="XMLmenu.xsl"?>`

// XFitsDocument renders hdrs as a complete XFits document.
func XFitsDocument(hdrs []*header.Header, indent string) []string {
	lines := []string{XMLDeclaration, XFitsStylesheet, "<XFits>"}
	for _, h := range hdrs {
		lines = append(lines, XFits(h, 1, indent)...)
	}
	return append(lines, "</XFits>")
}

// XFits renders one header as a <HEADER> element at nesting level.
//
// Keywords appear in position order. Consecutive HIERARCH keywords share
// the elements of their common path prefix: only the segments that differ
// from the previous keyword are closed and reopened. Consecutive
// occurrences of a free-text keyword share one element with one text line
// per occurrence.
func XFits(h *header.Header, level int, indent string) []string {
	s := h.Keywords
	lines := []string{fmt.Sprintf(`%s<HEADER number="%d" position="%d" datasize="%d">`,
		pad(indent, level), h.Number, h.Position, h.DataSize)}
	level++

	var open []string
	openText := ""
	closeGroups := func(keep int) {
		for len(open) > keep {
			last := open[len(open)-1]
			open = open[:len(open)-1]
			lines = append(lines, pad(indent, level+len(open))+"</"+last+">")
		}
	}
	closeText := func() {
		if openText != "" {
			lines = append(lines, pad(indent, level)+"</"+openText+">")
			openText = ""
		}
	}

	_ = s.Each(func(_ int, path string, occurrence int) error {
		kw, _ := s.Keyword(path)
		if format.IsFreeText(path) {
			closeGroups(0)
			if openText != path {
				closeText()
				lines = append(lines, pad(indent, level)+"<"+path+">")
				openText = path
			}
			lines = append(lines, pad(indent, level+1)+escape(strings.TrimSpace(occurrenceText(kw, occurrence))))
			return nil
		}
		closeText()

		segs := strings.Fields(path)
		groups := segs[:len(segs)-1]
		closeGroups(commonPrefix(open, groups))
		for _, g := range groups[len(open):] {
			lines = append(lines, pad(indent, level+len(open))+"<"+g+">")
			open = append(open, g)
		}

		name := segs[len(segs)-1]
		depth := level + len(open)
		lines = append(lines,
			pad(indent, depth)+"<"+name+">",
			pad(indent, depth+1)+"<Value>"+escape(kw.Value.Text)+"</Value>",
			pad(indent, depth+1)+"<Comment>"+escape(kw.Comment)+"</Comment>",
			pad(indent, depth)+"</"+name+">",
		)
		return nil
	})
	closeText()
	closeGroups(0)

	level--
	return append(lines, pad(indent, level)+"</HEADER>")
}

func commonPrefix(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
