package printer

import (
	"fmt"

	"github.com/joshuapare/fitskit/internal/format"
	"github.com/joshuapare/fitskit/pkg/header"
)

// VOTableDocument renders hdrs as a VOTable 1.1 document with one RESOURCE
// per header.
func VOTableDocument(hdrs []*header.Header, source, creator, indent string) []string {
	lines := []string{
		XMLDeclaration,
		`<VOTABLE version="1.1">`,
		pad(indent, 1) + `<INFO name="Creator" value="` + escape(creator) + `"/>`,
		pad(indent, 1) + `<INFO name="Version" value="` + escape(Version) + `"/>`,
		pad(indent, 1) + `<INFO name="Compatibility" value="FITS"/>`,
		pad(indent, 1) + "<DESCRIPTION>",
		pad(indent, 2) + "VOTable file created from FITS file " + escape(source),
		pad(indent, 1) + "</DESCRIPTION>",
	}
	for _, h := range hdrs {
		lines = append(lines, VOTable(h, 1, indent)...)
	}
	return append(lines, "</VOTABLE>")
}

// VOTable renders one header as a <RESOURCE> element at nesting level:
// position and data size as INFO elements, one PARAM per keyword
// occurrence, and a TABLE stub linking the data area when there is one.
func VOTable(h *header.Header, level int, indent string) []string {
	s := h.Keywords
	open := fmt.Sprintf(`<RESOURCE id="%d"`, h.Number)
	if name := h.Name(); name != "" {
		open += ` name="` + escape(name) + `"`
	}
	lines := []string{pad(indent, level) + open + ` type="meta">`}
	level++
	lines = append(lines,
		fmt.Sprintf(`%s<INFO name="position" value="%d"/>`, pad(indent, level), h.Position),
		fmt.Sprintf(`%s<INFO name="datasize" value="%d"/>`, pad(indent, level), h.DataSize),
	)

	_ = s.Each(func(_ int, path string, occurrence int) error {
		kw, _ := s.Keyword(path)
		value, comment := kw.Value.Text, kw.Comment
		if format.IsFreeText(path) {
			value, comment = occurrenceText(kw, occurrence), ""
		}
		lines = append(lines,
			fmt.Sprintf(`%s<PARAM name="%s" value="%s" datatype="%s">`,
				pad(indent, level), escape(path), escape(value), kw.Type.Datatype()),
			pad(indent, level+1)+"<DESCRIPTION>"+escape(comment)+"</DESCRIPTION>",
			pad(indent, level)+"</PARAM>",
		)
		return nil
	})

	if h.DataSize != 0 {
		lines = append(lines,
			pad(indent, level)+`<TABLE name="data">`,
			pad(indent, level+1)+`<FIELD name="image" type="link" arraysize="[]" datatype="integer">`,
			fmt.Sprintf(`%s<LINK href="cid:%d"/>`, pad(indent, level+2), h.Number),
			pad(indent, level+1)+"</FIELD>",
			pad(indent, level)+"</TABLE>",
		)
	}
	level--
	return append(lines, pad(indent, level)+"</RESOURCE>")
}
