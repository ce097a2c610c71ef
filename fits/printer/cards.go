package printer

import (
	"strings"

	"github.com/joshuapare/fitskit/internal/format"
	"github.com/joshuapare/fitskit/pkg/header"
)

// FITSCards renders the keywords of h as 80-column cards in position
// order, then END, then blank cards up to the block boundary. The result
// always fills whole blocks.
func FITSCards(h *header.Header) []string {
	s := h.Keywords
	var cards []string
	_ = s.Each(func(_ int, path string, occurrence int) error {
		if path == format.KeyEnd {
			return nil
		}
		kw, _ := s.Keyword(path)
		cards = append(cards, renderKeyword(kw, occurrence))
		return nil
	})
	cards = append(cards, format.EndCard())
	for i := format.BlankCards(len(cards)); i > 0; i-- {
		cards = append(cards, format.BlankCard())
	}
	return cards
}

func renderKeyword(kw header.Keyword, occurrence int) string {
	switch {
	case format.IsFreeText(kw.Path):
		return format.RenderText(kw.Path, occurrenceText(kw, occurrence))
	case kw.Commentary:
		return format.RenderText(kw.Path, kw.Value.Text)
	case strings.Contains(kw.Path, header.PathSeparator):
		return format.RenderHierarch(kw.Path, kw.Value.Text, kw.Comment, kw.Value.Quoted)
	default:
		return format.RenderCard(kw.Path, kw.Value.Text, kw.Comment, kw.Value.Quoted)
	}
}

func occurrenceText(kw header.Keyword, occurrence int) string {
	if occurrence < len(kw.Value.Seq) {
		return kw.Value.Seq[occurrence]
	}
	return ""
}
