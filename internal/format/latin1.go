package format

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/fitskit/internal/buf"
)

// DecodeLatin1 converts raw header bytes to a string. Every byte maps to one
// rune, so decoding never fails.
func DecodeLatin1(b []byte) string {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

// EncodeLatin1 converts s back to header bytes. Runes outside Latin-1 are
// replaced.
func EncodeLatin1(s string) []byte {
	out, err := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return out
}

// CardAt returns card i of a raw header buffer, decoded.
func CardAt(raw []byte, i int) string {
	if i < 0 {
		return ""
	}
	card, ok := buf.Slice(raw, i*CardSize, CardSize)
	if !ok {
		return ""
	}
	return DecodeLatin1(card)
}
