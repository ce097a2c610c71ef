// Package header models one FITS header: its location in the stream, its
// raw card bytes, the data area accounting and the keyword store.
package header

import (
	"github.com/joshuapare/fitskit/internal/format"
	"github.com/joshuapare/fitskit/internal/infer"
	"github.com/joshuapare/fitskit/pkg/types"
)

// NoDatasum marks a header whose data area was skipped without a checksum.
const NoDatasum int64 = -1

// Header is one header-data unit as seen by the scanner.
type Header struct {
	// Number is the zero-based header number within the file.
	Number int
	// Position is the byte offset of the header's first block.
	Position int64
	// Size is the number of header bytes, a multiple of the block size.
	Size int64
	// DataSize is the unpadded size of the data area in bytes.
	DataSize int64
	// DataBlocks is the number of blocks the data area occupies.
	DataBlocks int64
	// Datasum is the CRC-32 of the data area, or NoDatasum.
	Datasum int64
	// Raw holds the header blocks as read. When Selected is set it holds
	// only the selected card.
	Raw      []byte
	Selected bool

	Keywords *Store
	parsed   bool
}

// New returns an empty header at position.
func New(number int, position int64) *Header {
	return &Header{
		Number:   number,
		Position: position,
		Datasum:  NoDatasum,
		Keywords: NewStore(),
	}
}

// NumCards returns the number of cards in Raw.
func (h *Header) NumCards() int {
	return len(h.Raw) / format.CardSize
}

// Card returns card i of Raw, decoded.
func (h *Header) Card(i int) string {
	return format.CardAt(h.Raw, i)
}

// Cards returns every card of Raw, decoded.
func (h *Header) Cards() []string {
	out := make([]string, h.NumCards())
	for i := range out {
		out[i] = h.Card(i)
	}
	return out
}

// SetDataSize recomputes DataSize and DataBlocks from the keywords.
func (h *Header) SetDataSize() error {
	size, blocks, err := h.Keywords.SetDataSize()
	if err != nil {
		return types.Errorf(types.ErrKindMalformed, err, "header %d", h.Number)
	}
	h.DataSize, h.DataBlocks = size, blocks
	return nil
}

// Parsed reports whether Parse has materialized every card.
func (h *Header) Parsed() bool {
	return h.parsed
}

// Parse decodes every card of Raw into a fresh keyword store. The header is
// left unchanged if a card cannot be decoded. A header scanned for a
// selected key only holds that card, so only that card is decoded and the
// data accounting is kept.
func (h *Header) Parse() error {
	store := NewStore()
	for i, n := 0, h.NumCards(); i < n; i++ {
		c, err := format.ParseCard(h.Card(i))
		if err != nil {
			return types.Errorf(types.ErrKindMalformed, err, "header %d card %d", h.Number, i)
		}
		e, ok := EntryFromCard(c, i)
		if !ok {
			continue
		}
		if err := store.UpdateKeyword(e, false); err != nil {
			return err
		}
		if c.Kind == format.CardEnd {
			break
		}
	}
	if h.Selected {
		for _, path := range store.Keys() {
			kw, _ := store.Keyword(path)
			e := types.Entry{Path: path, Value: kw.Value, Comment: kw.Comment, Commentary: kw.Commentary, Index: -1}
			if err := h.Keywords.UpdateKeyword(e, true); err != nil {
				return err
			}
		}
		h.parsed = true
		return nil
	}
	size, blocks, err := store.SetDataSize()
	if err != nil {
		return types.Errorf(types.ErrKindMalformed, err, "header %d", h.Number)
	}
	h.Keywords = store
	h.DataSize, h.DataBlocks = size, blocks
	h.parsed = true
	return nil
}

// Name returns the EXTNAME of the header, or "".
func (h *Header) Name() string {
	return h.Keywords.Value(format.KeyExtname)
}

// EntryFromCard converts a decoded card to a store entry at index. Blank
// cards yield false.
func EntryFromCard(c format.Card, index int) (types.Entry, bool) {
	e := types.Entry{Path: c.Key, Index: index}
	switch c.Kind {
	case format.CardBlank:
		return e, false
	case format.CardEnd:
		e.Value = types.Value{Type: types.TypeChar}
	case format.CardFreeText:
		e.Value = types.Value{Type: types.TypeChar, Text: c.Value, Seq: []string{c.Value}}
	case format.CardCommentary:
		e.Value = types.Value{Type: types.TypeChar, Text: c.Value}
		e.Commentary = true
	default:
		e.Value = infer.Infer(c.Value, c.Quoted)
		e.Comment = c.Comment
	}
	return e, true
}
