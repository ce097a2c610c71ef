// Package reader scans FITS streams block by block. Only the keywords that
// drive header and data accounting are decoded during the scan; the rest of
// the cards are kept raw and decoded on demand by header.Header.Parse.
package reader

import (
	"errors"
	"io"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/joshuapare/fitskit/internal/format"
	"github.com/joshuapare/fitskit/pkg/header"
	"github.com/joshuapare/fitskit/pkg/types"
)

// Options controls a Scanner.
type Options struct {
	// Key selects one keyword. A header holding it keeps only that card in
	// Raw. Empty or END selects nothing.
	Key string
	// HeaderOnly stops the scanner from accounting for data areas; each
	// header is assumed to follow the previous one directly.
	HeaderOnly bool
	// Checksum forces reading data areas through a CRC-32 instead of
	// seeking over them.
	Checksum bool
	// Logger receives debug events. Nil disables logging.
	Logger *zerolog.Logger
}

var watchRx = regexp.MustCompile(`^(SIMPLE|EXTEND|NAXIS[0-9]*|BITPIX|XTENSION|END|PCOUNT|GCOUNT)$`)

// Scanner reads successive headers from a stream.
type Scanner struct {
	r      io.Reader
	opts   Options
	log    zerolog.Logger
	offset int64
	number int
	done   bool
	block  []byte
}

// NewScanner returns a scanner reading from r.
func NewScanner(r io.Reader, opts Options) *Scanner {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	if opts.Key != "" {
		opts.Key = header.NormalizePath(opts.Key)
	}
	if opts.Key == format.KeyEnd {
		opts.Key = ""
	}
	return &Scanner{
		r:     r,
		opts:  opts,
		log:   log.With().Str("component", "scanner").Logger(),
		block: make([]byte, format.BlockSize),
	}
}

// Offset returns the number of bytes consumed so far.
func (s *Scanner) Offset() int64 {
	return s.offset
}

// Next returns the next header, or io.EOF when the stream holds no further
// header. A stream that ends inside a block is an I/O error.
func (s *Scanner) Next() (*header.Header, error) {
	if s.done {
		return nil, io.EOF
	}
	h, err := s.scanHeader()
	if err != nil {
		s.done = true
		return nil, err
	}
	if !s.opts.HeaderOnly {
		if err := s.skipData(h); err != nil {
			s.done = true
			return nil, err
		}
	}
	s.number++
	s.log.Debug().
		Int("header", h.Number).
		Int64("position", h.Position).
		Int64("datasize", h.DataSize).
		Int64("datasum", h.Datasum).
		Msg("header scanned")
	return h, nil
}

// readBlock fills s.block. It returns io.EOF when no byte was read.
func (s *Scanner) readBlock() error {
	n, err := io.ReadFull(s.r, s.block)
	switch {
	case err == nil:
		s.offset += int64(n)
		return nil
	case errors.Is(err, io.EOF):
		return io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		s.offset += int64(n)
		return types.Errorf(types.ErrKindIO, format.ErrTruncated, "block at offset %d holds %d bytes", s.offset-int64(n), n)
	default:
		return types.Errorf(types.ErrKindIO, err, "read block at offset %d", s.offset)
	}
}

func (s *Scanner) scanHeader() (*header.Header, error) {
	start := s.offset
	if err := s.readBlock(); err != nil {
		if errors.Is(err, format.ErrTruncated) && !format.HasSignature(s.block) {
			// trailing bytes after the last data area
			return nil, io.EOF
		}
		return nil, err
	}
	if !format.HasSignature(s.block) {
		s.log.Debug().Int64("offset", start).Msg("no header signature, stopping")
		return nil, io.EOF
	}

	h := header.New(s.number, start)
	raw := make([]byte, 0, format.BlockSize)
	var selected []byte
	card := 0
	for {
		end, sel, err := s.scanBlock(h, &card)
		if err != nil {
			return nil, err
		}
		if sel != nil && selected == nil {
			selected = sel
		}
		raw = append(raw, s.block...)
		if end {
			break
		}
		if err := s.readBlock(); err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debug().Int("header", h.Number).Msg("stream ended before END card")
				break
			}
			return nil, err
		}
	}

	h.Size = s.offset - start
	h.Raw = raw
	if selected != nil {
		h.Raw = selected
		h.Selected = true
	}
	if err := h.SetDataSize(); err != nil {
		return nil, err
	}
	return h, nil
}

// scanBlock decodes the watched cards of the current block into h. card is
// the running card number within the header.
func (s *Scanner) scanBlock(h *header.Header, card *int) (end bool, selected []byte, err error) {
	for i := 0; i < format.CardsPerBlock; i++ {
		rawCard := s.block[i*format.CardSize : (i+1)*format.CardSize]
		pos := *card
		*card++
		if rawCard[0] == ' ' {
			continue
		}
		text := format.DecodeLatin1(rawCard)
		key := format.Keyword(text)
		isSelected := s.opts.Key != "" && key == s.opts.Key
		if !isSelected && !watchRx.MatchString(key) {
			continue
		}
		c, perr := format.ParseCard(text)
		if perr != nil {
			return false, nil, types.Errorf(types.ErrKindMalformed, perr, "header %d card %d", h.Number, pos)
		}
		if e, ok := header.EntryFromCard(c, pos); ok {
			if uerr := h.Keywords.UpdateKeyword(e, false); uerr != nil {
				return false, nil, uerr
			}
		}
		if isSelected && selected == nil {
			selected = append([]byte(nil), rawCard...)
		}
		if c.Kind == format.CardEnd {
			return true, selected, nil
		}
	}
	return false, selected, nil
}
