package header

import (
	"strconv"
	"strings"

	"github.com/joshuapare/fitskit/internal/buf"
	"github.com/joshuapare/fitskit/internal/format"
	"github.com/joshuapare/fitskit/pkg/types"
)

// SetDataSize recomputes the data area size from BITPIX, NAXIS, NAXISn,
// PCOUNT and GCOUNT:
//
//	size   = |BITPIX| * GCOUNT * (PCOUNT + NAXIS1 * ... * NAXISn) / 8
//	blocks = ceil(size / 2880)
//
// A header with NAXIS = 0 has no axis product. Missing keywords default to
// 0, except GCOUNT which defaults to 1. Negative counts and sizes that do
// not fit in an int64 are malformed; the cached values are then left as
// they were.
func (s *Store) SetDataSize() (size, blocks int64, err error) {
	naxis := s.intValue(format.KeyNaxis, 0)
	pcount := s.intValue(format.KeyPcount, 0)
	gcount := s.intValue(format.KeyGcount, 1)
	if naxis < 0 || pcount < 0 || gcount < 0 {
		return 0, 0, types.Errorf(types.ErrKindMalformed, nil,
			"negative count (NAXIS=%d PCOUNT=%d GCOUNT=%d)", naxis, pcount, gcount)
	}

	var product int64
	if naxis > 0 {
		axes := make([]int64, naxis)
		for i := range axes {
			key := format.KeyNaxis + strconv.Itoa(i+1)
			if axes[i] = s.intValue(key, 0); axes[i] < 0 {
				return 0, 0, types.Errorf(types.ErrKindMalformed, nil, "negative %s=%d", key, axes[i])
			}
		}
		var ok bool
		if product, ok = buf.Product(axes...); !ok {
			return 0, 0, overflow()
		}
	}

	bits := s.intValue(format.KeyBitpix, 0)
	if bits < 0 {
		bits = -bits
	}
	elems, ok := buf.AddOverflowSafe(pcount, product)
	if !ok {
		return 0, 0, overflow()
	}
	total, ok := buf.Product(bits, gcount, elems)
	if !ok {
		return 0, 0, overflow()
	}

	s.dataSize = total / 8
	s.dataBlocks = format.Blocks(s.dataSize)
	return s.dataSize, s.dataBlocks, nil
}

func overflow() error {
	return types.Errorf(types.ErrKindMalformed, nil, "data area size overflows")
}

// DataSize returns the values cached by the last SetDataSize.
func (s *Store) DataSize() (size, blocks int64) {
	return s.dataSize, s.dataBlocks
}

func (s *Store) intValue(path string, def int64) int64 {
	l := s.leaf(path)
	if l == nil {
		return def
	}
	text := strings.TrimSpace(l.Value.Text)
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return int64(f)
	}
	return def
}
