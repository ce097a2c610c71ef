package reader

import (
	"errors"
	"hash/crc32"
	"io"

	"github.com/joshuapare/fitskit/internal/format"
	"github.com/joshuapare/fitskit/pkg/header"
	"github.com/joshuapare/fitskit/pkg/types"
)

// skipData advances past the data area of h. Without a checksum request a
// seekable stream is skipped with a relative seek; otherwise the data bytes
// are read through a CRC-32 (IEEE) and the block padding is discarded.
func (s *Scanner) skipData(h *header.Header) error {
	h.Datasum = header.NoDatasum
	size := h.DataSize
	if size <= 0 {
		return nil
	}
	padded := format.AlignBlock(size)

	if !s.opts.Checksum {
		if seeker, ok := s.r.(io.Seeker); ok {
			if _, err := seeker.Seek(padded, io.SeekCurrent); err == nil {
				s.offset += padded
				return nil
			}
			s.log.Debug().Int("header", h.Number).Msg("seek failed, reading data through")
		}
	}

	sum := crc32.NewIEEE()
	n, err := io.CopyN(sum, s.r, size)
	s.offset += n
	if err != nil {
		return types.Errorf(types.ErrKindIO, dataErr(err), "header %d data area: read %d of %d bytes", h.Number, n, size)
	}
	h.Datasum = int64(sum.Sum32())

	n, err = io.CopyN(io.Discard, s.r, padded-size)
	s.offset += n
	if err != nil && !errors.Is(err, io.EOF) {
		return types.Errorf(types.ErrKindIO, err, "header %d data padding", h.Number)
	}
	return nil
}

func dataErr(err error) error {
	if errors.Is(err, io.EOF) {
		return format.ErrTruncated
	}
	return err
}
