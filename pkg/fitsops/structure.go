package fitsops

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joshuapare/fitskit/fits"
	"github.com/joshuapare/fitskit/internal/format"
	"github.com/joshuapare/fitskit/pkg/header"
)

// StructRow describes one header of a file.
type StructRow struct {
	Header   int
	Naxis    int
	Axes     []int64
	Position int64
	Datasum  int64
}

// Structure scans every header of f and returns one row per header.
// Datasums are only present when f was opened with Checksum set or reads
// from a stream.
func Structure(f *fits.File) ([]StructRow, error) {
	hdrs, err := f.ReadAll()
	if err != nil {
		return nil, err
	}
	rows := make([]StructRow, 0, len(hdrs))
	for _, h := range hdrs {
		rows = append(rows, structRow(h))
	}
	return rows, nil
}

func structRow(h *header.Header) StructRow {
	row := StructRow{
		Header:   h.Number,
		Position: h.Position,
		Datasum:  h.Datasum,
	}
	row.Naxis = int(intKeyword(h.Keywords, format.KeyNaxis))
	for i := 1; i <= row.Naxis; i++ {
		row.Axes = append(row.Axes, intKeyword(h.Keywords, format.KeyNaxis+strconv.Itoa(i)))
	}
	return row
}

func intKeyword(s *header.Store, path string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s.Value(path)), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// WriteStructure writes rows as a fixed-width table. The column header
// is sized for the axes of the first row.
func WriteStructure(w io.Writer, rows []StructRow) error {
	if len(rows) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("# HDR  NAXIS  ")
	for i := 1; i <= rows[0].Naxis; i++ {
		fmt.Fprintf(&b, "NAXIS%d  ", i)
	}
	b.WriteString("        POS         DATASUM\n")
	b.WriteString(strings.Repeat("-", 70))
	b.WriteByte('\n')

	for _, r := range rows {
		fmt.Fprintf(&b, "%3d  %3d    ", r.Header, r.Naxis)
		for _, n := range r.Axes {
			fmt.Fprintf(&b, "%6d   ", n)
		}
		if r.Naxis > 0 {
			fmt.Fprintf(&b, "%10d    %12d", r.Position, r.Datasum)
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
