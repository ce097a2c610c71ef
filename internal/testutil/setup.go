// Package testutil builds synthetic FITS streams for tests.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/joshuapare/fitskit/internal/format"
)

// HDU describes one synthetic header-data unit.
type HDU struct {
	// Cards are rendered cards without END.
	Cards []string
	// Data is written after the header and zero-padded to a block.
	Data []byte
}

// Card renders a standard keyword card. Values starting with a quote are
// rendered as strings.
func Card(key, value, comment string) string {
	if len(value) > 1 && value[0] == '\'' {
		return format.RenderCard(key, value[1:len(value)-1], comment, true)
	}
	return format.RenderCard(key, value, comment, false)
}

// Primary returns the mandatory cards of a primary header.
func Primary(bitpix int, axes ...int) []string {
	cards := []string{
		Card("SIMPLE", "T", "conforms to FITS standard"),
		Card("BITPIX", fmt.Sprint(bitpix), "bits per data value"),
		Card("NAXIS", fmt.Sprint(len(axes)), "number of axes"),
	}
	for i, n := range axes {
		cards = append(cards, Card(fmt.Sprintf("NAXIS%d", i+1), fmt.Sprint(n), ""))
	}
	return cards
}

// Image returns the mandatory cards of an IMAGE extension.
func Image(bitpix int, axes ...int) []string {
	cards := []string{
		Card("XTENSION", "'IMAGE'", "image extension"),
		Card("BITPIX", fmt.Sprint(bitpix), ""),
		Card("NAXIS", fmt.Sprint(len(axes)), ""),
	}
	for i, n := range axes {
		cards = append(cards, Card(fmt.Sprintf("NAXIS%d", i+1), fmt.Sprint(n), ""))
	}
	return append(cards, Card("PCOUNT", "0", ""), Card("GCOUNT", "1", ""))
}

// Header renders cards plus END, padded with blank cards to whole blocks.
// Cards are encoded as ISO-8859-1.
func Header(cards ...string) []byte {
	var buf bytes.Buffer
	for _, c := range cards {
		buf.Write(format.EncodeLatin1(format.Fit(c)))
	}
	buf.WriteString(format.EndCard())
	for i := format.BlankCards(len(cards) + 1); i > 0; i-- {
		buf.WriteString(format.BlankCard())
	}
	return buf.Bytes()
}

// Build renders a complete FITS stream.
func Build(hdus ...HDU) []byte {
	var buf bytes.Buffer
	for _, h := range hdus {
		buf.Write(Header(h.Cards...))
		buf.Write(h.Data)
		if pad := format.AlignBlock(int64(len(h.Data))) - int64(len(h.Data)); pad > 0 {
			buf.Write(make([]byte, pad))
		}
	}
	return buf.Bytes()
}

// Data returns n deterministic data bytes.
func Data(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7 + 3)
	}
	return b
}

// Sample returns a primary header with two axes and one image extension
// with a HIERARCH block, both with data.
func Sample() []byte {
	primary := append(Primary(8, 10, 10),
		Card("OBJECT", "'M31'", "target"),
		format.RenderText("HISTORY", "created by testutil"),
	)
	ext := append(Image(16, 20, 3),
		Card("EXTNAME", "'CHIP1'", "extension name"),
		format.RenderHierarch("HIERARCH ESO DET DIT", "2.5", "integration time", false),
		format.RenderHierarch("HIERARCH ESO DET NDIT", "4", "", false),
		format.RenderHierarch("HIERARCH ESO TEL AIRM", "1.12", "airmass", false),
	)
	return Build(
		HDU{Cards: primary, Data: Data(100)},
		HDU{Cards: ext, Data: Data(120)},
	)
}

// WriteFile writes data to name inside a temporary directory and returns
// the path.
func WriteFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// Gzip compresses data.
func Gzip(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("Failed to compress: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to compress: %v", err)
	}
	return buf.Bytes()
}
