package reader

import (
	"bytes"
	"errors"
	"hash/crc32"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fitskit/internal/format"
	"github.com/joshuapare/fitskit/internal/testutil"
	"github.com/joshuapare/fitskit/pkg/header"
	"github.com/joshuapare/fitskit/pkg/types"
)

// pipe hides io.Seeker so the scanner has to read data areas through.
type pipe struct{ io.Reader }

func scanAll(t *testing.T, r io.Reader, opts Options) []*header.Header {
	t.Helper()
	s := NewScanner(r, opts)
	var out []*header.Header
	for {
		h, err := s.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		out = append(out, h)
	}
}

func TestScannerSeeksOverData(t *testing.T) {
	data := testutil.Sample()
	hdrs := scanAll(t, bytes.NewReader(data), Options{})
	require.Len(t, hdrs, 2)

	require.Equal(t, 0, hdrs[0].Number)
	require.Equal(t, int64(0), hdrs[0].Position)
	require.Equal(t, int64(format.BlockSize), hdrs[0].Size)
	require.Equal(t, int64(100), hdrs[0].DataSize)
	require.Equal(t, int64(1), hdrs[0].DataBlocks)
	require.Equal(t, header.NoDatasum, hdrs[0].Datasum)

	require.Equal(t, 1, hdrs[1].Number)
	require.Equal(t, int64(2*format.BlockSize), hdrs[1].Position)
	require.Equal(t, int64(120), hdrs[1].DataSize)
	require.Equal(t, header.NoDatasum, hdrs[1].Datasum)
}

func TestScannerChecksum(t *testing.T) {
	data := testutil.Sample()
	want0 := int64(crc32.ChecksumIEEE(testutil.Data(100)))
	want1 := int64(crc32.ChecksumIEEE(testutil.Data(120)))

	hdrs := scanAll(t, bytes.NewReader(data), Options{Checksum: true})
	require.Len(t, hdrs, 2)
	require.Equal(t, want0, hdrs[0].Datasum)
	require.Equal(t, want1, hdrs[1].Datasum)

	hdrs = scanAll(t, pipe{bytes.NewReader(data)}, Options{})
	require.Len(t, hdrs, 2)
	require.Equal(t, want0, hdrs[0].Datasum)
	require.Equal(t, int64(2*format.BlockSize), hdrs[1].Position)
}

func TestScannerWatchedKeywordsOnly(t *testing.T) {
	hdrs := scanAll(t, bytes.NewReader(testutil.Sample()), Options{})
	store := hdrs[0].Keywords

	require.True(t, store.Has("NAXIS1"))
	require.True(t, store.Has("END"))
	require.False(t, store.Has("OBJECT"))
	require.Equal(t, 7, store.KeyIndex("END"))
	require.Equal(t, format.CardsPerBlock, hdrs[0].NumCards())

	require.NoError(t, hdrs[0].Parse())
	require.Equal(t, "M31", hdrs[0].Keywords.Value("OBJECT"))
}

func TestScannerSelectedKey(t *testing.T) {
	hdrs := scanAll(t, bytes.NewReader(testutil.Sample()), Options{Key: "HIERARCH ESO  DET DIT"})
	require.Len(t, hdrs, 2)

	require.False(t, hdrs[0].Selected)
	require.True(t, hdrs[1].Selected)
	require.Len(t, hdrs[1].Raw, format.CardSize)
	require.True(t, strings.HasPrefix(hdrs[1].Card(0), "HIERARCH ESO DET DIT"))
	require.Equal(t, int64(120), hdrs[1].DataSize)
	require.Equal(t, "2.5", hdrs[1].Keywords.Value("HIERARCH ESO DET DIT"))
}

func TestScannerHeaderOnly(t *testing.T) {
	hdrs := scanAll(t, bytes.NewReader(testutil.Sample()), Options{HeaderOnly: true})
	require.Len(t, hdrs, 1)

	stacked := append(testutil.Header(testutil.Primary(8)...), testutil.Header(testutil.Image(8)...)...)
	hdrs = scanAll(t, bytes.NewReader(stacked), Options{HeaderOnly: true})
	require.Len(t, hdrs, 2)
	require.Equal(t, int64(format.BlockSize), hdrs[1].Position)
}

func TestScannerMultiBlockHeader(t *testing.T) {
	cards := testutil.Primary(16)
	for i := 0; i < 40; i++ {
		cards = append(cards, format.RenderText("HISTORY", "line"))
	}
	data := testutil.Build(testutil.HDU{Cards: cards})
	hdrs := scanAll(t, bytes.NewReader(data), Options{})
	require.Len(t, hdrs, 1)
	require.Equal(t, int64(2*format.BlockSize), hdrs[0].Size)
	require.Equal(t, 43, hdrs[0].Keywords.KeyIndex("END"))
	require.Zero(t, hdrs[0].DataSize)
}

func TestScannerTrailingBytes(t *testing.T) {
	data := append(testutil.Build(testutil.HDU{Cards: testutil.Primary(8)}), make([]byte, 100)...)
	hdrs := scanAll(t, bytes.NewReader(data), Options{})
	require.Len(t, hdrs, 1)
}

func TestScannerMissingEnd(t *testing.T) {
	block := []byte(strings.Repeat(format.BlankCard(), format.CardsPerBlock))
	copy(block, format.RenderCard("SIMPLE", "T", "", false))
	hdrs := scanAll(t, bytes.NewReader(block), Options{})
	require.Len(t, hdrs, 1)
	require.False(t, hdrs[0].Keywords.Has("END"))
}

func TestScannerTruncated(t *testing.T) {
	data := testutil.Sample()

	s := NewScanner(bytes.NewReader(data[:format.BlockSize/2]), Options{})
	_, err := s.Next()
	require.ErrorIs(t, err, types.ErrIO)
	require.ErrorIs(t, err, format.ErrTruncated)
	_, err = s.Next()
	require.ErrorIs(t, err, io.EOF)

	s = NewScanner(bytes.NewReader(data[:format.BlockSize+50]), Options{Checksum: true})
	_, err = s.Next()
	require.ErrorIs(t, err, types.ErrIO)
}

func TestScannerMalformedWatchedCard(t *testing.T) {
	data := testutil.Build(testutil.HDU{Cards: []string{
		format.RenderCard("SIMPLE", "T", "", false),
		format.Fit("BITPIX  = 'unterminated"),
	}})
	_, err := NewScanner(bytes.NewReader(data), Options{}).Next()
	require.ErrorIs(t, err, types.ErrMalformedCard)
}

func TestScannerNotFITS(t *testing.T) {
	data := bytes.Repeat([]byte{'x'}, format.BlockSize)
	hdrs := scanAll(t, bytes.NewReader(data), Options{})
	require.Empty(t, hdrs)
}
