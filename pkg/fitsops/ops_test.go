package fitsops

import (
	"bytes"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fitskit/fits"
	"github.com/joshuapare/fitskit/internal/format"
	"github.com/joshuapare/fitskit/internal/testutil"
	"github.com/joshuapare/fitskit/pkg/types"
)

func openSample(t *testing.T, opts fits.Options) *fits.File {
	t.Helper()
	path := testutil.WriteFile(t, "sample.fits", testutil.Sample())
	f, err := OpenInput(path, opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestStructure(t *testing.T) {
	f := openSample(t, fits.Options{Checksum: true})
	rows, err := Structure(f)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, StructRow{Header: 0, Naxis: 2, Axes: []int64{10, 10}, Position: 0, Datasum: rows[0].Datasum}, rows[0])
	require.Equal(t, []int64{20, 3}, rows[1].Axes)
	require.Equal(t, int64(2*format.BlockSize), rows[1].Position)
	require.NotEqual(t, int64(-1), rows[1].Datasum)

	var buf bytes.Buffer
	require.NoError(t, WriteStructure(&buf, rows))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "# HDR  NAXIS  NAXIS1  NAXIS2          POS         DATASUM", lines[0])
	require.Equal(t, strings.Repeat("-", 70), lines[1])
	require.True(t, strings.HasPrefix(lines[3], "  1    2        20        3         5760    "), lines[3])
}

func TestLookupKey(t *testing.T) {
	f := openSample(t, fits.DefaultOptions())

	rows, err := LookupKey(f, "OBJECT", fits.AllHeaders)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.True(t, rows[0].Found)
	require.Equal(t, "M31", rows[0].Value)
	require.False(t, rows[1].Found)

	var buf bytes.Buffer
	require.NoError(t, WriteLookup(&buf, rows))
	name := f.Name()
	require.Equal(t, name+"\t  0\tOBJECT\tM31\n"+name+"\t  1\tOBJECT\t*not found*\n", buf.String())

	rows, err = LookupKey(f, "HIERARCH  ESO DET  DIT", 1)
	require.NoError(t, err)
	require.Equal(t, "HIERARCH ESO DET DIT", rows[0].Key)
	require.Equal(t, "2.5", rows[0].Value)

	_, err = LookupKey(f, "OBJECT", 7)
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestKeywordRows(t *testing.T) {
	f := openSample(t, fits.DefaultOptions())
	rows, err := KeywordRows(f, nil)
	require.NoError(t, err)
	require.Len(t, rows, 8)

	require.Equal(t, KeywordRow{FileID: "sample.fits", Header: 0, Card: 0, Keyword: "SIMPLE", Value: "T", Comment: "conforms to FITS standard", Type: "B"}, rows[0])
	require.Equal(t, "U", rows[3].Type)
	require.Equal(t, KeywordRow{FileID: "sample.fits", Header: 0, Card: 5, Keyword: "OBJECT", Value: "M31", Comment: "target", Type: "C"}, rows[5])
	require.Equal(t, KeywordRow{FileID: "sample.fits", Header: 0, Card: 6, Keyword: "HISTORY", Value: "created by testutil", Type: "C"}, rows[6])
	require.Equal(t, "END", rows[7].Keyword)

	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, rows[5:6], false))
	require.Equal(t, "sample.fits\t0\t5\tOBJECT\tM31\ttarget\tC\n", buf.String())
}

func TestKeywordRowsDBCM(t *testing.T) {
	path := testutil.WriteFile(t, "ONE.2024-01-01T10:11:12.123.fits", testutil.Build(testutil.HDU{
		Cards: append(testutil.Primary(16),
			testutil.Card("DATE-OBS", "'2024-01-01T10:11:12.1234'", ""),
			testutil.Card("EXPTIME", "12.5", ""),
		),
	}))
	f, err := OpenInput(path, fits.DefaultOptions())
	require.NoError(t, err)
	defer f.Close()

	rows, err := KeywordRows(f, &TableOptions{DBCM: true})
	require.NoError(t, err)
	require.Len(t, rows, 6)

	date, exptime := rows[3], rows[4]
	require.Equal(t, "ONE", date.Prefix)
	require.Equal(t, "T", date.Type)
	require.Equal(t, "2024-01-01 10:11:12.123", date.DateTime)
	require.Empty(t, date.Numeric)
	require.Equal(t, "12.5", exptime.Numeric)
	require.Len(t, exptime.Fields(true), 10)
}

func TestKeywordRowsKey(t *testing.T) {
	f := openSample(t, fits.DefaultOptions())
	rows, err := KeywordRows(f, &TableOptions{Header: fits.AllHeaders, Key: "EXTNAME"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, int32(-1), rows[0].Card)
	require.Equal(t, "CHIP1", rows[1].Value)

	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, rows[:1], false))
	require.Equal(t, "sample.fits\tEXTNAME\t*not found*\n", buf.String())
}

func TestFilePrefix(t *testing.T) {
	cases := map[string]string{
		"ONE.2024.fits":           "ONE",
		"a.b.fits":                "a.b",
		"VERYLONGINSTRUMENT.fits": "VERYLONGIN",
		"nodot":                   "n",
		"ab":                      "a",
	}
	for id, want := range cases {
		require.Equal(t, want, filePrefix(id), id)
	}
}

func TestWriteParquet(t *testing.T) {
	f := openSample(t, fits.DefaultOptions())
	rows, err := KeywordRows(f, &TableOptions{Header: fits.AllHeaders, DBCM: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteParquet(&buf, rows))

	got, err := parquet.Read[KeywordRow](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Equal(t, rows, got)
}
