package fitsops

import (
	"hash/crc32"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fitskit/fits"
	"github.com/joshuapare/fitskit/internal/testutil"
	"github.com/joshuapare/fitskit/pkg/header"
	"github.com/joshuapare/fitskit/pkg/types"
)

func TestInputs(t *testing.T) {
	path := testutil.WriteFile(t, "night/a.fits", testutil.Sample())
	dir := filepath.Dir(path)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.fits"), testutil.Sample(), 0o644))

	paths, err := Inputs(filepath.Join(dir, "*.fits"))
	require.NoError(t, err)
	require.Len(t, paths, 2)

	_, err = Inputs(filepath.Join(dir, "*.fz"))
	require.ErrorIs(t, err, types.ErrNotFound)

	_, err = Inputs("[")
	require.ErrorIs(t, err, types.ErrStructure)
}

func TestOpenInputPlain(t *testing.T) {
	path := testutil.WriteFile(t, "a.fits", testutil.Sample())
	f, err := OpenInput(path, fits.DefaultOptions())
	require.NoError(t, err)
	defer f.Close()

	hdrs, err := f.ReadAll()
	require.NoError(t, err)
	require.Len(t, hdrs, 2)
	require.Equal(t, header.NoDatasum, hdrs[0].Datasum)
}

func TestOpenInputGzip(t *testing.T) {
	path := testutil.WriteFile(t, "a.fits.gz", testutil.Gzip(t, testutil.Sample()))
	f, err := OpenInput(path, fits.DefaultOptions())
	require.NoError(t, err)

	hdrs, err := f.ReadAll()
	require.NoError(t, err)
	require.Len(t, hdrs, 2)
	require.Equal(t, int64(crc32.ChecksumIEEE(testutil.Data(100))), hdrs[0].Datasum)
	require.Equal(t, int64(crc32.ChecksumIEEE(testutil.Data(120))), hdrs[1].Datasum)
	require.NoError(t, f.Close())
}

func TestOpenInputCompress(t *testing.T) {
	if _, err := exec.LookPath("gzip"); err != nil {
		t.Skip("gzip not available")
	}
	path := testutil.WriteFile(t, "a.fits.Z", testutil.Gzip(t, testutil.Sample()))
	f, err := OpenInput(path, fits.DefaultOptions())
	require.NoError(t, err)

	h, err := f.Header(0)
	require.NoError(t, err)
	require.Equal(t, int64(100), h.DataSize)
	require.NoError(t, f.Close())
}

func TestOpenInputHeaderOnly(t *testing.T) {
	path := testutil.WriteFile(t, "a.hdr", testutil.Header(testutil.Primary(8, 10, 10)...))
	f, err := OpenInput(path, fits.DefaultOptions())
	require.NoError(t, err)
	defer f.Close()

	hdrs, err := f.ReadAll()
	require.NoError(t, err)
	require.Len(t, hdrs, 1)
	require.Equal(t, int64(100), hdrs[0].DataSize)
}

func TestOpenInputErrors(t *testing.T) {
	_, err := OpenInput(filepath.Join(t.TempDir(), "missing.fits"), fits.DefaultOptions())
	require.ErrorIs(t, err, types.ErrNotFound)

	_, err = OpenInput(t.TempDir(), fits.DefaultOptions())
	require.ErrorIs(t, err, types.ErrUnsupportedStream)

	path := testutil.WriteFile(t, "bad.fits.gz", []byte("not gzip at all"))
	_, err = OpenInput(path, fits.DefaultOptions())
	require.ErrorIs(t, err, types.ErrUnsupportedStream)
}

func TestFileIDs(t *testing.T) {
	cases := []struct {
		path, id, base string
	}{
		{"/data/n1/ONE.2024-01-01T00:00:00.fits", "ONE.2024-01-01T00:00:00.fits", "ONE.2024-01-01T00:00:00"},
		{"/data/n1/a.fits.gz", "a", "a"},
		{"b.fits.Z", "b", "b"},
		{"c.hdr", "c.hdr", "c"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.id, FileID(tc.path), tc.path)
		require.Equal(t, tc.base, BaseID(tc.path), tc.path)
	}
}
