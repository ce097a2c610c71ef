package fitsops

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fitskit/fits"
	"github.com/joshuapare/fitskit/fits/printer"
	"github.com/joshuapare/fitskit/internal/format"
	"github.com/joshuapare/fitskit/internal/testutil"
	"github.com/joshuapare/fitskit/pkg/types"
)

func writeNight(t *testing.T) string {
	t.Helper()
	path := testutil.WriteFile(t, "2024-01-01/a.fits", testutil.Sample())
	dir := filepath.Dir(path)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.fits.gz"), testutil.Gzip(t, testutil.Sample()), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.fits"), []byte("garbage"), 0o644))
	return dir
}

func TestExtractHeaders(t *testing.T) {
	dir := writeNight(t)
	out := t.TempDir()

	opts := DefaultExtractOptions()
	opts.OutDir = out
	opts.Jobs = 2
	results, err := Extract(context.Background(), filepath.Join(dir, "*"), opts)
	require.NoError(t, err)
	require.Len(t, results, 3)

	byName := make(map[string]ExtractResult)
	for _, r := range results {
		byName[filepath.Base(r.Input)] = r
	}

	a := byName["a.fits"]
	require.NoError(t, a.Err)
	require.Equal(t, filepath.Join(out, "2024-01-01", "a.hdr"), a.Output)
	got, err := os.ReadFile(a.Output)
	require.NoError(t, err)
	require.Equal(t, testutil.Sample()[:format.BlockSize], got)

	b := byName["b.fits.gz"]
	require.NoError(t, b.Err)
	require.Equal(t, filepath.Join(out, "2024-01-01", "b.hdr"), b.Output)

	require.ErrorIs(t, byName["c.fits"].Err, types.ErrUnsupportedStream)
}

func TestExtractXML(t *testing.T) {
	dir := writeNight(t)
	out := t.TempDir()

	opts := DefaultExtractOptions()
	opts.OutDir = out
	opts.Format = printer.FormatVOTable
	opts.Header = fits.AllHeaders
	results, err := Extract(context.Background(), filepath.Join(dir, "a.fits"), opts)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	require.Equal(t, filepath.Join(out, "2024-01-01", "a.xml"), results[0].Output)

	got, err := os.ReadFile(results[0].Output)
	require.NoError(t, err)
	doc := string(got)
	require.True(t, strings.HasPrefix(doc, printer.XMLDeclaration))
	require.Contains(t, doc, "VOTable file created from FITS file a.fits")
	require.Equal(t, 2, strings.Count(doc, "<RESOURCE "))
}

func TestExtractNoMatch(t *testing.T) {
	_, err := Extract(context.Background(), filepath.Join(t.TempDir(), "*.fits"), nil)
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestExtractCancelled(t *testing.T) {
	dir := writeNight(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := DefaultExtractOptions()
	opts.OutDir = t.TempDir()
	_, err := Extract(ctx, filepath.Join(dir, "*"), opts)
	require.ErrorIs(t, err, context.Canceled)
}

func TestOutputPath(t *testing.T) {
	require.Equal(t, filepath.Join("out", "n1", "x.hdr"), OutputPath("out", "/data/n1/x.fits.Z", printer.FormatFITS))
	require.Equal(t, filepath.Join("out", "x.xml"), OutputPath("out", "x.fits", printer.FormatXFits))
}
