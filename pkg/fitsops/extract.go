package fitsops

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/fitskit/fits"
	"github.com/joshuapare/fitskit/fits/printer"
	"github.com/joshuapare/fitskit/pkg/header"
	"github.com/joshuapare/fitskit/pkg/types"
)

// Output extensions written by Extract.
const (
	ExtHeader = ".hdr"
	ExtXML    = ".xml"
)

// ExtractResult reports the outcome for one input.
type ExtractResult struct {
	Input  string
	Output string
	Err    error
}

// Extract writes the headers of every file matching pattern to
// <OutDir>/<night>/<id><ext>, where night is the last directory of the
// input path and id its base name without extensions. FormatFITS writes
// the raw primary header to .hdr; the XML formats write .xml.
//
// Files are processed concurrently. A failing file is reported in its
// result and does not stop the others; the returned error is only set when
// pattern matches nothing or ctx is cancelled.
//
// Example:
//
//	results, err := fitsops.Extract(ctx, "/data/2024-01-01/*.fits.gz", &fitsops.ExtractOptions{
//	    Format: printer.FormatVOTable,
//	    Header: fits.AllHeaders,
//	})
func Extract(ctx context.Context, pattern string, opts *ExtractOptions) ([]ExtractResult, error) {
	if opts == nil {
		opts = DefaultExtractOptions()
	}
	paths, err := Inputs(pattern)
	if err != nil {
		return nil, err
	}
	outDir := opts.OutDir
	if outDir == "" {
		outDir = "."
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = DefaultExtractOptions().Jobs
	}
	log := zerolog.Nop()
	if opts.File.Logger != nil {
		log = *opts.File.Logger
	}

	results := make([]ExtractResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		i, path := i, path
		results[i] = ExtractResult{Input: path, Output: OutputPath(outDir, path, opts.Format)}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := &results[i]
			res.Err = extractOne(path, res.Output, opts)
			if res.Err != nil {
				log.Warn().Err(res.Err).Str("file", path).Msg("extract failed")
			} else {
				log.Debug().Str("file", path).Str("output", res.Output).Msg("extracted")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// OutputPath returns the file Extract writes for input.
func OutputPath(outDir, input string, f printer.Format) string {
	ext := ExtHeader
	if f != printer.FormatFITS && f != "" {
		ext = ExtXML
	}
	name := BaseID(input) + ext
	dir := filepath.Dir(input)
	if night := filepath.Base(dir); dir != "." && night != string(filepath.Separator) {
		return filepath.Join(outDir, night, name)
	}
	return filepath.Join(outDir, name)
}

func extractOne(path, output string, opts *ExtractOptions) error {
	fopts := opts.File
	fopts.Key = ""
	f, err := OpenInput(path, fopts)
	if err != nil {
		return err
	}
	defer f.Close()

	var buf bytes.Buffer
	if opts.Format == printer.FormatFITS || opts.Format == "" {
		h, err := f.Header(0)
		if err != nil {
			return err
		}
		buf.Write(h.Raw)
	} else {
		var hdrs []*header.Header
		if opts.Header == fits.AllHeaders {
			hdrs, err = f.ReadAll()
		} else {
			var h *header.Header
			h, err = f.Header(opts.Header)
			hdrs = []*header.Header{h}
		}
		if err != nil {
			return err
		}
		popts := opts.Printer
		popts.Format = opts.Format
		popts.SourceName = filepath.Base(path)
		popts.Parse = true
		if err := printer.New(&buf, popts).Print(hdrs); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return types.Errorf(types.ErrKindIO, err, "create %s", filepath.Dir(output))
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return types.Errorf(types.ErrKindIO, err, "write %s", output)
	}
	return nil
}
