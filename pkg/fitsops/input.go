package fitsops

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/joshuapare/fitskit/fits"
	"github.com/joshuapare/fitskit/pkg/types"
)

// Compression suffixes recognized by OpenInput.
const (
	SuffixGzip     = ".gz"
	SuffixCompress = ".Z"
	SuffixHeader   = ".hdr"
)

// Inputs expands pattern into the matching paths. A pattern without
// matches is a not-found error.
func Inputs(pattern string) ([]string, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, types.Errorf(types.ErrKindStructure, err, "invalid pattern %q", pattern)
	}
	if len(paths) == 0 {
		return nil, types.Errorf(types.ErrKindNotFound, os.ErrNotExist, "no file matches %q", pattern)
	}
	return paths, nil
}

// OpenInput opens one FITS input. Plain files are memory mapped; files
// ending in .gz are decompressed in-process and files ending in .Z through
// an external gzip. A bare .hdr file is scanned in header-only mode.
func OpenInput(path string, opts fits.Options) (*fits.File, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, types.Errorf(types.ErrKindNotFound, err, "open %s", path)
	case err != nil:
		return nil, types.Errorf(types.ErrKindIO, err, "open %s", path)
	case info.IsDir():
		return nil, types.Errorf(types.ErrKindUnsupported, nil, "%s is a directory", path)
	case !info.Mode().IsRegular():
		return nil, types.Errorf(types.ErrKindUnsupported, nil, "%s is not a regular file", path)
	}

	switch Compression(path) {
	case SuffixGzip:
		r, err := openGzip(path)
		if err != nil {
			return nil, err
		}
		return fits.NewFile(r, path, opts), nil
	case SuffixCompress:
		r, err := openCompress(path)
		if err != nil {
			return nil, err
		}
		return fits.NewFile(r, path, opts), nil
	}

	if filepath.Ext(path) == SuffixHeader {
		opts.HeaderOnly = true
	}
	return fits.Open(path, opts)
}

// Compression returns the compression suffix of path, or "".
func Compression(path string) string {
	switch ext := filepath.Ext(path); ext {
	case SuffixGzip, SuffixCompress:
		return ext
	default:
		return ""
	}
}

// FileID returns the identifier of path used in keyword tables: the base
// name, without the compression suffix and extension for compressed files.
func FileID(path string) string {
	base := filepath.Base(path)
	if ext := Compression(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base
}

// BaseID returns the base name of path without compression suffix and
// extension.
func BaseID(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, Compression(base))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	return errors.Join(g.Reader.Close(), g.f.Close())
}

func openGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.Errorf(types.ErrKindIO, err, "open %s", path)
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, types.Errorf(types.ErrKindUnsupported, err, "%s: not a gzip stream", path)
	}
	return &gzipFile{Reader: zr, f: f}, nil
}

// pipe reads the standard output of a decompression command.
type pipe struct {
	io.ReadCloser
	cmd *exec.Cmd
	eof bool
}

func (p *pipe) Read(b []byte) (int, error) {
	n, err := p.ReadCloser.Read(b)
	if errors.Is(err, io.EOF) {
		p.eof = true
	}
	return n, err
}

// Close stops the command. An exit caused by closing the pipe before the
// end of the stream is not an error.
func (p *pipe) Close() error {
	closeErr := p.ReadCloser.Close()
	err := p.cmd.Wait()
	var exit *exec.ExitError
	if errors.As(err, &exit) && !p.eof {
		err = nil
	}
	if err != nil {
		return types.Errorf(types.ErrKindIO, err, "gzip %s", p.cmd.Args[len(p.cmd.Args)-1])
	}
	if closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
		return closeErr
	}
	return nil
}

func openCompress(path string) (io.ReadCloser, error) {
	cmd := exec.Command("gzip", "-dc", path)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, types.Errorf(types.ErrKindIO, err, "gzip %s", path)
	}
	if err := cmd.Start(); err != nil {
		return nil, types.Errorf(types.ErrKindUnsupported, err, "gzip %s", path)
	}
	return &pipe{ReadCloser: out, cmd: cmd}, nil
}
