package fits

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/joshuapare/fitskit/internal/format"
	"github.com/joshuapare/fitskit/internal/mmfile"
	"github.com/joshuapare/fitskit/internal/reader"
	"github.com/joshuapare/fitskit/pkg/header"
	"github.com/joshuapare/fitskit/pkg/types"
)

// AllHeaders requests every header where a header number is expected.
const AllHeaders = -1

// Options controls how a File is scanned.
type Options struct {
	// Key selects one keyword; headers holding it keep only that card.
	Key string
	// HeaderOnly skips data area accounting.
	HeaderOnly bool
	// Checksum computes a CRC-32 over every data area.
	Checksum bool
	// Logger receives debug events. Nil disables logging.
	Logger *zerolog.Logger
}

// DefaultOptions returns options that scan every header and seek over data.
func DefaultOptions() Options {
	return Options{}
}

// File is an opened FITS stream.
type File struct {
	name    string
	closer  io.Closer
	unmap   func() error
	scanner *reader.Scanner
	headers []*header.Header
	eof     bool
	closed  bool
	log     zerolog.Logger
}

// Open maps the file at path and prepares it for scanning.
func Open(path string, opts Options) (*File, error) {
	data, unmap, err := mmfile.Map(path)
	if err != nil {
		return nil, wrapOpenErr(path, err)
	}
	f := NewFile(bytes.NewReader(data), path, opts)
	f.unmap = unmap
	return f, nil
}

// NewFile prepares r for scanning. If r is an io.Closer it is closed by
// Close.
func NewFile(r io.Reader, name string, opts Options) *File {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	log = log.With().Str("file", name).Logger()
	f := &File{
		name: name,
		log:  log,
		scanner: reader.NewScanner(r, reader.Options{
			Key:        opts.Key,
			HeaderOnly: opts.HeaderOnly,
			Checksum:   opts.Checksum,
			Logger:     &log,
		}),
	}
	if c, ok := r.(io.Closer); ok {
		f.closer = c
	}
	return f
}

// Name returns the path or name the file was opened with.
func (f *File) Name() string {
	return f.name
}

// ID returns the base name of the file.
func (f *File) ID() string {
	return filepath.Base(f.name)
}

// Headers returns the headers scanned so far.
func (f *File) Headers() []*header.Header {
	return f.headers
}

// Next scans the next header. It returns io.EOF after the last one.
func (f *File) Next() (*header.Header, error) {
	if f.closed {
		return nil, types.Errorf(types.ErrKindIO, nil, "%s: file is closed", f.name)
	}
	if f.eof {
		return nil, io.EOF
	}
	h, err := f.scanner.Next()
	if err != nil {
		f.eof = true
		return nil, err
	}
	f.headers = append(f.headers, h)
	return h, nil
}

// ReadTo scans until header n has been read or the stream ends. A negative
// n scans every header.
func (f *File) ReadTo(n int) error {
	for n < 0 || len(f.headers) <= n {
		if _, err := f.Next(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
	return nil
}

// ReadAll scans every remaining header and returns all of them.
func (f *File) ReadAll() ([]*header.Header, error) {
	if err := f.ReadTo(AllHeaders); err != nil {
		return f.headers, err
	}
	if len(f.headers) == 0 {
		return nil, f.notFITS()
	}
	return f.headers, nil
}

func (f *File) notFITS() error {
	return types.Errorf(types.ErrKindUnsupported, format.ErrSignatureMismatch, "%s: not a FITS stream", f.name)
}

// Header returns header n, scanning as far as needed. A stream without
// any header is an unsupported stream.
func (f *File) Header(n int) (*header.Header, error) {
	if err := f.ReadTo(n); err != nil {
		return nil, err
	}
	if len(f.headers) == 0 {
		return nil, f.notFITS()
	}
	if n < 0 || n >= len(f.headers) {
		return nil, types.Errorf(types.ErrKindNotFound, nil, "%s: header %d not found (%d headers)", f.name, n, len(f.headers))
	}
	return f.headers[n], nil
}

// Parse decodes every card of every scanned header.
func (f *File) Parse() error {
	for _, h := range f.headers {
		if h.Parsed() {
			continue
		}
		if err := h.Parse(); err != nil {
			return err
		}
	}
	return nil
}

// Card returns the raw text of the first card of key in header n.
func (f *File) Card(key string, n int) (string, error) {
	h, err := f.Header(n)
	if err != nil {
		return "", err
	}
	if !h.Parsed() {
		if err := h.Parse(); err != nil {
			return "", err
		}
	}
	if h.Selected {
		if format.Keyword(h.Card(0)) == header.NormalizePath(key) {
			return h.Card(0), nil
		}
	} else if pos := h.Keywords.KeyIndex(key); pos >= 0 {
		return h.Card(pos), nil
	}
	return "", types.Errorf(types.ErrKindNotFound, nil, "%s: keyword %q not found in header %d", f.name, key, n)
}

// Close releases the underlying stream.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	var errs []error
	if f.closer != nil {
		errs = append(errs, f.closer.Close())
	}
	if f.unmap != nil {
		errs = append(errs, f.unmap())
	}
	return errors.Join(errs...)
}

func wrapOpenErr(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return types.Errorf(types.ErrKindNotFound, err, "open %s", path)
	case errors.Is(err, mmfile.ErrIsDir):
		return types.Errorf(types.ErrKindUnsupported, err, "open %s", path)
	default:
		return types.Errorf(types.ErrKindIO, err, "open %s", path)
	}
}
