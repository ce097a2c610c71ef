// Package mmfile provides platform-specific helpers for memory-mapping FITS files.
package mmfile

import (
	"errors"
	"io"
	"os"
)

// ErrIsDir indicates the path names a directory.
var ErrIsDir = errors.New("mmfile: is a directory")

func readAll(f *os.File) ([]byte, func() error, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
