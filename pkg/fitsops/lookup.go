package fitsops

import (
	"fmt"
	"io"

	"github.com/joshuapare/fitskit/fits"
	"github.com/joshuapare/fitskit/pkg/header"
)

// LookupRow is the result of a keyword lookup in one header.
type LookupRow struct {
	Name   string
	Header int
	Key    string
	Value  string
	Found  bool
}

func (r LookupRow) String() string {
	value := r.Value
	if !r.Found {
		value = NotFound
	}
	return fmt.Sprintf("%s\t%3d\t%s\t%s", r.Name, r.Header, r.Key, value)
}

// LookupKey returns the value of key in header n of f, or in every header
// when n is fits.AllHeaders. A header without the keyword yields a row with
// Found unset.
func LookupKey(f *fits.File, key string, n int) ([]LookupRow, error) {
	key = header.NormalizePath(key)
	hdrs, err := selectHeaders(f, n)
	if err != nil {
		return nil, err
	}
	rows := make([]LookupRow, 0, len(hdrs))
	for _, h := range hdrs {
		if !h.Keywords.Has(key) && !h.Parsed() {
			if err := h.Parse(); err != nil {
				return nil, err
			}
		}
		kw, ok := h.Keywords.Keyword(key)
		rows = append(rows, LookupRow{
			Name:   f.Name(),
			Header: h.Number,
			Key:    key,
			Value:  kw.Value.String(),
			Found:  ok,
		})
	}
	return rows, nil
}

// WriteLookup writes one tab separated line per row.
func WriteLookup(w io.Writer, rows []LookupRow) error {
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return err
		}
	}
	return nil
}

func selectHeaders(f *fits.File, n int) ([]*header.Header, error) {
	if n == fits.AllHeaders {
		return f.ReadAll()
	}
	h, err := f.Header(n)
	if err != nil {
		return nil, err
	}
	return []*header.Header{h}, nil
}
