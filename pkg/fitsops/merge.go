package fitsops

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joshuapare/fitskit/fits"
	"github.com/joshuapare/fitskit/fits/printer"
	"github.com/joshuapare/fitskit/internal/format"
	"github.com/joshuapare/fitskit/pkg/header"
	"github.com/joshuapare/fitskit/pkg/types"
)

// mergeSkip lists the extension keywords that do not belong in a primary
// header.
var mergeSkip = map[string]struct{}{
	format.KeyXtension: {},
	format.KeyPcount:   {},
	format.KeyGcount:   {},
	format.KeyEnd:      {},
}

// MergedName returns the output name used by MergeFile for path:
// <base>.new<ext> in the current directory.
func MergedName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".new" + ext
}

// MergeFile merges an IMAGE extension of the plain FITS file at path into
// its primary header and writes the result to out.
func MergeFile(path, out string, opts *MergeOptions) error {
	dst, err := os.Create(out)
	if err != nil {
		return types.Errorf(types.ErrKindIO, err, "create %s", out)
	}
	if err := MergeExtension(path, dst, opts); err != nil {
		dst.Close()
		os.Remove(out)
		return err
	}
	if err := dst.Close(); err != nil {
		return types.Errorf(types.ErrKindIO, err, "close %s", out)
	}
	return nil
}

// MergeExtension writes a copy of the plain FITS file at path to w in
// which the keywords of an IMAGE extension are merged into the primary
// header and the extension's data becomes the primary data. The primary
// must not have data of its own. Other extensions are copied unchanged.
func MergeExtension(path string, w io.Writer, opts *MergeOptions) error {
	if opts == nil {
		opts = &MergeOptions{Extension: 1}
	}
	fopts := opts.File
	fopts.Key = ""
	fopts.HeaderOnly = false
	f, err := fits.Open(path, fopts)
	if err != nil {
		return err
	}
	defer f.Close()

	hdrs, err := f.ReadAll()
	if err != nil {
		return err
	}
	n := opts.Extension
	if n <= 0 || n >= len(hdrs) {
		return types.Errorf(types.ErrKindNotFound, nil, "%s: extension %d not found (%d headers)", path, n, len(hdrs))
	}
	primary, ext := hdrs[0], hdrs[n]
	if err := f.Parse(); err != nil {
		return err
	}
	if primary.DataSize != 0 {
		return types.Errorf(types.ErrKindStructure, nil, "%s: primary header already has %d data bytes", path, primary.DataSize)
	}
	if kind := ext.Keywords.Value(format.KeyXtension); kind != "IMAGE" {
		return types.Errorf(types.ErrKindStructure, nil, "%s: extension %d is %q, not IMAGE", path, n, kind)
	}

	if err := mergeKeywords(primary.Keywords, ext.Keywords); err != nil {
		return err
	}
	primary.Keywords.SortKeys()

	src, err := os.Open(path)
	if err != nil {
		return types.Errorf(types.ErrKindIO, err, "open %s", path)
	}
	defer src.Close()

	for i, h := range hdrs {
		switch i {
		case 0:
			if err := writeCards(w, printer.FITSCards(primary)); err != nil {
				return err
			}
			if err := copyData(w, src, ext); err != nil {
				return err
			}
		case n:
		default:
			if _, err := w.Write(h.Raw); err != nil {
				return types.Errorf(types.ErrKindIO, err, "write header %d", i)
			}
			if err := copyData(w, src, h); err != nil {
				return err
			}
		}
	}
	return nil
}

func mergeKeywords(dst, src *header.Store) error {
	return src.Each(func(_ int, path string, occurrence int) error {
		if _, skip := mergeSkip[path]; skip {
			return nil
		}
		kw, _ := src.Keyword(path)
		e := types.Entry{Path: path, Value: kw.Value, Comment: kw.Comment, Commentary: kw.Commentary, Index: -1}
		if format.IsFreeText(path) {
			text := ""
			if occurrence < len(kw.Value.Seq) {
				text = kw.Value.Seq[occurrence]
			}
			e.Value = types.Value{Type: types.TypeChar, Text: text, Seq: []string{text}}
		} else if occurrence > 0 {
			return nil
		}
		return dst.UpdateKeyword(e, true)
	})
}

func writeCards(w io.Writer, cards []string) error {
	for _, c := range cards {
		if _, err := w.Write(format.EncodeLatin1(c)); err != nil {
			return types.Errorf(types.ErrKindIO, err, "write header")
		}
	}
	return nil
}

// copyData copies the padded data area of h from src.
func copyData(w io.Writer, src io.ReaderAt, h *header.Header) error {
	n := h.DataBlocks * format.BlockSize
	if n == 0 {
		return nil
	}
	section := io.NewSectionReader(src, h.Position+h.Size, n)
	if _, err := io.Copy(w, section); err != nil {
		return types.Errorf(types.ErrKindIO, err, "copy data of header %d", h.Number)
	}
	return nil
}
