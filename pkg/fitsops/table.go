package fitsops

import (
	"io"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/joshuapare/fitskit/fits"
	"github.com/joshuapare/fitskit/internal/format"
	"github.com/joshuapare/fitskit/internal/infer"
	"github.com/joshuapare/fitskit/pkg/header"
	"github.com/joshuapare/fitskit/pkg/types"
)

// dateTimeWidth is the length of a datetime value with millisecond
// precision.
const dateTimeWidth = 23

// maxPrefix bounds the DBCM file prefix.
const maxPrefix = 10

// KeywordRow is one card of a header in tabular form. Card is -1 for a
// requested keyword that is missing from the header.
type KeywordRow struct {
	Prefix   string `parquet:"prefix,optional"`
	FileID   string `parquet:"file_id"`
	Header   int32  `parquet:"header"`
	Card     int32  `parquet:"card"`
	Keyword  string `parquet:"keyword"`
	Value    string `parquet:"value"`
	Comment  string `parquet:"comment"`
	Type     string `parquet:"type"`
	Numeric  string `parquet:"numeric,optional"`
	DateTime string `parquet:"datetime,optional"`
}

// KeywordRows projects the cards of the selected headers of f into rows.
// Blank cards are skipped. Free-text and commentary cards have type C and
// no comment.
func KeywordRows(f *fits.File, opts *TableOptions) ([]KeywordRow, error) {
	if opts == nil {
		opts = &TableOptions{}
	}
	hdrs, err := selectHeaders(f, opts.Header)
	if err != nil {
		return nil, err
	}
	id := FileID(f.Name())
	key := ""
	if opts.Key != "" {
		key = header.NormalizePath(opts.Key)
	}

	var rows []KeywordRow
	for _, h := range hdrs {
		found := false
		for i, card := range h.Cards() {
			if key != "" && format.Keyword(card) != key {
				continue
			}
			c, err := format.ParseCard(card)
			if err != nil {
				return nil, types.Errorf(types.ErrKindMalformed, err, "%s header %d card %d", f.Name(), h.Number, i)
			}
			if c.Kind == format.CardBlank {
				continue
			}
			found = true
			rows = append(rows, keywordRow(id, h.Number, i, c, opts.DBCM))
			if c.Kind == format.CardEnd {
				break
			}
		}
		if key != "" && !found {
			rows = append(rows, KeywordRow{FileID: id, Header: int32(h.Number), Card: -1, Keyword: key, Value: NotFound})
		}
	}
	return rows, nil
}

func keywordRow(id string, hdr, card int, c format.Card, dbcm bool) KeywordRow {
	row := KeywordRow{
		FileID:  id,
		Header:  int32(hdr),
		Card:    int32(card),
		Keyword: c.Key,
		Value:   c.Value,
		Type:    types.TypeChar.String(),
	}
	typ := types.TypeChar
	if c.Kind == format.CardValue {
		row.Value = strings.TrimSpace(c.Value)
		row.Comment = c.Comment
		typ = infer.Type(c.Value, c.Quoted)
		row.Type = typ.String()
	}
	if !dbcm {
		return row
	}
	row.Prefix = filePrefix(id)
	if typ.Numeric() {
		row.Numeric = row.Value
	}
	if typ == types.TypeDateTime {
		dt := row.Value
		if len(dt) > dateTimeWidth {
			dt = dt[:dateTimeWidth]
		}
		row.DateTime = strings.Replace(dt, "T", " ", 1)
	}
	return row
}

// filePrefix is the part of id before the first dot after its second
// character, at most maxPrefix characters long.
func filePrefix(id string) string {
	end := 1
	if len(id) > 2 {
		if i := strings.IndexByte(id[2:], '.'); i >= 0 {
			end = i + 2
		}
	}
	end = min(end, maxPrefix, len(id))
	return id[:end]
}

// Fields returns the columns of r in output order.
func (r KeywordRow) Fields(dbcm bool) []string {
	if r.Card < 0 {
		return []string{r.FileID, r.Keyword, NotFound}
	}
	out := []string{
		r.FileID,
		strconv.Itoa(int(r.Header)),
		strconv.Itoa(int(r.Card)),
		r.Keyword,
		r.Value,
		r.Comment,
		r.Type,
	}
	if dbcm {
		out = append([]string{r.Prefix}, out...)
		out = append(out, r.Numeric, r.DateTime)
	}
	return out
}

// WriteTSV writes one tab separated line per row.
func WriteTSV(w io.Writer, rows []KeywordRow, dbcm bool) error {
	for _, r := range rows {
		line := strings.Join(r.Fields(dbcm), "\t") + "\n"
		if _, err := w.Write(format.EncodeLatin1(line)); err != nil {
			return types.Errorf(types.ErrKindIO, err, "write tsv")
		}
	}
	return nil
}

// WriteParquet writes rows as a Parquet file.
func WriteParquet(w io.Writer, rows []KeywordRow) error {
	pw := parquet.NewGenericWriter[KeywordRow](w)
	if _, err := pw.Write(rows); err != nil {
		return types.Errorf(types.ErrKindIO, err, "write parquet")
	}
	if err := pw.Close(); err != nil {
		return types.Errorf(types.ErrKindIO, err, "write parquet")
	}
	return nil
}
