// Package printer renders FITS headers as 80-column cards, XFits XML or
// VOTable XML.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/fitskit/internal/format"
	"github.com/joshuapare/fitskit/pkg/header"
	"github.com/joshuapare/fitskit/pkg/types"
)

const (
	DefaultIndentSize = 3
	DefaultCreator    = "fitskit"
)

// Version is reported in VOTable documents.
var Version = "dev"

// Format specifies the output format for printing.
type Format string

const (
	// FormatFITS outputs 80-column header cards.
	FormatFITS Format = "fits"

	// FormatXFits outputs the XFits XML document.
	FormatXFits Format = "xfits"

	// FormatVOTable outputs a VOTable 1.1 document.
	FormatVOTable Format = "vo"
)

// ParseFormat maps a user supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch name := strings.ToLower(strings.TrimSpace(s)); {
	case name == "vo" || name == "votable":
		return FormatVOTable, nil
	case strings.HasPrefix(name, "xf"):
		return FormatXFits, nil
	case name == "fits" || name == "hdr" || name == "":
		return FormatFITS, nil
	default:
		return "", types.Errorf(types.ErrKindStructure, nil, "unknown output format %q (want fits, xfits or vo)", s)
	}
}

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (fits, xfits, vo).
	// Default: FormatFITS
	Format Format

	// IndentSize is the number of spaces per nesting level (XML formats only).
	// Default: 3
	IndentSize int

	// Pretty enables indentation of XML output.
	// Default: true
	Pretty bool

	// LineBreaks ends every FITS card with a newline instead of writing
	// the bare 2880-byte blocks.
	// Default: false
	LineBreaks bool

	// Parse decodes every card of a header before printing it.
	// Default: true
	Parse bool

	// SourceName is the file name recorded in VOTable descriptions.
	SourceName string

	// Creator is recorded in VOTable documents.
	// Default: "fitskit"
	Creator string
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:     FormatFITS,
		IndentSize: DefaultIndentSize,
		Pretty:     true,
		Parse:      true,
		Creator:    DefaultCreator,
	}
}

func (o Options) indent() string {
	if !o.Pretty {
		return ""
	}
	return strings.Repeat(" ", o.IndentSize)
}

// Printer writes headers in one of the supported formats.
type Printer struct {
	w    io.Writer
	opts Options
}

// New creates a new Printer.
func New(w io.Writer, opts Options) *Printer {
	if opts.Format == "" {
		opts.Format = FormatFITS
	}
	if opts.Creator == "" {
		opts.Creator = DefaultCreator
	}
	return &Printer{w: w, opts: opts}
}

// Print writes hdrs as one document. Output is encoded as ISO-8859-1.
func (p *Printer) Print(hdrs []*header.Header) error {
	if p.opts.Parse {
		for _, h := range hdrs {
			if h.Parsed() {
				continue
			}
			if err := h.Parse(); err != nil {
				return err
			}
		}
	}

	switch p.opts.Format {
	case FormatFITS:
		sep := ""
		if p.opts.LineBreaks {
			sep = "\n"
		}
		for _, h := range hdrs {
			for _, card := range FITSCards(h) {
				if err := p.write(card + sep); err != nil {
					return err
				}
			}
		}
		return nil
	case FormatXFits:
		return p.writeLines(XFitsDocument(hdrs, p.opts.indent()))
	case FormatVOTable:
		return p.writeLines(VOTableDocument(hdrs, p.opts.SourceName, p.opts.Creator, p.opts.indent()))
	default:
		return types.Errorf(types.ErrKindStructure, nil, "unknown output format %q", p.opts.Format)
	}
}

func (p *Printer) writeLines(lines []string) error {
	for _, line := range lines {
		if err := p.write(line + "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) write(s string) error {
	if _, err := p.w.Write(format.EncodeLatin1(s)); err != nil {
		return fmt.Errorf("printer: %w", err)
	}
	return nil
}
