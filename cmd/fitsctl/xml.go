package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fitskit/fits"
	"github.com/joshuapare/fitskit/fits/printer"
	"github.com/joshuapare/fitskit/pkg/fitsops"
	"github.com/joshuapare/fitskit/pkg/header"
)

var (
	xmlFormat  string
	xmlHeader  int
	xmlAll     bool
	xmlCompact bool
	xmlIndent  int
)

func init() {
	cmd := newXMLCmd()
	cmd.Flags().StringVarP(&xmlFormat, "format", "f", "vo", "XML flavour: vo (VOTable) or xf (XFits)")
	cmd.Flags().IntVarP(&xmlHeader, "header", "H", 0, "Number of the header to convert")
	cmd.Flags().BoolVarP(&xmlAll, "all", "a", false, "Convert all headers")
	cmd.Flags().BoolVar(&xmlCompact, "compact", false, "Do not indent nested elements")
	cmd.Flags().IntVar(&xmlIndent, "indent", printer.DefaultIndentSize, "Spaces per nesting level")
	rootCmd.AddCommand(cmd)
}

func newXMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "xml <file>",
		Short: "Convert FITS headers to XML",
		Long: `The xml command writes the headers of a file as a VOTable or XFits
document encoded as ISO-8859-1. In XFits output HIERARCH keywords become
nested elements.

Example:
  fitsctl xml image.fits
  fitsctl xml image.fits.gz --format xf --all > image.xml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runXML(args)
		},
	}
}

func runXML(args []string) error {
	format, err := printer.ParseFormat(xmlFormat)
	if err != nil {
		return err
	}
	if format == printer.FormatFITS {
		format = printer.FormatVOTable
	}

	path := args[0]
	f, err := fitsops.OpenInput(path, fileOptions())
	if err != nil {
		return err
	}
	defer f.Close()

	var hdrs []*header.Header
	if n := headerArg(xmlHeader, xmlAll); n == fits.AllHeaders {
		hdrs, err = f.ReadAll()
	} else {
		var h *header.Header
		h, err = f.Header(n)
		hdrs = []*header.Header{h}
	}
	if err != nil {
		return err
	}

	opts := printer.DefaultOptions()
	opts.Format = format
	opts.Pretty = !xmlCompact
	opts.IndentSize = xmlIndent
	opts.SourceName = filepath.Base(path)
	opts.Creator = "fitsctl"
	return printer.New(os.Stdout, opts).Print(hdrs)
}
