package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fitskit/fits"
	"github.com/joshuapare/fitskit/fits/printer"
	"github.com/joshuapare/fitskit/pkg/fitsops"
)

var (
	showHeader int
	showAll    bool
	showRaw    bool
)

func init() {
	cmd := newShowCmd()
	cmd.Flags().IntVarP(&showHeader, "header", "H", 0, "Number of the header to print")
	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "Print all headers")
	cmd.Flags().BoolVar(&showRaw, "raw", false, "Write 2880-byte blocks without line breaks")
	rootCmd.AddCommand(cmd)
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>...",
		Short: "Print FITS headers as cards",
		Long: `The show command prints a header of each file as 80-column cards,
one card per line. By default the primary header is printed.

Example:
  fitsctl show image.fits
  fitsctl show image.fits.gz --header 2
  fitsctl show image.fits --all --raw > image.hdr`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(args)
		},
	}
}

func runShow(args []string) error {
	failed := 0
	for _, path := range args {
		if err := showFile(path); err != nil {
			printError("%s: %v\n", path, err)
			failed++
		}
	}
	return failures(failed)
}

func showFile(path string) error {
	printVerbose("Opening %s\n", path)
	f, err := fitsops.OpenInput(path, fileOptions())
	if err != nil {
		return err
	}
	defer f.Close()

	n := headerArg(showHeader, showAll)
	hdrs, err := f.ReadAll()
	if err != nil {
		return err
	}
	if n != fits.AllHeaders {
		if n < 0 || n >= len(hdrs) {
			return fmt.Errorf("header %d not found (%d headers)", n, len(hdrs))
		}
		hdrs = hdrs[n : n+1]
	}

	opts := printer.DefaultOptions()
	opts.LineBreaks = !showRaw
	return printer.New(os.Stdout, opts).Print(hdrs)
}
