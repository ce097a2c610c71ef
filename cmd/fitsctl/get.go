package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fitskit/fits"
	"github.com/joshuapare/fitskit/pkg/fitsops"
)

var (
	getHeader int
	getAll    bool
	getCard   bool
)

func init() {
	cmd := newGetCmd()
	cmd.Flags().IntVarP(&getHeader, "header", "H", 0, "Number of the header to search")
	cmd.Flags().BoolVarP(&getAll, "all", "a", false, "Search all headers")
	cmd.Flags().BoolVar(&getCard, "card", false, "Print the original card instead of the value")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <keyword> <file>...",
		Short: "Print the value of a keyword",
		Long: `The get command prints one tab separated line per file and header:
file name, header number, keyword and value. Headers without the keyword
report *not found*. HIERARCH keywords are given with their full path.

Example:
  fitsctl get OBJECT *.fits
  fitsctl get "HIERARCH ESO DET DIT" image.fits --all
  fitsctl get DATE-OBS image.fits --card`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
}

func runGet(args []string) error {
	key := args[0]
	failed := 0
	for _, path := range args[1:] {
		if err := getFile(key, path); err != nil {
			printError("%s: %v\n", path, err)
			failed++
		}
	}
	return failures(failed)
}

func getFile(key, path string) error {
	opts := fileOptions()
	opts.Key = key
	f, err := fitsops.OpenInput(path, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	n := headerArg(getHeader, getAll)
	if getCard {
		if n == fits.AllHeaders {
			return fmt.Errorf("--card needs a single header")
		}
		card, err := f.Card(key, n)
		if err != nil {
			return err
		}
		_, err = os.Stdout.WriteString(card + "\n")
		return err
	}

	rows, err := fitsops.LookupKey(f, key, n)
	if err != nil {
		return err
	}
	return fitsops.WriteLookup(os.Stdout, rows)
}
