package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fitskit/pkg/fitsops"
)

var structCheck bool

func init() {
	cmd := newStructCmd()
	cmd.Flags().BoolVar(&structCheck, "check", false, "Compute the CRC-32 of every data area")
	rootCmd.AddCommand(cmd)
}

func newStructCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "struct <file>...",
		Short: "Show the header structure of FITS files",
		Long: `The struct command lists the headers of each file with their axes,
byte position and, with --check, the CRC-32 datasum of the data area.
Without --check the datasum is -1 unless the input is compressed.

Example:
  fitsctl struct image.fits
  fitsctl struct image.fits.gz --check`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStruct(args)
		},
	}
}

func runStruct(args []string) error {
	failed := 0
	for _, path := range args {
		if len(args) > 1 {
			printInfo("%s\n", path)
		}
		if err := structFile(path); err != nil {
			printError("%s: %v\n", path, err)
			failed++
		}
	}
	return failures(failed)
}

func structFile(path string) error {
	opts := fileOptions()
	opts.Checksum = structCheck
	f, err := fitsops.OpenInput(path, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := fitsops.Structure(f)
	if err != nil {
		return err
	}
	return fitsops.WriteStructure(os.Stdout, rows)
}
