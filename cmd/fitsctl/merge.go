package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/fitskit/pkg/fitsops"
)

var (
	mergeExt int
	mergeOut string
)

func init() {
	cmd := newMergeCmd()
	cmd.Flags().IntVarP(&mergeExt, "ext", "e", 1, "Number of the IMAGE extension to merge")
	cmd.Flags().StringVarP(&mergeOut, "out", "o", "", "Output file (default <name>.new<ext> in the current directory)")
	rootCmd.AddCommand(cmd)
}

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <file>",
		Short: "Merge an IMAGE extension into the primary header",
		Long: `The merge command writes a copy of a FITS file in which the keywords
of an IMAGE extension are merged into the primary header and the
extension's data becomes the primary data. The primary header must not
have data of its own. Other extensions are copied unchanged.

Example:
  fitsctl merge image.fits
  fitsctl merge image.fits --ext 2 --out merged.fits`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(args)
		},
	}
}

func runMerge(args []string) error {
	path := args[0]
	out := mergeOut
	if out == "" {
		out = fitsops.MergedName(path)
	}
	opts := &fitsops.MergeOptions{Extension: mergeExt, File: fileOptions()}
	if err := fitsops.MergeFile(path, out, opts); err != nil {
		return err
	}
	printInfo("Merged extension %d of %s into %s\n", mergeExt, path, out)
	return nil
}
