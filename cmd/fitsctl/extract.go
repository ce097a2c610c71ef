package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fitskit/fits/printer"
	"github.com/joshuapare/fitskit/pkg/fitsops"
)

var (
	extractXML    string
	extractJobs   int
	extractOutDir string
	extractHeader int
	extractAll    bool
)

func init() {
	cmd := newExtractCmd()
	cmd.Flags().StringVarP(&extractXML, "xml", "x", "", "Write XML (vo or xf) instead of the raw primary header")
	cmd.Flags().IntVarP(&extractJobs, "jobs", "j", 0, "Files processed concurrently (0 = number of CPUs)")
	cmd.Flags().StringVarP(&extractOutDir, "out-dir", "o", ".", "Directory receiving the per-night directories")
	cmd.Flags().IntVarP(&extractHeader, "header", "H", 0, "Header written as XML")
	cmd.Flags().BoolVarP(&extractAll, "all", "a", false, "Write all headers as XML")
	rootCmd.AddCommand(cmd)
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <pattern>...",
		Short: "Extract headers into .hdr or .xml files",
		Long: `The extract command writes the headers of every file matching the
patterns into <out-dir>/<night>/<id>.hdr, where night is the last directory
of the input path and id the file name without extensions. With --xml the
output is a VOTable (vo) or XFits (xf) document in <id>.xml.

Quote patterns to keep the shell from expanding them.

Example:
  fitsctl extract "/data/2024-01-01/*.fits.gz"
  fitsctl extract "/data/*/*.fits" --xml xf --all --jobs 8 -o headers`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runExtract(ctx, args)
		},
	}
}

func runExtract(ctx context.Context, args []string) error {
	opts := fitsops.DefaultExtractOptions()
	opts.OutDir = extractOutDir
	if extractJobs > 0 {
		opts.Jobs = extractJobs
	}
	opts.File = fileOptions()
	opts.Header = headerArg(extractHeader, extractAll)
	if extractXML != "" {
		format, err := printer.ParseFormat(extractXML)
		if err != nil {
			return err
		}
		if format == printer.FormatFITS {
			format = printer.FormatVOTable
		}
		opts.Format = format
		opts.Printer.Creator = "fitsctl"
	}

	failed := 0
	for _, pattern := range args {
		results, err := fitsops.Extract(ctx, pattern, opts)
		if err != nil {
			printError("%s: %v\n", pattern, err)
			failed++
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		for _, r := range results {
			if r.Err != nil {
				printError("%s: %v\n", r.Input, r.Err)
				failed++
				continue
			}
			printInfo("%s -> %s\n", r.Input, r.Output)
		}
	}
	return failures(failed)
}
