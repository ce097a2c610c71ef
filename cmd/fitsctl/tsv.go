package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fitskit/pkg/fitsops"
)

var (
	tsvHeader  int
	tsvAll     bool
	tsvDBCM    bool
	tsvKey     string
	tsvParquet string
)

func init() {
	cmd := newTSVCmd()
	cmd.Flags().IntVarP(&tsvHeader, "header", "H", 0, "Number of the header to export")
	cmd.Flags().BoolVarP(&tsvAll, "all", "a", true, "Export all headers")
	cmd.Flags().BoolVar(&tsvDBCM, "dbcm", false, "Add file prefix, numeric and datetime columns")
	cmd.Flags().StringVarP(&tsvKey, "key", "s", "", "Export only this keyword")
	cmd.Flags().StringVar(&tsvParquet, "parquet", "", "Write a Parquet file instead of TSV to stdout")
	rootCmd.AddCommand(cmd)
}

func newTSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tsv <file>...",
		Short: "Export keywords as tab separated values or Parquet",
		Long: `The tsv command writes one row per header card: file id, header
number, card number, keyword, value, comment and type letter. With --dbcm
a file prefix column is prepended and numeric and datetime columns are
appended. All headers are exported unless --all=false is given.

Type letters: B boolean, C string, U unsigned byte, S short, I int, L long,
F float, D double, R number out of range, T datetime.

Example:
  fitsctl tsv image.fits
  fitsctl tsv *.fits.gz --dbcm --parquet keywords.parquet
  fitsctl tsv image.fits --all=false --header 1 --key EXPTIME`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTSV(args)
		},
	}
}

func runTSV(args []string) error {
	opts := &fitsops.TableOptions{
		Header: headerArg(tsvHeader, tsvAll),
		DBCM:   tsvDBCM,
		Key:    tsvKey,
	}

	var all []fitsops.KeywordRow
	failed := 0
	for _, path := range args {
		rows, err := tsvFile(path, opts)
		if err != nil {
			printError("%s: %v\n", path, err)
			failed++
			continue
		}
		if tsvParquet != "" {
			all = append(all, rows...)
			continue
		}
		if err := fitsops.WriteTSV(os.Stdout, rows, tsvDBCM); err != nil {
			return err
		}
	}

	if tsvParquet != "" {
		if err := writeParquet(tsvParquet, all); err != nil {
			return err
		}
		printVerbose("Wrote %d rows to %s\n", len(all), tsvParquet)
	}
	return failures(failed)
}

func tsvFile(path string, opts *fitsops.TableOptions) ([]fitsops.KeywordRow, error) {
	f, err := fitsops.OpenInput(path, fileOptions())
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return fitsops.KeywordRows(f, opts)
}

func writeParquet(path string, rows []fitsops.KeywordRow) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := fitsops.WriteParquet(out, rows); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
