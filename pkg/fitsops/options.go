package fitsops

import (
	"runtime"

	"github.com/joshuapare/fitskit/fits"
	"github.com/joshuapare/fitskit/fits/printer"
)

// NotFound is the value reported for a keyword missing from a header.
const NotFound = "*not found*"

// TableOptions controls the tabular keyword projection.
type TableOptions struct {
	// Header selects one header, or fits.AllHeaders.
	// Default: 0
	Header int

	// DBCM adds the file prefix, numeric and datetime columns.
	DBCM bool

	// Key restricts the rows to one keyword. Headers without it yield a
	// single not-found row.
	Key string
}

// ExtractOptions controls batch extraction.
type ExtractOptions struct {
	// Format selects the output. FormatFITS writes the raw primary header
	// to <id>.hdr; the XML formats write <id>.xml.
	// Default: printer.FormatFITS
	Format printer.Format

	// Header selects the header written by the XML formats, or
	// fits.AllHeaders.
	// Default: 0
	Header int

	// OutDir is the directory below which the per-night directories are
	// created.
	// Default: "."
	OutDir string

	// Jobs bounds the number of files processed concurrently.
	// Default: runtime.NumCPU()
	Jobs int

	// File is passed to every opened input.
	File fits.Options

	// Printer configures the XML formats. Format and SourceName are set
	// per file.
	Printer printer.Options
}

// DefaultExtractOptions returns the options used when Extract is given nil.
func DefaultExtractOptions() *ExtractOptions {
	return &ExtractOptions{
		Format:  printer.FormatFITS,
		OutDir:  ".",
		Jobs:    runtime.NumCPU(),
		File:    fits.DefaultOptions(),
		Printer: printer.DefaultOptions(),
	}
}

// MergeOptions controls MergeExtension.
type MergeOptions struct {
	// Extension is the number of the IMAGE extension merged into the
	// primary header.
	// Default: 1
	Extension int

	// File is passed to the opened input. Key is ignored.
	File fits.Options
}
