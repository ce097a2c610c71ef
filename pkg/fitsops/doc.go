/*
Package fitsops provides file level operations on top of package fits:
opening inputs by glob pattern (including compressed files), structure
tables, keyword lookup, tabular keyword export and batch header
extraction.

# Basic Usage

Print the structure of every file matching a pattern:

	paths, err := fitsops.Inputs("night1/*.fits.gz")
	if err != nil {
	    log.Fatal(err)
	}
	for _, p := range paths {
	    f, err := fitsops.OpenInput(p, fits.DefaultOptions())
	    if err != nil {
	        log.Fatal(err)
	    }
	    rows, err := fitsops.Structure(f)
	    f.Close()
	    if err != nil {
	        log.Fatal(err)
	    }
	    fitsops.WriteStructure(os.Stdout, rows)
	}

Extract the primary headers of a night into night1/<id>.hdr:

	results, err := fitsops.Extract(ctx, "/data/night1/*.fits", nil)

Export every keyword of every header as Parquet:

	rows, err := fitsops.KeywordRows(f, &fitsops.TableOptions{Header: fits.AllHeaders})
	err = fitsops.WriteParquet(out, rows)
*/
package fitsops
