// Package fits reads the headers of FITS files.
//
// # Overview
//
// A FITS file is a sequence of header-data units. Each header is a run of
// 2880-byte blocks holding 80-column cards and ends with an END card; the
// data area that follows is padded to a whole block. This package scans the
// headers, skipping or checksumming the data areas, and hands out
// header.Header values whose keyword stores can be parsed on demand.
//
// # Key Types
//
//   - File: an opened stream with its scanned headers
//   - Options: key selection, header-only mode, checksum and logging
//
// # Usage
//
//	f, err := fits.Open("image.fits", fits.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//
//	hdrs, err := f.ReadAll()
//	...
//	if err := f.Parse(); err != nil {
//		return err
//	}
//	fmt.Println(hdrs[0].Keywords.Value("OBJECT"))
//
// Rendering headers as cards, XFits or VOTable is done by the printer
// subpackage.
package fits
