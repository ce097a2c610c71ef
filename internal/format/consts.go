// Package format houses low-level codecs for FITS header cards. The goal is
// to keep card parsing and rendering focused and independent from the public
// API so higher-level packages can orchestrate the keywords in a more
// ergonomic form.
package format

import "bytes"

var (
	// SimpleSignature opens the primary header of every FITS file.
	// Layout:
	//   0x00  'S' 'I' 'M' 'P' 'L' 'E'
	SimpleSignature = []byte("SIMPLE")

	// XtensionSignature opens every extension header.
	XtensionSignature = []byte("XTENSION")
)

const (
	// BlockSize is the size of a FITS logical record. Headers and data areas
	// are both padded to a multiple of this value.
	BlockSize = 2880

	// CardSize is the fixed width of a header card.
	CardSize = 80

	// CardsPerBlock is the number of cards in one header block.
	CardsPerBlock = BlockSize / CardSize

	// KeywordSize is the width of the keyword field of a card.
	KeywordSize = 8

	// ValueEnd is the column where fixed-format values end (right-justified
	// numbers) or are padded to (strings).
	ValueEnd = 30

	// HierarchKeyWidth is the width HIERARCH keywords are padded to before "= ".
	HierarchKeyWidth = 29

	// HierarchValueEnd is the value column end for HIERARCH cards.
	HierarchValueEnd = 43

	// MinStringWidth is the minimum number of characters between the quotes
	// of a string value.
	MinStringWidth = 8

	// BlockAlignmentMask is used to round sizes up to the next block.
	BlockAlignmentMask = BlockSize - 1
)

// Reserved keyword names.
const (
	KeySimple   = "SIMPLE"
	KeyXtension = "XTENSION"
	KeyEnd      = "END"
	KeyHierarch = "HIERARCH"
	KeyComment  = "COMMENT"
	KeyHistory  = "HISTORY"
	KeyESOLog   = "ESO-LOG"
	KeyBitpix   = "BITPIX"
	KeyNaxis    = "NAXIS"
	KeyExtend   = "EXTEND"
	KeyPcount   = "PCOUNT"
	KeyGcount   = "GCOUNT"
	KeyExtname  = "EXTNAME"
)

// FreeTextKeys lists the keywords whose cards carry free text instead of a
// value and may repeat within one header.
var FreeTextKeys = []string{KeyComment, KeyHistory, KeyESOLog}

// IsFreeText reports whether key is a free-text keyword.
func IsFreeText(key string) bool {
	for _, k := range FreeTextKeys {
		if key == k {
			return true
		}
	}
	return false
}

// HasSignature reports whether block starts a FITS header.
func HasSignature(block []byte) bool {
	return bytes.HasPrefix(block, SimpleSignature) || bytes.HasPrefix(block, XtensionSignature)
}
