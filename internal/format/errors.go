package format

import "errors"

var (
	// ErrSignatureMismatch indicates a block did not start with SIMPLE or XTENSION.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the stream ended inside a block.
	ErrTruncated = errors.New("format: truncated block")
	// ErrUnterminatedString indicates a quoted card value had no closing quote.
	ErrUnterminatedString = errors.New("format: unterminated string value")
	// ErrEmptyKeyword indicates a card or path without a keyword.
	ErrEmptyKeyword = errors.New("format: empty keyword")
)
