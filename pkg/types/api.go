package types

import (
	"fmt"
	"math/big"
	"strings"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindNotFound    ErrKind = iota // missing file, header or keyword
	ErrKindUnsupported                // input that is not a FITS stream
	ErrKindMalformed                  // card that cannot be decoded
	ErrKindStructure                  // keyword tree collision or bad request
	ErrKindIO                         // read failure or truncated block
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "not found"
	case ErrKindUnsupported:
		return "unsupported"
	case ErrKindMalformed:
		return "malformed"
	case ErrKindStructure:
		return "structure"
	case ErrKindIO:
		return "io"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// holds for every not-found error regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e != nil && t.Kind == e.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrNotFound indicates a missing file, header or keyword.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	// ErrUnsupportedStream indicates the input is a directory or not a FITS stream.
	ErrUnsupportedStream = &Error{Kind: ErrKindUnsupported, Msg: "unsupported stream"}
	// ErrMalformedCard indicates a card that could not be decoded.
	ErrMalformedCard = &Error{Kind: ErrKindMalformed, Msg: "malformed card"}
	// ErrStructure indicates a keyword path that collides with the keyword tree.
	ErrStructure = &Error{Kind: ErrKindStructure, Msg: "keyword structure conflict"}
	// ErrIO indicates a read failure or a truncated block.
	ErrIO = &Error{Kind: ErrKindIO, Msg: "i/o error"}
)

// Errorf builds a typed error with a formatted message.
func Errorf(kind ErrKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// -----------------------------------------------------------------------------
// Keyword types
// -----------------------------------------------------------------------------

// KeyType is the one-letter classification of a keyword value.
type KeyType byte

const (
	TypeUnknown  KeyType = 0
	TypeBool     KeyType = 'B'
	TypeChar     KeyType = 'C'
	TypeUByte    KeyType = 'U'
	TypeShort    KeyType = 'S'
	TypeInt      KeyType = 'I'
	TypeLong     KeyType = 'L'
	TypeFloat    KeyType = 'F'
	TypeDouble   KeyType = 'D'
	TypeReal     KeyType = 'R' // numeric but outside the representable range
	TypeDateTime KeyType = 'T'
)

// String returns the type letter.
func (t KeyType) String() string {
	if t == TypeUnknown {
		return ""
	}
	return string(rune(t))
}

// Datatype returns the VOTable datatype name for t.
func (t KeyType) Datatype() string {
	switch t {
	case TypeBool:
		return "boolean"
	case TypeChar, TypeDateTime:
		return "char"
	case TypeUByte:
		return "unsignedByte"
	case TypeShort:
		return "short"
	case TypeInt:
		return "int"
	case TypeLong:
		return "long"
	case TypeFloat:
		return "float"
	case TypeDouble, TypeReal:
		return "double"
	default:
		return ""
	}
}

// Numeric reports whether values of type t carry a number that can be
// stored in a numeric column.
func (t KeyType) Numeric() bool {
	switch t {
	case TypeUByte, TypeShort, TypeInt, TypeLong, TypeFloat, TypeDouble:
		return true
	default:
		return false
	}
}

// ParseKeyType converts a type letter back to a KeyType.
func ParseKeyType(s string) (KeyType, error) {
	if len(s) != 1 {
		return TypeUnknown, Errorf(ErrKindStructure, nil, "invalid key type %q", s)
	}
	t := KeyType(s[0])
	if t.Datatype() == "" {
		return TypeUnknown, Errorf(ErrKindStructure, nil, "invalid key type %q", s)
	}
	return t, nil
}

// -----------------------------------------------------------------------------
// Values
// -----------------------------------------------------------------------------

// Value is a decoded keyword value. Text always holds the token as it
// appeared on the card (dequoted for strings) so re-rendering does not
// depend on number formatting. Only the field matching Type is populated.
type Value struct {
	Type   KeyType
	Text   string
	Quoted bool

	Bool  bool
	Int   int64    // TypeUByte, TypeShort, TypeInt
	Big   *big.Int // TypeLong
	Float float64  // TypeFloat, TypeDouble

	// Seq holds the ordered texts of a free-text keyword.
	Seq []string
}

// String returns the textual form. Free-text values are joined by newlines.
func (v Value) String() string {
	if len(v.Seq) > 0 {
		return strings.Join(v.Seq, "\n")
	}
	return v.Text
}

// Native returns the value as bool, int64, *big.Int, float64, string or
// []string depending on Type.
func (v Value) Native() any {
	if len(v.Seq) > 0 {
		return v.Seq
	}
	switch v.Type {
	case TypeBool:
		return v.Bool
	case TypeUByte, TypeShort, TypeInt:
		return v.Int
	case TypeLong:
		return v.Big
	case TypeFloat, TypeDouble:
		return v.Float
	default:
		return v.Text
	}
}

// Entry is a keyword update request.
type Entry struct {
	Path    string
	Value   Value
	Comment string
	// Index is the card position. A negative index appends before END.
	Index int
	// Commentary marks a keyword card without a value indicator.
	Commentary bool
}
