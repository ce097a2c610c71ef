// Package infer classifies keyword value tokens into type letters.
//
// Classification order:
//  1. quoted strings and the reserved words INFINITY, INF and NAN are char;
//  2. tokens that parse as a float outside [1e-15, 1e15) (zero excepted)
//     are tagged as overflow reals;
//  3. tokens without a decimal point or exponent are integers, split by range;
//  4. other numbers are floats, or doubles when they carry more than 15
//     fractional digits;
//  5. T and F are booleans, anything else is char;
//  6. char values that look like an ISO-8601 date or datetime become datetime.
package infer

import (
	"errors"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/joshuapare/fitskit/pkg/types"
)

const (
	// MaxMagnitude is the smallest magnitude tagged as overflow.
	MaxMagnitude = 1e15
	// MinMagnitude is the smallest non-zero magnitude classified as a number.
	MinMagnitude = 1e-15
	// MaxFloatDigits is the number of fractional digits that still fits a float.
	MaxFloatDigits = 15
)

var reserved = map[string]struct{}{
	"INFINITY": {},
	"INF":      {},
	"NAN":      {},
}

var dateTimeRx = regexp.MustCompile(
	`^(19|20)\d{2}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])` +
		`([T ]([01]\d|2[0-3]):[0-5]\d(:[0-5]\d(\.\d+)?)?)?$`)

// Infer classifies token. quoted reports whether the token came from a
// quoted string on the card.
func Infer(token string, quoted bool) types.Value {
	v := types.Value{Text: token, Quoted: quoted}
	v.Type = classify(token, quoted, &v)
	if v.Type == types.TypeChar && IsDateTime(token) {
		v.Type = types.TypeDateTime
	}
	return v
}

// Type returns only the type letter of token.
func Type(token string, quoted bool) types.KeyType {
	return Infer(token, quoted).Type
}

// IsDateTime reports whether s looks like an ISO-8601 date or datetime.
func IsDateTime(s string) bool {
	return dateTimeRx.MatchString(strings.TrimSpace(s))
}

func classify(token string, quoted bool, v *types.Value) types.KeyType {
	if quoted {
		return types.TypeChar
	}
	if _, ok := reserved[strings.ToUpper(token)]; ok {
		return types.TypeChar
	}

	f, ok := parseFloat(token)
	if !ok {
		switch token {
		case "T":
			v.Bool = true
			return types.TypeBool
		case "F":
			return types.TypeBool
		}
		return types.TypeChar
	}

	if abs := math.Abs(f); f != 0 && (abs >= MaxMagnitude || abs < MinMagnitude) {
		return types.TypeReal
	}

	dot := strings.IndexByte(token, '.')
	exp := strings.IndexAny(token, "eE")
	if dot < 0 && exp < 0 {
		return classifyInt(token, v)
	}

	v.Float = f
	if dot < 0 {
		return types.TypeFloat
	}
	digits := token[dot+1:]
	if exp > dot {
		digits = token[dot+1 : exp]
	}
	if len(digits) > MaxFloatDigits {
		return types.TypeDouble
	}
	return types.TypeFloat
}

func classifyInt(token string, v *types.Value) types.KeyType {
	n, err := strconv.ParseInt(token, 10, 32)
	if err != nil {
		b, ok := new(big.Int).SetString(token, 10)
		if ok {
			v.Big = b
		}
		return types.TypeLong
	}
	v.Int = n
	switch {
	case n >= 0 && n < 256:
		return types.TypeUByte
	case n > -65536 && n < 65536:
		return types.TypeShort
	default:
		return types.TypeInt
	}
}

// parseFloat accepts decimal literals only. Values too large for float64
// still count as numbers so they can be tagged as overflow.
func parseFloat(token string) (float64, bool) {
	if token == "" || !decimalOnly(token) {
		return 0, false
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

func decimalOnly(token string) bool {
	for i := 0; i < len(token); i++ {
		switch c := token[i]; {
		case c >= '0' && c <= '9', c == '.', c == '+', c == '-', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return true
}
