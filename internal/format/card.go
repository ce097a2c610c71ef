package format

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// CardKind classifies a decoded card.
type CardKind uint8

const (
	// CardBlank is a card whose keyword field starts with a blank.
	CardBlank CardKind = iota
	// CardValue is a "KEY = value / comment" card.
	CardValue
	// CardFreeText is a COMMENT, HISTORY or ESO-LOG card.
	CardFreeText
	// CardCommentary is a card with a keyword but no value indicator.
	CardCommentary
	// CardEnd is the header terminator.
	CardEnd
)

// Card is a decoded 80-column header card.
type Card struct {
	Kind CardKind
	// Key is the keyword. HIERARCH keywords keep their full path with single
	// blanks between segments.
	Key string
	// Value is the dequoted, trimmed value token, or the free text.
	Value   string
	Comment string
	// Quoted is set when the value was a quoted string.
	Quoted bool
}

// Keyword returns the keyword of a raw card without decoding its value. It
// returns "" for blank cards.
func Keyword(card string) string {
	if card == "" || card[0] == ' ' {
		return ""
	}
	kw := strings.TrimSpace(field(card, 0, KeywordSize))
	if eq := valueIndicator(card, kw); eq > 0 && kw == KeyHierarch {
		return NormalizePath(card[:eq])
	}
	return kw
}

// valueIndicator returns the index of the '=' that separates keyword and
// value, or -1. Standard keywords carry it in column 9; HIERARCH keywords
// carry it after the last path segment.
func valueIndicator(card, kw string) int {
	if kw == KeyHierarch {
		if eq := strings.IndexByte(card[KeywordSize:], '='); eq >= 0 {
			return KeywordSize + eq
		}
		return -1
	}
	if len(card) > KeywordSize && card[KeywordSize] == '=' {
		return KeywordSize
	}
	return -1
}

// NormalizePath collapses runs of blanks between keyword segments.
func NormalizePath(path string) string {
	return strings.Join(strings.Fields(path), " ")
}

// ParseCard decodes one card.
//
// Free-text keywords keep the remainder of the card (one leading blank
// removed, trailing blanks trimmed). Value cards carry '=' in column 9, or
// after the path of a HIERARCH card; any other card is commentary. A
// quoted value runs to the first quote not followed by another quote, with
// doubled quotes unescaped. Everything after the first '/' outside the value
// is the comment.
func ParseCard(card string) (Card, error) {
	if card == "" || card[0] == ' ' {
		return Card{Kind: CardBlank}, nil
	}

	kw := strings.TrimSpace(field(card, 0, KeywordSize))
	if kw == KeyEnd {
		return Card{Kind: CardEnd, Key: KeyEnd}, nil
	}
	if IsFreeText(kw) {
		text := strings.TrimRight(card[len(kw):], " ")
		text = strings.TrimPrefix(text, " ")
		return Card{Kind: CardFreeText, Key: kw, Value: text}, nil
	}

	eq := valueIndicator(card, kw)
	if eq < 0 {
		return Card{
			Kind:  CardCommentary,
			Key:   kw,
			Value: strings.TrimRight(field(card, KeywordSize, len(card)), " "),
		}, nil
	}

	c := Card{Kind: CardValue, Key: NormalizePath(card[:eq])}
	if c.Key == "" {
		return Card{}, fmt.Errorf("%w: %q", ErrEmptyKeyword, card)
	}
	rest := strings.TrimSpace(card[eq+1:])

	if strings.HasPrefix(rest, "'") {
		end := closingQuote(rest)
		if end < 0 {
			return Card{}, fmt.Errorf("%w: %s", ErrUnterminatedString, c.Key)
		}
		c.Quoted = true
		c.Value = strings.TrimSpace(strings.ReplaceAll(rest[1:end], "''", "'"))
		rest = rest[end+1:]
		if slash := strings.IndexByte(rest, '/'); slash >= 0 {
			c.Comment = strings.TrimSpace(rest[slash+1:])
		}
		return c, nil
	}

	if slash := strings.IndexByte(rest, '/'); slash >= 0 {
		c.Comment = strings.TrimSpace(rest[slash+1:])
		rest = rest[:slash]
	}
	c.Value = strings.TrimSpace(rest)
	return c, nil
}

// closingQuote returns the index of the quote closing the string that opens
// at s[0], or -1.
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		if s[i] != '\'' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '\'' {
			i++
			continue
		}
		return i
	}
	return -1
}

// QuoteString renders a string value with doubled inner quotes, padded to
// at least MinStringWidth characters between the quotes.
func QuoteString(s string) string {
	return "'" + PadRight(strings.ReplaceAll(s, "'", "''"), MinStringWidth) + "'"
}

// RenderCard renders a standard keyword card. Numbers and logicals end at
// column ValueEnd; strings start at column 11 and are padded to ValueEnd.
// The comment is appended only if it still starts inside the card.
func RenderCard(key, value, comment string, quoted bool) string {
	line := PadRight(key, KeywordSize)
	line += "= "
	if quoted {
		line = PadRight(line+QuoteString(value), ValueEnd)
	} else {
		line = PadRight(line, ValueEnd-Width(value)) + value
	}
	return Fit(appendComment(line, comment))
}

// RenderHierarch renders a HIERARCH card. The path is padded to
// HierarchKeyWidth and the value area to HierarchValueEnd.
func RenderHierarch(path, value, comment string, quoted bool) string {
	line := PadRight(path, HierarchKeyWidth) + "= "
	if quoted {
		line += QuoteString(value)
	} else {
		line = PadRight(line, HierarchValueEnd-Width(value)) + value
	}
	line = PadRight(line, HierarchValueEnd)
	return Fit(appendComment(line, comment))
}

// RenderText renders a free-text or commentary card: the keyword padded to
// KeywordSize followed by the text.
func RenderText(key, text string) string {
	return Fit(PadRight(key, KeywordSize) + text)
}

// EndCard returns the terminator card.
func EndCard() string {
	return Fit(KeyEnd)
}

// BlankCard returns an all-blank card.
func BlankCard() string {
	return strings.Repeat(" ", CardSize)
}

func appendComment(line, comment string) string {
	if comment == "" || Width(line)+3 >= CardSize {
		return line
	}
	return line + " / " + comment
}

// Fit truncates or pads s to exactly CardSize characters.
func Fit(s string) string {
	if Width(s) <= CardSize {
		return PadRight(s, CardSize)
	}
	n := 0
	for i := range s {
		if n == CardSize {
			return s[:i]
		}
		n++
	}
	return s
}

// PadRight pads s with blanks to at least n characters.
func PadRight(s string, n int) string {
	if w := Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

// Width returns the number of characters in s. Decoded cards may hold
// multi-byte runes, so byte length is not a column count.
func Width(s string) int {
	return utf8.RuneCountInString(s)
}

func field(s string, from, to int) string {
	if from >= len(s) {
		return ""
	}
	if to > len(s) {
		to = len(s)
	}
	return s[from:to]
}
