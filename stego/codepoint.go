package stego

import (
	"strings"
	"unicode/utf8"
)

// ToText builds a string from Unicode scalar values, one character per value.
//
// Values above U+FFFF are written as their full multi-byte encoding. A
// surrogate (U+D800..U+DFFF), a negative value, or a value above U+10FFFF
// fails with KindInvalidScalarValue; no partial string is returned.
func ToText(codepoints []rune) (string, error) {
	var sb strings.Builder
	sb.Grow(len(codepoints))
	for i, cp := range codepoints {
		if !utf8.ValidRune(cp) {
			if cp >= 0xD800 && cp <= 0xDFFF {
				return "", newErrorf(KindInvalidScalarValue, RuleInvalidScalar, "surrogate code point U+%04X at index %d", cp, i)
			}
			return "", newErrorf(KindInvalidScalarValue, RuleInvalidScalar, "code point %#x outside the Unicode range at index %d", cp, i)
		}
		sb.WriteRune(cp)
	}
	return sb.String(), nil
}

// ToCodepoints returns the scalar values of s, one per character. A
// multi-byte character is never split. Invalid UTF-8 bytes yield U+FFFD,
// one per bad byte.
func ToCodepoints(s string) []rune {
	out := make([]rune, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, r)
	}
	return out
}
