package stego

import (
	"strings"
	"unicode/utf8"
)

// Encode turns message into carrier text.
//
// The message's scalar values become BitWidth-bit groups, each group is spelled
// with CarriersPerGroup carrier characters, and the result contains nothing
// but carrier characters. An empty message encodes to the empty string.
//
// A character above U+00FF fails with KindValueTooLarge.
func Encode(message string) (string, error) {
	groups, err := ToBitGroups(ToCodepoints(message), BitWidth)
	if err != nil {
		return "", err
	}
	carriers := make([]rune, 0, len(groups)*CarriersPerGroup)
	for _, g := range groups {
		for _, d := range digits(g) {
			c, err := carrierFor(d)
			if err != nil {
				return "", err
			}
			carriers = append(carriers, c)
		}
	}
	return ToText(carriers)
}

// AppendSecretMessage returns host followed by the encoded message.
func AppendSecretMessage(host, message string) (string, error) {
	enc, err := Encode(message)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.Grow(len(host) + len(enc))
	sb.WriteString(host)
	sb.WriteString(enc)
	return sb.String(), nil
}

// EncodedLen returns len(Encode(message)) for an encodable message without
// building the carrier text.
func EncodedLen(message string) int {
	return utf8.RuneCountInString(message) * CarriersPerGroup * utf8.RuneLen(carrierFirst)
}
