package stego

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/runenames"
)

// Describe lists the scalar values of s, one per line, as "U+XXXX NAME".
// Carrier characters are marked with a trailing "*". It is meant for
// inspecting composite text, where carriers are otherwise invisible.
func Describe(s string) string {
	var sb strings.Builder
	for _, r := range s {
		name := runenames.Name(r)
		if name == "" {
			name = "<unnamed>"
		}
		fmt.Fprintf(&sb, "U+%04X %s", r, name)
		if IsCarrier(r) {
			sb.WriteString(" *")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
