package stego

import "fmt"

// Range locates a span of a string in byte offsets.
type Range struct {
	Offset int
	Length int
}

// End returns the offset one past the last byte of the range.
func (r Range) End() int { return r.Offset + r.Length }

func (r Range) String() string {
	return fmt.Sprintf("{%d, %d}", r.Offset, r.Length)
}

// UTF16Range projects a byte range of s onto UTF-16 code units, the index
// space used by UTF-16 based string APIs. Offsets past len(s) are clamped.
func UTF16Range(s string, r Range) Range {
	start := utf16Len(s[:clamp(r.Offset, len(s))])
	end := utf16Len(s[:clamp(r.End(), len(s))])
	return Range{Offset: start, Length: end - start}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
