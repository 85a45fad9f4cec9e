package stego

import (
	"maps"
	"sort"
)

// Attributes are display attributes keyed by name (font, color, ...).
type Attributes map[string]string

// Span applies Attributes to a byte range of an AttributedString's text.
type Span struct {
	Range      Range
	Attributes Attributes
}

// AttributedString is text plus per-range display attributes.
//
// Spans are kept sorted by offset and never overlap.
type AttributedString struct {
	Text  string
	Spans []Span
}

// AppendSecretMessageAttributed appends the encoded message to a.
//
// The carrier run takes the attributes in effect at the end of the host
// text, the way typed text would, so it adds no glyph and cannot shift layout.
// When the host is empty or its tail is unattributed, the run gets no span.
// a is not modified.
func AppendSecretMessageAttributed(a AttributedString, message string) (AttributedString, error) {
	enc, err := Encode(message)
	if err != nil {
		return AttributedString{}, err
	}
	out := AttributedString{
		Text:  a.Text + enc,
		Spans: cloneSpans(a.Spans),
	}
	if enc == "" || len(a.Text) == 0 {
		return out, nil
	}
	last := -1
	for i, sp := range out.Spans {
		if sp.Range.Offset < len(a.Text) && sp.Range.End() >= len(a.Text) {
			last = i
		}
	}
	if last < 0 {
		return out, nil
	}
	if out.Spans[last].Range.End() == len(a.Text) {
		// Extend the trailing span over the carrier run.
		out.Spans[last].Range.Length += len(enc)
	}
	return out, nil
}

// FindAllAttributed is FindAll over the text of a.
func FindAllAttributed(a AttributedString) ([]FoundSecretMessage, error) {
	return FindAll(a.Text)
}

// StripAttributed removes every carrier run from a and remaps the spans onto
// the stripped text. Spans that covered only carrier characters are dropped.
func StripAttributed(a AttributedString) AttributedString {
	runs := CarrierRuns(a.Text)
	if len(runs) == 0 {
		return AttributedString{Text: a.Text, Spans: cloneSpans(a.Spans)}
	}
	out := AttributedString{Text: Strip(a.Text)}
	for _, sp := range a.Spans {
		start := remapOffset(runs, sp.Range.Offset)
		end := remapOffset(runs, sp.Range.End())
		if end <= start {
			continue
		}
		out.Spans = append(out.Spans, Span{
			Range:      Range{Offset: start, Length: end - start},
			Attributes: maps.Clone(sp.Attributes),
		})
	}
	return out
}

// remapOffset maps a byte offset in the original text to the stripped text.
// An offset inside a run maps to the run's start.
func remapOffset(runs []Range, off int) int {
	removed := 0
	for _, run := range runs {
		if run.Offset >= off {
			break
		}
		if run.End() <= off {
			removed += run.Length
			continue
		}
		removed += off - run.Offset
	}
	return off - removed
}

func cloneSpans(spans []Span) []Span {
	if spans == nil {
		return nil
	}
	out := make([]Span, len(spans))
	for i, sp := range spans {
		out[i] = Span{Range: sp.Range, Attributes: maps.Clone(sp.Attributes)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Range.Offset < out[j].Range.Offset })
	return out
}
