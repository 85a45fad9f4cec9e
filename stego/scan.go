package stego

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// FoundSecretMessage is a decoded message and the byte range of the carrier
// run it was read from.
type FoundSecretMessage struct {
	SecretMessage string
	Range         Range
}

// CarrierRuns returns the maximal runs of carrier characters in s, left to right.
func CarrierRuns(s string) []Range {
	var runs []Range
	start := -1
	for i, r := range s {
		switch {
		case IsCarrier(r) && start < 0:
			start = i
		case !IsCarrier(r) && start >= 0:
			runs = append(runs, Range{Offset: start, Length: i - start})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, Range{Offset: start, Length: len(s) - start})
	}
	return runs
}

// FindAll decodes every carrier run in s.
//
// Messages are returned in left-to-right order. A run that cannot be decoded
// does not stop the scan: it is left out of the result and reported as a
// KindMalformedPayload *Error whose Range locates the run. All such errors are
// joined into the returned error, so callers can use the partial result and
// still inspect the failures with Errors. Text without carriers yields no
// messages and a nil error.
func FindAll(s string) ([]FoundSecretMessage, error) {
	var found []FoundSecretMessage
	var errs []error
	for _, run := range CarrierRuns(s) {
		msg, err := DecodeOne(s[run.Offset:run.End()])
		if err != nil {
			var e *Error
			if errors.As(err, &e) {
				located := *e
				located.Range = run
				errs = append(errs, &located)
			} else {
				errs = append(errs, err)
			}
			continue
		}
		found = append(found, FoundSecretMessage{SecretMessage: msg, Range: run})
	}
	return found, errors.Join(errs...)
}

// DecodeOne decodes a single, already isolated carrier run.
//
// The run must consist of carrier characters only, and their count must be a
// multiple of CarriersPerGroup; anything else is KindMalformedPayload.
func DecodeOne(run string) (string, error) {
	ds := make([]uint8, 0, utf8.RuneCountInString(run))
	for i, r := range run {
		d, ok := digitFor(r)
		if !ok {
			return "", newErrorf(KindMalformedPayload, RuleNonCarrierInRun,
				"non-carrier character U+%04X at byte %d", r, i)
		}
		ds = append(ds, d)
	}
	if len(ds)%CarriersPerGroup != 0 {
		return "", newErrorf(KindMalformedPayload, RuleRunLength,
			"carrier run of %d characters is not a multiple of %d", len(ds), CarriersPerGroup)
	}
	scalars, err := ToScalars(groupsFromDigits(ds), BitWidth)
	if err != nil {
		return "", wrapError(KindMalformedPayload, RuleGroupLength, "regroup carrier run", err)
	}
	return ToText(scalars)
}

// Strip removes every carrier run from s, including runs that do not decode.
// The result is the visible text in its original order; Strip(Strip(s)) == Strip(s).
func Strip(s string) string {
	runs := CarrierRuns(s)
	if len(runs) == 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	prev := 0
	for _, run := range runs {
		sb.WriteString(s[prev:run.Offset])
		prev = run.End()
	}
	sb.WriteString(s[prev:])
	return sb.String()
}
