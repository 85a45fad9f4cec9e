package stego

import (
	"errors"
	"fmt"
)

// Kind is a stable category for programmatic error handling.
//
// Callers should branch on Kind/RuleID rather than matching error strings.
// Use errors.As to extract *Error for structured handling.
type Kind string

// Error kinds.
//
// InvalidScalarValue and ValueTooLarge are construction-time failures: the
// message cannot be encoded. MalformedPayload is a scan-time failure scoped to
// a single carrier run.
const (
	KindInvalidScalarValue Kind = "InvalidScalarValue"
	KindValueTooLarge      Kind = "ValueTooLarge"
	KindMalformedPayload   Kind = "MalformedPayload"
	KindInternal           Kind = "Internal"
)

// Stable rule identifiers.
const (
	RuleInvalidScalar    = "STEGO-CP-001"
	RuleValueTooLarge    = "STEGO-BIT-001"
	RuleGroupLength      = "STEGO-BIT-002"
	RuleBadWidth         = "STEGO-BIT-003"
	RuleRunLength        = "STEGO-SCAN-001"
	RuleNonCarrierInRun  = "STEGO-SCAN-002"
	RuleInternalAlphabet = "STEGO-INTERNAL-001"
)

// Error is the package's structured error type.
//
// Range is only meaningful for scan-time errors; it locates the offending
// carrier run in the scanned string.
//
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Range   Range
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

func newErrorf(kind Kind, ruleID, format string, args ...any) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, ruleID, msg string, cause error) error {
	if cause == nil {
		return newError(kind, ruleID, msg)
	}
	return &Error{Kind: kind, RuleID: ruleID, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
//
// For joined errors (as returned by FindAll) it reports whether any member matches.
func IsKind(err error, kind Kind) bool {
	for _, e := range Errors(err) {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}

// Errors flattens err into the structured errors it carries, in order.
// A joined error yields one entry per member.
func Errors(err error) []*Error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*Error
		for _, member := range joined.Unwrap() {
			out = append(out, Errors(member)...)
		}
		return out
	}
	var e *Error
	if errors.As(err, &e) {
		return []*Error{e}
	}
	return nil
}
