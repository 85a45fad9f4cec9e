package annotation

import (
	"errors"
	"fmt"

	"xdao.co/stegtext/stego"
)

// Stable rule identifiers.
const (
	RuleEmptyMarker = "ANNOT-CFG-001"
	RuleBadTemplate = "ANNOT-CFG-002"
	RuleAmbiguous   = "ANNOT-CFG-003"
	RuleEmptyKey    = "ANNOT-KEY-001"
	RuleBadKey      = "ANNOT-KEY-002"
	RuleBadTable    = "ANNOT-KEY-003"
	RuleEncode      = "ANNOT-ENC-001"
	RuleUnbalanced  = "ANNOT-SCAN-001"
)

// Error is the package's structured error type. Range locates the marker
// for scan-time errors.
type Error struct {
	RuleID  string
	Message string
	Range   stego.Range
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(ruleID, msg string) error {
	return &Error{RuleID: ruleID, Message: msg}
}

func newErrorf(ruleID, format string, args ...any) error {
	return &Error{RuleID: ruleID, Message: fmt.Sprintf(format, args...)}
}

func wrapError(ruleID, msg string, cause error) error {
	return &Error{RuleID: ruleID, Message: msg, Cause: cause}
}

func locatedError(ruleID, msg string, r stego.Range) error {
	return &Error{RuleID: ruleID, Message: msg, Range: r}
}

// RuleID returns the RuleID of the first *Error in err, or "" if there is none.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}
