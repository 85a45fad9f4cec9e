package model

import (
	"errors"
	"fmt"

	"xdao.co/stegtext/annotation"
	"xdao.co/stegtext/stego"
)

type ErrorCode string

const (
	ErrInvalidRequest       ErrorCode = "INVALID_REQUEST"
	ErrInvalidScalar        ErrorCode = "INVALID_SCALAR"
	ErrValueTooLarge        ErrorCode = "VALUE_TOO_LARGE"
	ErrMalformedPayload     ErrorCode = "MALFORMED_PAYLOAD"
	ErrUnbalancedAnnotation ErrorCode = "UNBALANCED_ANNOTATION"
	ErrInternal             ErrorCode = "INTERNAL"
)

// CodedError is a stable error with a machine-readable code and a human message.
// Range, when set, locates the problem in the scanned string.
type CodedError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Range   *Range    `json:"range,omitempty"`
}

func (e *CodedError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

// FromError maps a library error onto a boundary error code.
// Codec failures take precedence over the annotation error that wraps them.
func FromError(err error) *CodedError {
	if err == nil {
		return nil
	}
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce
	}
	var se *stego.Error
	if errors.As(err, &se) {
		switch se.Kind {
		case stego.KindInvalidScalarValue:
			return NewError(ErrInvalidScalar, se.Message)
		case stego.KindValueTooLarge:
			return NewError(ErrValueTooLarge, se.Message)
		case stego.KindMalformedPayload:
			r := Range{Offset: se.Range.Offset, Length: se.Range.Length}
			return &CodedError{Code: ErrMalformedPayload, Message: se.Message, Range: &r}
		default:
			return NewError(ErrInternal, se.Message)
		}
	}
	var ae *annotation.Error
	if errors.As(err, &ae) {
		if ae.RuleID == annotation.RuleUnbalanced {
			r := Range{Offset: ae.Range.Offset, Length: ae.Range.Length}
			return &CodedError{Code: ErrUnbalancedAnnotation, Message: ae.Message, Range: &r}
		}
		return NewError(ErrInvalidRequest, ae.Error())
	}
	return NewError(ErrInternal, err.Error())
}
