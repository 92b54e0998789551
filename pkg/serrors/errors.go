// Package serrors defines the error taxonomy shared by every planning
// service: NotFound, Validation, BusinessRule and Conflict. The transport
// layer maps kinds to status codes; services only guarantee the kind and a
// descriptive message.
package serrors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindValidation   Kind = "validation"
	KindBusinessRule Kind = "business_rule"
	KindConflict     Kind = "conflict"
)

type BaseError struct {
	Kind    Kind
	Code    string
	Message string
	Cause   error
}

func (e *BaseError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *BaseError) Unwrap() error { return e.Cause }

func NewError(kind Kind, code, message string) *BaseError {
	return &BaseError{Kind: kind, Code: code, Message: message}
}

func WrapError(kind Kind, code, message string, cause error) *BaseError {
	return &BaseError{Kind: kind, Code: code, Message: message, Cause: cause}
}

func NewNotFound(code, message string) *BaseError {
	return NewError(KindNotFound, code, message)
}

func NewValidation(code, message string) *BaseError {
	return NewError(KindValidation, code, message)
}

func NewBusinessRule(code, message string) *BaseError {
	return NewError(KindBusinessRule, code, message)
}

func NewConflict(code, message string) *BaseError {
	return NewError(KindConflict, code, message)
}

func isKind(err error, kind Kind) bool {
	var be *BaseError
	if !errors.As(err, &be) {
		return false
	}
	return be.Kind == kind
}

func IsNotFound(err error) bool     { return isKind(err, KindNotFound) }
func IsValidation(err error) bool   { return isKind(err, KindValidation) }
func IsBusinessRule(err error) bool { return isKind(err, KindBusinessRule) }
func IsConflict(err error) bool     { return isKind(err, KindConflict) }
