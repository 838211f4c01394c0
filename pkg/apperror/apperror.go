package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindInvalidState Kind = "invalid_state"
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
)

// Error is a classified failure. MessageID and Data feed the localized
// message; Message is the English fallback returned by Error().
type Error struct {
	Kind      Kind
	MessageID string
	Data      map[string]interface{}
	Message   string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(entity string, id interface{}) *Error {
	return &Error{
		Kind:      KindNotFound,
		MessageID: "error.not_found",
		Data:      map[string]interface{}{"Entity": entity, "ID": id},
		Message:   fmt.Sprintf("%s with ID %v not found", entity, id),
	}
}

func InvalidState(messageID, message string, data map[string]interface{}) *Error {
	return &Error{Kind: KindInvalidState, MessageID: messageID, Data: data, Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, MessageID: "error.validation", Data: map[string]interface{}{"Detail": message}, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, MessageID: "error.conflict", Data: map[string]interface{}{"Detail": message}, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, MessageID: "error.unauthorized", Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, MessageID: "error.forbidden", Message: message}
}

// As unwraps err to an *Error if one is in the chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func Is(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
