package apperrors

import "fmt"

// Kind classifies a business error so the HTTP boundary can translate it
// without inspecting messages.
type Kind int

const (
	KindNotFound Kind = iota
	KindValidation
	KindIllegalArgument
	KindConflict
	KindNotActive
)

// Error is a typed business error raised by the service and database layers.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus maps the error kind to the status the boundary reports.
// NotActive deliberately maps to 429: the account may become usable again,
// so clients should retry later rather than treat it as forbidden.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return 404
	case KindValidation:
		return 400
	case KindIllegalArgument:
		return 422
	case KindConflict:
		return 409
	case KindNotActive:
		return 429
	default:
		return 500
	}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func IllegalArgument(format string, args ...interface{}) *Error {
	return &Error{Kind: KindIllegalArgument, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NotActive(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotActive, Message: fmt.Sprintf(format, args...)}
}
