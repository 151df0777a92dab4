package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeUnauthorized  Code = "UNAUTHORIZED"
	CodeNotFound      Code = "NOT_FOUND"
	CodeConflict      Code = "CONFLICT"
	CodeStateConflict Code = "STATE_CONFLICT"
	CodeEmptyBatch    Code = "EMPTY_BATCH"
	CodeIdempotency   Code = "IDEMPOTENCY_KEY_REUSED"
	CodeInvariant     Code = "INVARIANT_VIOLATION"
	CodeInternal      Code = "INTERNAL_ERROR"
	CodeDependency    Code = "DEPENDENCY_ERROR"
)

// Metadata is how a Code surfaces over HTTP.
type Metadata struct {
	HTTPStatus int
	Retryable  bool
	// PublicMessage replaces the error's own message unless ExposeMessage is set.
	PublicMessage  string
	ExposeMessage  bool
	DetailsAllowed bool
}

// rejection describes a 4xx caused by the request; its message is safe to show the buyer.
func rejection(status int, public string, details bool) Metadata {
	return Metadata{HTTPStatus: status, PublicMessage: public, ExposeMessage: true, DetailsAllowed: details}
}

// failure describes a 5xx; the buyer only sees the public message.
func failure(status int, public string, retryable, details bool) Metadata {
	return Metadata{HTTPStatus: status, PublicMessage: public, Retryable: retryable, DetailsAllowed: details}
}

var metadataByCode = map[Code]Metadata{
	CodeValidation:    rejection(http.StatusBadRequest, "validation failed", true),
	CodeUnauthorized:  rejection(http.StatusUnauthorized, "authentication required", false),
	CodeNotFound:      rejection(http.StatusNotFound, "resource not found", false),
	CodeConflict:      rejection(http.StatusConflict, "conflict detected", false),
	CodeStateConflict: rejection(http.StatusUnprocessableEntity, "state transition disallowed", true),
	CodeEmptyBatch:    rejection(http.StatusUnprocessableEntity, "batch is empty", false),
	CodeIdempotency:   rejection(http.StatusConflict, "idempotency key reused", true),

	CodeInvariant:  failure(http.StatusInternalServerError, "internal invariant violated", false, false),
	CodeInternal:   failure(http.StatusInternalServerError, "internal server error", true, false),
	CodeDependency: failure(http.StatusServiceUnavailable, "dependency unavailable", true, true),
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

// WithDetails returns a copy carrying details so shared sentinel values stay untouched.
func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	clone := *e
	clone.details = details
	if clone.cause == nil {
		clone.cause = e
	}
	return &clone
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is matches sentinel errors by identity and by code+message so copies made by
// WithDetails still satisfy errors.Is against the original sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e == t || (e.code == t.code && e.message == t.message)
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.Code() == code
}

// Invariant builds a CodeInvariant error. Reserved for defects, never user input.
func Invariant(format string, args ...any) *Error {
	return Newf(CodeInvariant, format, args...)
}

// IsRetryable reports whether a client may resend the request that produced err.
// Errors without a Code are treated as internal and therefore retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if typed := As(err); typed != nil {
		return MetadataFor(typed.Code()).Retryable
	}
	return true
}
