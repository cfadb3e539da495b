// Package apierror defines the typed failure taxonomy shared by every
// service operation and the translation of a failure into an HTTP
// response. Handlers never hand-build error JSON: all 4xx/5xx responses
// go through this package so the envelope stays consistent and internals
// (stack traces, raw SQL) never leak by accident.
package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies a failure for transport-level mapping.
type Kind int

const (
	// KindValidation — missing or malformed input, caught before any store interaction.
	KindValidation Kind = iota
	// KindUnauthenticated — missing, invalid or expired credential.
	KindUnauthenticated
	// KindForbidden — authenticated but missing a required attribute.
	KindForbidden
	// KindNotFound — referenced entity absent.
	KindNotFound
	// KindConflict — uniqueness or referential-integrity violation.
	KindConflict
	// KindStorage — unhandled data-layer fault.
	KindStorage
)

// Error is the result type returned by service operations on failure.
// Msg is user-visible; Err carries the underlying cause and is only
// exposed (as "details") on 5xx responses of this internal-facing API.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with no underlying cause.
func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Msg: msg} }

// Wrap attaches an underlying cause for diagnostics.
func Wrap(kind Kind, msg string, err error) *Error { return &Error{Kind: kind, Msg: msg, Err: err} }

// Response is the canonical JSON envelope for all error responses.
type Response struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Status maps a failure kind to its HTTP status code.
func Status(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Envelope renders err into the transport envelope plus its status code.
// Unknown error values fall back to a generic 500 with the cause attached,
// so no failure path ever escapes without a JSON body.
func Envelope(err error) (int, Response) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return http.StatusInternalServerError, Response{
			Error:   "Error interno del servidor",
			Details: err.Error(),
		}
	}
	resp := Response{Error: apiErr.Msg}
	status := Status(apiErr.Kind)
	if status >= http.StatusInternalServerError && apiErr.Err != nil {
		resp.Details = apiErr.Err.Error()
	}
	return status, resp
}
