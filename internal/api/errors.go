package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// Error is the API-visible failure taxonomy. Every error a handler surfaces to
// a caller is one of these; anything else is reported as an internal error.
type Error struct {
	Code    string
	Message string
}

const (
	CodeValidation         = "VALIDATION"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeUnavailable        = "UNAVAILABLE"
	CodeInvalidReference   = "INVALID_REFERENCE"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
)

func (e *Error) Error() string { return e.Message }

func Validation(msg string) *Error       { return &Error{Code: CodeValidation, Message: msg} }
func Unauthenticated(msg string) *Error  { return &Error{Code: CodeUnauthenticated, Message: msg} }
func Forbidden(msg string) *Error        { return &Error{Code: CodeForbidden, Message: msg} }
func NotFound(msg string) *Error         { return &Error{Code: CodeNotFound, Message: msg} }
func Conflict(msg string) *Error         { return &Error{Code: CodeConflict, Message: msg} }
func Unavailable(msg string) *Error      { return &Error{Code: CodeUnavailable, Message: msg} }
func InvalidReference(msg string) *Error { return &Error{Code: CodeInvalidReference, Message: msg} }

func InvalidCredentials(msg string) *Error {
	return &Error{Code: CodeInvalidCredentials, Message: msg}
}

func httpStatus(code string) int {
	switch code {
	case CodeUnauthenticated, CodeForbidden:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation, CodeConflict, CodeUnavailable, CodeInvalidReference, CodeInvalidCredentials:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError renders err as a {"error": message} body with the status mapped
// from its code. Unrecognized errors are logged and masked as 500s.
func WriteError(w http.ResponseWriter, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		WriteJSON(w, httpStatus(apiErr.Code), map[string]string{"error": apiErr.Message})
		return
	}
	log.Printf("internal error: %v", err)
	WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
