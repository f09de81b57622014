package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels an *APIError matches with errors.Is, keyed on the server's error code.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("too many attempts")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalid      = errors.New("invalid request")
)

// APIError is the decoded {error, code, error_code} body of a failed request.
type APIError struct {
	Status    int
	Code      string
	ErrorCode int
	Message   string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	case e.Message != "":
		return e.Message
	case e.Status > 0:
		return fmt.Sprintf("practicelog api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return "practicelog api error"
}

// Is reports whether the error carries the code behind target.
func (e *APIError) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case ErrUnauthorized:
		return e.Code == "unauthorized"
	case ErrRateLimited:
		return e.Code == "resource_exhausted"
	case ErrNotFound:
		return e.Code == "not_found"
	case ErrConflict:
		return e.Code == "conflict"
	case ErrInvalid:
		return e.Status == http.StatusBadRequest
	}
	return false
}

// ServerFault reports a 5xx response.
func (e *APIError) ServerFault() bool {
	return e != nil && e.Status >= http.StatusInternalServerError
}
