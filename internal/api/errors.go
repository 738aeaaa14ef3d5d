package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a non-2xx answer from the backend.
type Error struct {
	Method string
	Path   string
	Status int
	// Message is the server-provided (localized) message, if any.
	Message string
	// ValidationErrors maps a field name to its message (400 on sign-up).
	ValidationErrors map[string]string
}

func (e *Error) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if len(e.ValidationErrors) > 0 {
		return fmt.Sprintf("%s %s: %d %s (%d field errors)", e.Method, e.Path, e.Status, msg, len(e.ValidationErrors))
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, msg)
}

// TransportError means no usable response arrived (connection refused, bad body, ...).
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func statusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func IsNotFound(err error) bool     { return statusOf(err) == http.StatusNotFound }
func IsUnauthorized(err error) bool { return statusOf(err) == http.StatusUnauthorized }
func IsBadRequest(err error) bool   { return statusOf(err) == http.StatusBadRequest }

func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Message returns the server message carried by err, or "".
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// ValidationErrors returns the per-field messages carried by err, or nil.
func ValidationErrors(err error) map[string]string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.ValidationErrors
	}
	return nil
}
