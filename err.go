package xatadb

import (
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// ConfigError reports credentials that could not be resolved or
// validated at construction time.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid client configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ServerError reports a remote response with status >= 400. The body is
// kept verbatim so callers can inspect whatever the service returned.
type ServerError struct {
	StatusCode int
	Body       []byte
}

func (e *ServerError) Error() string {
	msg := e.Message()
	if msg == "" {
		return fmt.Sprintf("server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("server returned %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), msg)
}

// Message extracts the server-provided message from the error body, if
// there is one.
func (e *ServerError) Message() string {
	return gjson.GetBytes(e.Body, "message").String()
}

func (e *ServerError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// ValidationError reports a malformed caller argument, detected before
// any request is made.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
