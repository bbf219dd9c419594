package entities

import "fmt"

// ApiError is returned when the orchestration service answers with a status >= 400.
// It is never retried.
type ApiError struct { //nolint:revive // name mirrors the service's error taxonomy
	Operation  string
	StatusCode int
	Body       string
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("API error on %s (status %d): %s", e.Operation, e.StatusCode, e.Body)
}

// TransientError wraps a connection-establishment or TLS failure that may succeed on retry.
type TransientError struct {
	Operation string
	Attempts  int
	Cause     error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient error on %s after %d attempt(s): %v", e.Operation, e.Attempts, e.Cause)
}

func (e *TransientError) Unwrap() error {
	return e.Cause
}
