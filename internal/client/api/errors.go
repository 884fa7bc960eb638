package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNetwork wraps transport failures: timeouts, refused connections and
// an open circuit breaker.
var ErrNetwork = errors.New("network error")

// NetworkMessage is shown for ErrNetwork failures.
const NetworkMessage = "Network error. Please check your connection and try again."

// APIError is a non-2xx response decoded from the server envelope.
type APIError struct {
	Status  int
	Message string
	Errors  map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

func (e *APIError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// IsNetwork reports whether err never reached the server.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// ErrorMessage returns the server message carried by err, or fallback.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
