package zepp

import "fmt"

// AuthError indicates a missing, invalid, or expired apptoken. Tokens last a
// few weeks; a fresh one comes from the Zepp account page browser cookies or
// `zeppex login`. Never retried automatically.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// APIError indicates the remote API rejected the request or returned an
// unexpected shape. StatusCode is zero when no HTTP status applies.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("zepp api: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("zepp api: %s", e.Message)
}

// TransportError indicates the request never produced an HTTP response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("zepp transport: %v", e.Err) }

func (e *TransportError) Unwrap() error { return e.Err }
