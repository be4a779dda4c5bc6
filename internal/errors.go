package internal

import "fmt"

// TimeoutMessage is shown whenever a request outlives the configured
// timeout, regardless of which operation was in flight.
const TimeoutMessage = "Koneksi ke server melebihi batas waktu. Silakan coba lagi."

// TimeoutError means the request did not complete within the client's
// timeout.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	return TimeoutMessage
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// ConnectionError means the transport could not reach the server at all
// (DNS failure, refused connection, TLS failure).
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("tidak dapat terhubung ke server: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// MalformedResponseError means the server answered 200 but the body's
// top-level shape does not match what the operation requires.
type MalformedResponseError struct {
	Operation string
	Expected  string // "object", "array", "user object"
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response [%s]: expected %s", e.Operation, e.Expected)
}

// RequestFailedError carries the message extracted from a non-200 response
// together with the HTTP status code.
type RequestFailedError struct {
	StatusCode int
	Message    string
}

func (e *RequestFailedError) Error() string {
	return e.Message
}
