package internal

import (
	"errors"
	"fmt"
	"testing"
)

func TestTimeoutError(t *testing.T) {
	cause := fmt.Errorf("deadline exceeded")
	err := &TimeoutError{Err: cause}

	if err.Error() != TimeoutMessage {
		t.Errorf("Error() = %q, want the fixed timeout message", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("TimeoutError should unwrap to its cause")
	}
}

func TestConnectionError(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := &ConnectionError{Err: cause}

	if err.Error() != "tidak dapat terhubung ke server: connection refused" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("ConnectionError should unwrap to its cause")
	}
}

func TestMalformedResponseError(t *testing.T) {
	err := &MalformedResponseError{Operation: "login", Expected: "user object"}
	if err.Error() != "malformed response [login]: expected user object" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestRequestFailedError(t *testing.T) {
	err := &RequestFailedError{StatusCode: 404, Message: "User not found"}
	if err.Error() != "User not found" {
		t.Errorf("Error() = %q, want the extracted message", err.Error())
	}
	if err.StatusCode != 404 {
		t.Errorf("StatusCode = %d, want 404", err.StatusCode)
	}
}

func TestErrorKindsAreDistinguishable(t *testing.T) {
	var err error = &RequestFailedError{StatusCode: 500, Message: "boom"}

	var reqErr *RequestFailedError
	if !errors.As(err, &reqErr) {
		t.Fatal("errors.As should recover *RequestFailedError")
	}
	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		t.Error("RequestFailedError must not match *TimeoutError")
	}
}
