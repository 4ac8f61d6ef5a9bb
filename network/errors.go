package network

import (
	"errors"
	"fmt"
	"net"
	"net/http"
)

type FetchErrorCause string

const (
	ErrCauseTimeout         FetchErrorCause = "timeout"
	ErrCauseNetworkFailure  FetchErrorCause = "network failure"
	ErrCauseReadBody        FetchErrorCause = "failed to read response body"
	ErrCauseDecode          FetchErrorCause = "invalid json"
	ErrCauseTooManyRequests FetchErrorCause = "too many requests"
	ErrCauseServer          FetchErrorCause = "5xx"
	ErrCauseStatus          FetchErrorCause = "unexpected status"
)

// FetchError describes a failed GET. Retryable failures are transient: timeouts,
// connection errors, 429 and 5xx responses.
type FetchError struct {
	URL       string
	Status    int
	Cause     FetchErrorCause
	Retryable bool
	Err       error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: %s (%d)", e.URL, e.Cause, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Cause, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is a FetchError worth retrying.
func IsRetryable(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Retryable
}

func classifyTransport(url string, err error) *FetchError {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &FetchError{URL: url, Cause: ErrCauseTimeout, Retryable: true, Err: err}
	}
	return &FetchError{URL: url, Cause: ErrCauseNetworkFailure, Retryable: true, Err: err}
}

// classifyStatus returns nil for 2xx.
func classifyStatus(url string, status int) *FetchError {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusTooManyRequests:
		return &FetchError{URL: url, Status: status, Cause: ErrCauseTooManyRequests, Retryable: true}
	case status >= 500:
		return &FetchError{URL: url, Status: status, Cause: ErrCauseServer, Retryable: true}
	default:
		return &FetchError{URL: url, Status: status, Cause: ErrCauseStatus}
	}
}
