package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// FailureKind classifies a backend failure.
type FailureKind string

// Backend failure kinds
const (
	// KindAuth indicates invalid or missing backend credentials
	KindAuth FailureKind = "auth"
	// KindRateLimited indicates the backend rejected the call for rate limiting
	KindRateLimited FailureKind = "rate_limited"
	// KindUnavailable indicates the backend is temporarily unreachable
	KindUnavailable FailureKind = "unavailable"
	// KindTimeout indicates the call exceeded its wall-clock deadline
	KindTimeout FailureKind = "timeout"
	// KindUnknown covers everything else
	KindUnknown FailureKind = "unknown"
)

// BackendError wraps a backend failure with its classification.
type BackendError struct {
	Kind FailureKind
	Err  error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error (%s): %v", e.Kind, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Classify maps a raw backend error to a BackendError.
// Already-classified errors pass through unchanged.
func Classify(err error) *BackendError {
	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		return backendErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &BackendError{Kind: KindTimeout, Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &BackendError{Kind: KindTimeout, Err: err}
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return &BackendError{Kind: KindAuth, Err: err}
		case 429:
			return &BackendError{Kind: KindRateLimited, Err: err}
		case 500, 502, 503, 504:
			return &BackendError{Kind: KindUnavailable, Err: err}
		}
	}

	return &BackendError{Kind: KindUnknown, Err: err}
}
