package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-generator/internal/llm"
	"github.com/jonathan/resume-generator/internal/pipeline"
	"github.com/jonathan/resume-generator/internal/quota"
	"github.com/jonathan/resume-generator/internal/sanitize"
)

// HTTPStatus maps a pipeline error to its HTTP status and caller-facing
// message. Backend rate limiting propagates as 429 with a message distinct
// from caller quota exhaustion; output validation failures are surfaced
// separately from backend failures so operators can tell quality
// regressions apart from outages.
func HTTPStatus(err error) (int, string) {
	var validationErr *pipeline.ErrValidation
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Message
	}

	var unauthorizedErr *pipeline.ErrUnauthorized
	if errors.As(err, &unauthorizedErr) {
		return http.StatusUnauthorized, "Invalid pin"
	}

	var quotaErr *pipeline.ErrQuotaExceeded
	if errors.As(err, &quotaErr) {
		return http.StatusTooManyRequests, "Daily limit reached. Please try again after the quota resets."
	}

	var backendErr *llm.BackendError
	if errors.As(err, &backendErr) {
		switch backendErr.Kind {
		case llm.KindRateLimited:
			return http.StatusTooManyRequests, "Rate limit exceeded. Please try again in a few minutes."
		case llm.KindAuth:
			return http.StatusInternalServerError, "Authentication error - invalid API key"
		default:
			return http.StatusInternalServerError, "Failed to generate resume"
		}
	}

	if errors.Is(err, sanitize.ErrInvalidOutput) {
		return http.StatusInternalServerError, "Model did not return valid HTML"
	}

	return http.StatusInternalServerError, "Failed to generate resume"
}

// QuotaStatus extracts the quota snapshot from a quota-exceeded error.
func QuotaStatus(err error) (quota.Status, bool) {
	var quotaErr *pipeline.ErrQuotaExceeded
	if errors.As(err, &quotaErr) {
		return quotaErr.Status, true
	}
	return quota.Status{}, false
}
