package pipeline

import (
	"fmt"

	"github.com/jonathan/resume-generator/internal/quota"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnauthorized indicates the caller identity failed the secret check
type ErrUnauthorized struct{}

func (e *ErrUnauthorized) Error() string {
	return "invalid pin"
}

// ErrQuotaExceeded indicates the caller exhausted its window allowance.
// It carries the quota status so the response can include retry guidance.
type ErrQuotaExceeded struct {
	Status quota.Status
}

func (e *ErrQuotaExceeded) Error() string {
	return fmt.Sprintf("quota exceeded: %d/%d used, resets at %s",
		e.Status.Used, e.Status.Limit, e.Status.ResetAt.Format("15:04:05 MST"))
}
