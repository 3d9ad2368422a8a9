package types

import "time"

// GenerateRequest is the inbound payload for a resume generation call.
// It is constructed once per call and not mutated afterward.
type GenerateRequest struct {
	JobDescription string            `json:"jobDescription" validate:"required,min=1"`
	Strategy       string            `json:"strategy,omitempty"`
	Profile        *CandidateProfile `json:"profile,omitempty"`
	PIN            string            `json:"pin,omitempty"`
}

// GenerateResponse is the success envelope returned to callers.
type GenerateResponse struct {
	Success bool           `json:"success"`
	Resume  string         `json:"resume"`
	Quota   *QuotaSnapshot `json:"quota,omitempty"`
}

// QuotaSnapshot reports current usage so callers can self-throttle.
type QuotaSnapshot struct {
	Used      int64     `json:"used"`
	Remaining int64     `json:"remaining"`
	Limit     int64     `json:"limit"`
	ResetAt   time.Time `json:"reset"`
}
