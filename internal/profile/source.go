// Package profile supplies the candidate profile used for generation.
// Callers may send a profile per request; when they don't, a default
// profile embedded at compile time is used instead.
package profile

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-generator/internal/types"
)

//go:embed default_profile.json
var defaultProfileJSON []byte

// Source resolves the effective candidate profile for a request.
type Source struct {
	fallback types.CandidateProfile
}

// NewSource parses the embedded default profile.
func NewSource() (*Source, error) {
	var fallback types.CandidateProfile
	if err := json.Unmarshal(defaultProfileJSON, &fallback); err != nil {
		return nil, fmt.Errorf("failed to parse embedded default profile: %w", err)
	}
	return &Source{fallback: fallback}, nil
}

// Resolve returns the request profile if present, otherwise the default.
// The returned value is a copy; callers cannot mutate the fallback.
func (s *Source) Resolve(requested *types.CandidateProfile) types.CandidateProfile {
	if requested != nil {
		return *requested
	}
	return s.fallback
}
