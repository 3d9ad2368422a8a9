// Package prompts builds the generation request sent to the backend.
// The prompt template is embedded at compile time; composition is a pure
// function of its inputs and produces byte-identical output for identical
// inputs, so the backend call is the only source of non-determinism.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-generator/internal/types"
)

//go:embed resume_prompt.txt
var resumeTemplate string

// fallback values mirror the template defaults when a profile field is empty
const (
	defaultLinkedIn    = "linkedin.com/in/your-profile"
	defaultDegree      = "Bachelor of Technology"
	defaultInstitution = "Your University"
	defaultYear        = "2024"
)

// Compose builds the full generation prompt from the candidate profile,
// the target job description, and the resolved strategy directive.
func Compose(profile types.CandidateProfile, jobDescription, directive string) (string, error) {
	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize profile: %w", err)
	}

	// All placeholders are expanded in a single pass over the template, so
	// a placeholder token inside a caller-controlled value (profile or job
	// description) is emitted literally, never expanded.
	replacer := strings.NewReplacer(
		"{{.Name}}", profile.Name,
		"{{.Email}}", profile.Email,
		"{{.Phone}}", profile.Phone,
		"{{.LinkedIn}}", orDefault(profile.LinkedIn, defaultLinkedIn),
		"{{.Degree}}", orDefault(profile.Education.Degree, defaultDegree),
		"{{.Institution}}", orDefault(profile.Education.Institution, defaultInstitution),
		"{{.Year}}", orDefault(profile.Education.Year, defaultYear),
		"{{.Directive}}", directive,
		"{{.ProfileJSON}}", string(profileJSON),
		"{{.JobDescription}}", jobDescription,
	)

	return replacer.Replace(resumeTemplate), nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
