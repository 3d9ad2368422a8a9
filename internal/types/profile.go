// Package types provides type definitions for structured data used throughout the resume-generator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CandidateProfile holds everything the prompt references about a candidate.
// It is immutable for the duration of one request.
type CandidateProfile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`

	Education  Education    `json:"education"`
	Experience []Experience `json:"experience"`

	Projects       []Project `json:"projects,omitempty"`
	Certifications []string  `json:"certifications,omitempty"`
	Achievements   []string  `json:"achievements,omitempty"`
}

// Education represents a single degree entry
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// Experience represents one work history entry with its responsibility bullets
type Experience struct {
	Title      string   `json:"title"`
	Company    string   `json:"company"`
	Duration   string   `json:"duration"`
	Highlights []string `json:"highlights,omitempty"`
}

// Project represents a portfolio project entry
type Project struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tech        []string `json:"tech,omitempty"`
	Link        string   `json:"link,omitempty"`
}
