// Package strategy maps a caller-supplied strategy keyword to the tailoring
// directive embedded in the generation prompt.
package strategy

// Strategy identifies a tailoring approach for the generated resume.
type Strategy string

// Supported strategies
const (
	// StrategyATS optimizes for applicant tracking systems (the default)
	StrategyATS Strategy = "ats"
	// StrategyFAANG emphasizes metrics and measurable impact
	StrategyFAANG Strategy = "faang"
	// StrategyStartup highlights versatility and ownership
	StrategyStartup Strategy = "startup"
)

// directives holds the tailoring instruction for each strategy.
// Static configuration data; read-only.
var directives = map[Strategy]string{
	StrategyATS:     "Focus on entry-level keywords, clean layout, ATS-friendly format, specific technical skills and tools mentioned in the job description.",
	StrategyFAANG:   "Emphasize metrics, measurable impact, problem-solving, system design thinking, coding proficiency even for freshers.",
	StrategyStartup: "Highlight versatility, ownership, building from 0 to 1, fast learning, wearing multiple hats.",
}

// Resolve returns the directive for the named strategy.
// Unknown or absent names fall back to the ATS directive; Resolve never fails.
func Resolve(name string) string {
	if directive, ok := directives[Strategy(name)]; ok {
		return directive
	}
	return directives[StrategyATS]
}
