// Package pipeline orchestrates one resume generation request:
// validate -> quota check -> compose -> generate -> sanitize -> respond.
// Stages run strictly in order; the first failing stage short-circuits
// the rest with its typed error. There are no retries at this level.
package pipeline

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-generator/internal/llm"
	"github.com/jonathan/resume-generator/internal/profile"
	"github.com/jonathan/resume-generator/internal/prompts"
	"github.com/jonathan/resume-generator/internal/quota"
	"github.com/jonathan/resume-generator/internal/sanitize"
	"github.com/jonathan/resume-generator/internal/strategy"
	"github.com/jonathan/resume-generator/internal/types"
)

// anonymousIdentity is the quota key used when no pin is supplied.
// Only reachable when the secret check is disabled.
const anonymousIdentity = "anonymous"

// Pipeline wires the generation components together.
type Pipeline struct {
	profiles *profile.Source
	gate     *quota.Gate
	client   llm.Client
	secret   string
	timeout  time.Duration
	logger   *zap.Logger
}

// New creates a pipeline. An empty secret disables the identity check.
func New(profiles *profile.Source, gate *quota.Gate, client llm.Client, secret string, timeout time.Duration, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		profiles: profiles,
		gate:     gate,
		client:   client,
		secret:   secret,
		timeout:  timeout,
		logger:   logger,
	}
}

// Generate runs the full pipeline for one request.
// On success the response carries the sanitized document and the quota
// snapshot. The quota charge is committed before generation and is not
// refunded when a later stage fails.
func (p *Pipeline) Generate(ctx context.Context, req types.GenerateRequest) (*types.GenerateResponse, error) {
	// Validating
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, &ErrValidation{Field: "jobDescription", Message: "jobDescription is required"}
	}
	if p.secret != "" && subtle.ConstantTimeCompare([]byte(req.PIN), []byte(p.secret)) != 1 {
		return nil, &ErrUnauthorized{}
	}

	// QuotaChecking
	identity := req.PIN
	if identity == "" {
		identity = anonymousIdentity
	}
	status, err := p.gate.Check(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("quota check failed: %w", err)
	}
	if !status.Allowed {
		p.logger.Warn("quota exceeded",
			zap.Int64("used", status.Used),
			zap.Int64("limit", status.Limit),
			zap.Time("reset_at", status.ResetAt))
		return nil, &ErrQuotaExceeded{Status: status}
	}

	// Composing
	candidate := p.profiles.Resolve(req.Profile)
	directive := strategy.Resolve(req.Strategy)
	prompt, err := prompts.Compose(candidate, req.JobDescription, directive)
	if err != nil {
		return nil, fmt.Errorf("prompt composition failed: %w", err)
	}

	// Generating, bounded by the configured wall-clock timeout
	genCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := p.client.Generate(genCtx, prompt)
	if err != nil {
		return nil, err
	}
	p.logger.Info("generation complete",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("raw_chars", len(raw)))

	// Sanitizing
	document, err := sanitize.Extract(raw)
	if err != nil {
		return nil, fmt.Errorf("output sanitization failed: %w", err)
	}

	return &types.GenerateResponse{
		Success: true,
		Resume:  document,
		Quota: &types.QuotaSnapshot{
			Used:      status.Used,
			Remaining: status.Remaining,
			Limit:     status.Limit,
			ResetAt:   status.ResetAt,
		},
	}, nil
}
