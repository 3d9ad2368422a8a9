package pipeline

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-generator/internal/llm"
	"github.com/jonathan/resume-generator/internal/profile"
	"github.com/jonathan/resume-generator/internal/quota"
	"github.com/jonathan/resume-generator/internal/sanitize"
	"github.com/jonathan/resume-generator/internal/types"
)

const validHTML = "<!DOCTYPE html>\n<html><body><h1>Resume</h1></body></html>"

// stubClient is a canned llm.Client for pipeline tests.
type stubClient struct {
	response   string
	err        error
	blockOnCtx bool
	calls      atomic.Int64
}

func (c *stubClient) Generate(ctx context.Context, _ string) (string, error) {
	c.calls.Add(1)
	if c.blockOnCtx {
		<-ctx.Done()
		return "", llm.Classify(ctx.Err())
	}
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

func (c *stubClient) Close() error { return nil }

// countingCounter records how many increments the gate performed.
type countingCounter struct {
	inner quota.Counter
	calls atomic.Int64
}

func (c *countingCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	c.calls.Add(1)
	return c.inner.Incr(ctx, key, window)
}

func newTestPipeline(t *testing.T, client llm.Client, secret string, limit int64) (*Pipeline, *countingCounter) {
	t.Helper()

	profiles, err := profile.NewSource()
	require.NoError(t, err)

	counter := &countingCounter{inner: quota.NewMemoryCounter()}
	gate := quota.NewGate(counter, limit, 24*time.Hour)

	return New(profiles, gate, client, secret, time.Second, nil), counter
}

func TestGenerate_Success(t *testing.T) {
	client := &stubClient{response: "```html\n" + validHTML + "\n```"}
	pipe, _ := newTestPipeline(t, client, "", 10)

	result, err := pipe.Generate(context.Background(), types.GenerateRequest{
		JobDescription: "Backend engineer, Go and Redis.",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, validHTML, result.Resume)
	require.NotNil(t, result.Quota)
	assert.Equal(t, int64(1), result.Quota.Used)
	assert.Equal(t, int64(9), result.Quota.Remaining)
	assert.Equal(t, int64(10), result.Quota.Limit)
}

func TestGenerate_UnknownStrategyStillSucceeds(t *testing.T) {
	client := &stubClient{response: validHTML}
	pipe, _ := newTestPipeline(t, client, "", 10)

	result, err := pipe.Generate(context.Background(), types.GenerateRequest{
		JobDescription: "Backend engineer.",
		Strategy:       "no-such-strategy",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestGenerate_MissingJobDescription(t *testing.T) {
	client := &stubClient{response: validHTML}
	pipe, counter := newTestPipeline(t, client, "", 10)

	tests := []string{"", "   ", "\n\t"}
	for _, jd := range tests {
		_, err := pipe.Generate(context.Background(), types.GenerateRequest{JobDescription: jd})

		var validationErr *ErrValidation
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "jobDescription", validationErr.Field)
	}

	assert.Equal(t, int64(0), counter.calls.Load(), "validation failures must not consume quota")
	assert.Equal(t, int64(0), client.calls.Load(), "validation failures must not reach the backend")
}

func TestGenerate_WrongPIN(t *testing.T) {
	client := &stubClient{response: validHTML}
	pipe, counter := newTestPipeline(t, client, "s3cret", 10)

	_, err := pipe.Generate(context.Background(), types.GenerateRequest{
		JobDescription: "Backend engineer.",
		PIN:            "wrong",
	})

	var unauthorizedErr *ErrUnauthorized
	require.ErrorAs(t, err, &unauthorizedErr)
	assert.Equal(t, int64(0), counter.calls.Load())
}

func TestGenerate_QuotaExceededBeforeBackendCall(t *testing.T) {
	client := &stubClient{response: validHTML}
	pipe, _ := newTestPipeline(t, client, "", 1)

	_, err := pipe.Generate(context.Background(), types.GenerateRequest{
		JobDescription: "Backend engineer.",
		PIN:            "caller-x",
	})
	require.NoError(t, err)

	_, err = pipe.Generate(context.Background(), types.GenerateRequest{
		JobDescription: "Backend engineer.",
		PIN:            "caller-x",
	})
	var quotaErr *ErrQuotaExceeded
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, int64(1), quotaErr.Status.Limit)
	assert.Equal(t, int64(1), client.calls.Load(), "no backend call once quota is exhausted")

	// A different identity in the same window still succeeds.
	result, err := pipe.Generate(context.Background(), types.GenerateRequest{
		JobDescription: "Backend engineer.",
		PIN:            "caller-y",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestGenerate_BackendTimeout(t *testing.T) {
	client := &stubClient{blockOnCtx: true}
	profiles, err := profile.NewSource()
	require.NoError(t, err)
	gate := quota.NewGate(quota.NewMemoryCounter(), 10, 24*time.Hour)
	pipe := New(profiles, gate, client, "", 50*time.Millisecond, nil)

	start := time.Now()
	_, err = pipe.Generate(context.Background(), types.GenerateRequest{
		JobDescription: "Backend engineer.",
	})
	elapsed := time.Since(start)

	var backendErr *llm.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, llm.KindTimeout, backendErr.Kind)
	assert.Less(t, elapsed, time.Second, "pipeline must not hang past the deadline")
}

func TestGenerate_UnusableOutput(t *testing.T) {
	client := &stubClient{response: "I'm sorry, I can't help with that."}
	pipe, counter := newTestPipeline(t, client, "", 10)

	_, err := pipe.Generate(context.Background(), types.GenerateRequest{
		JobDescription: "Backend engineer.",
	})
	require.ErrorIs(t, err, sanitize.ErrInvalidOutput)

	// The quota charge committed before generation is not refunded.
	assert.Equal(t, int64(1), counter.calls.Load())
	_, err = pipe.Generate(context.Background(), types.GenerateRequest{JobDescription: "x"})
	require.ErrorIs(t, err, sanitize.ErrInvalidOutput)
	assert.Equal(t, int64(2), counter.calls.Load())
}

func TestGenerate_RequestProfileUsed(t *testing.T) {
	client := &stubClient{response: validHTML}
	pipe, _ := newTestPipeline(t, client, "", 10)

	result, err := pipe.Generate(context.Background(), types.GenerateRequest{
		JobDescription: "Backend engineer.",
		Profile: &types.CandidateProfile{
			Name:  "Asha Patel",
			Email: "asha@example.com",
			Phone: "123",
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
}
