package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-generator/internal/types"
)

// generateEnvelope accepts the request body either at the top level or
// nested under a "data" wrapper, for compatibility with older clients.
type generateEnvelope struct {
	types.GenerateRequest
	Data *types.GenerateRequest `json:"data,omitempty"`
}

// errorBody is the failure envelope. Details are only populated outside
// production mode and never contain credential values.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// handleGenerateResume runs the generation pipeline for one request.
// OPTIONS preflight is answered by the CORS middleware before this runs.
func (s *Server) handleGenerateResume(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.jsonResponse(w, http.StatusMethodNotAllowed, errorBody{Error: "Method Not Allowed"})
		return
	}

	var envelope generateEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return
	}

	req := envelope.GenerateRequest
	if envelope.Data != nil {
		req = *envelope.Data
	}

	if err := s.validate.Struct(&req); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, errorBody{Error: "jobDescription is required"})
		return
	}

	result, err := s.pipeline.Generate(r.Context(), req)
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// pipelineError maps a pipeline failure to its HTTP response.
func (s *Server) pipelineError(w http.ResponseWriter, err error) {
	status, message := HTTPStatus(err)

	s.logger.Error("resume generation failed",
		zap.Int("status", status),
		zap.Error(err))

	if quotaStatus, ok := QuotaStatus(err); ok {
		retryAfter := int(quotaStatus.RetryAfter / time.Second)
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		s.jsonResponse(w, status, map[string]any{
			"error":       message,
			"retry_after": retryAfter,
			"quota": types.QuotaSnapshot{
				Used:      quotaStatus.Used,
				Remaining: quotaStatus.Remaining,
				Limit:     quotaStatus.Limit,
				ResetAt:   quotaStatus.ResetAt,
			},
		})
		return
	}

	body := errorBody{Error: message}
	if !s.production {
		body.Details = err.Error()
	}
	s.jsonResponse(w, status, body)
}
