package dto

import (
	"time"

	"github.com/meetinglens/meetinglens/internal/domain/entities"
)

// ErrorResponse is the error envelope returned for every failed request.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// AnalyzeResponse wraps a finished report with its session id.
type AnalyzeResponse struct {
	SessionID string                  `json:"session_id"`
	Report    *entities.MeetingReport `json:"report"`
}

// SessionResponse is the externally visible session state.
type SessionResponse struct {
	SessionID string  `json:"session_id"`
	Filename  string  `json:"filename,omitempty"`
	Status    string  `json:"status"`
	Progress  float64 `json:"progress"`
	Message   string  `json:"message"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// NewSessionResponse converts a session entity.
func NewSessionResponse(s *entities.Session) SessionResponse {
	return SessionResponse{
		SessionID: s.ID,
		Filename:  s.Filename,
		Status:    string(s.Status),
		Progress:  s.Progress,
		Message:   s.Message,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}

// StatusResponse describes service readiness and configured limits.
type StatusResponse struct {
	Status           string   `json:"status"`
	APIKeyConfigured bool     `json:"api_key_configured"`
	Provider         string   `json:"transcription_provider"`
	MaxFileSizeMB    float64  `json:"max_file_size_mb"`
	MaxDurationSec   int      `json:"max_duration_seconds"`
	SupportedFormats []string `json:"supported_formats"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
