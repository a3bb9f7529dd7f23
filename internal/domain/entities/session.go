package entities

import "time"

// SessionStatus tracks the lifecycle of one analysis request.
type SessionStatus string

const (
	SessionStatusPending    SessionStatus = "pending"
	SessionStatusProcessing SessionStatus = "processing"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusFailed     SessionStatus = "failed"
)

// Session is the externally visible state of an analysis request. It lives in
// the session store for a bounded TTL; the MeetingReport itself is returned
// inline to the caller and is not persisted here.
type Session struct {
	ID        string        `json:"session_id"`
	Filename  string        `json:"filename"`
	Status    SessionStatus `json:"status"`
	Progress  float64       `json:"progress"` // percentage 0..100
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewSession creates a pending session.
func NewSession(id, filename string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Filename:  filename,
		Status:    SessionStatusPending,
		Progress:  0,
		Message:   "Waiting for processing",
		CreatedAt: now,
		UpdatedAt: now,
	}
}
