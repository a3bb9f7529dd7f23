package session

import (
	"context"
	goerrors "errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/meetinglens/meetinglens/errors"
	"github.com/meetinglens/meetinglens/internal/domain/entities"
)

// Store is the persistence capability the session service needs.
type Store interface {
	Save(ctx context.Context, session *entities.Session) error
	Get(ctx context.Context, id string) (*entities.Session, error)
	Delete(ctx context.Context, id string) error
}

// Service manages session lifecycle and progress tracking. Progress updates
// are best-effort: a store outage degrades status visibility but never fails
// an analysis run.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates a session service.
func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Create registers a new pending session for an upload.
func (s *Service) Create(ctx context.Context, filename string) *entities.Session {
	session := entities.NewSession(uuid.New().String(), filename)
	if err := s.store.Save(ctx, session); err != nil {
		s.logger.Warn("session.create_failed",
			zap.String("session_id", session.ID),
			zap.Error(err),
		)
	}
	return session
}

// Get fetches a session by id.
func (s *Service) Get(ctx context.Context, id string) (*entities.Session, error) {
	return s.store.Get(ctx, id)
}

// Delete removes a session by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Track records a pipeline progress update. Implements the pipeline's Tracker
// contract: failures are logged and absorbed.
func (s *Service) Track(ctx context.Context, sessionID string, status entities.SessionStatus, progress float64, message string) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		var appErr apperrors.AppError
		if !goerrors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_SESSION_NOT_FOUND {
			// A transient store failure must not clobber the stored record
			// with a rebuilt one missing its filename. Skip this update.
			s.logger.Warn("session.track_fetch_failed",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
			return
		}
		session = entities.NewSession(sessionID, "")
	}

	session.Status = status
	session.Progress = progress
	session.Message = message
	session.UpdatedAt = time.Now().UTC()

	if err := s.store.Save(ctx, session); err != nil {
		s.logger.Warn("session.track_failed",
			zap.String("session_id", sessionID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
	}
}
