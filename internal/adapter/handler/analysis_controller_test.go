package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/meetinglens/meetinglens/errors"
	"github.com/meetinglens/meetinglens/internal/adapter/dto"
	"github.com/meetinglens/meetinglens/internal/domain/entities"
	"github.com/meetinglens/meetinglens/internal/usecase/analysis"
	"github.com/meetinglens/meetinglens/internal/usecase/session"
	"github.com/meetinglens/meetinglens/pkg/config"
)

type memStore struct {
	mu       sync.Mutex
	sessions map[string]entities.Session
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]entities.Session)}
}

func (m *memStore) Save(_ context.Context, s *entities.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (*entities.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound(id)
	}
	return &s, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return apperrors.ErrSessionNotFound(id)
	}
	delete(m.sessions, id)
	return nil
}

type stubTranscriber struct {
	segments []entities.TranscriptSegment
}

func (s *stubTranscriber) Transcribe(context.Context, string) ([]entities.TranscriptSegment, error) {
	return s.segments, nil
}

type stubLLM struct{}

func (stubLLM) ChatCompletion(_ context.Context, _, _ string, _ int, _ float64) (string, error) {
	return "", assert.AnError
}

type stubRunner struct{}

func (stubRunner) Run(_ context.Context, _ string, args ...string) error {
	return os.WriteFile(args[len(args)-1], []byte("RIFF"), 0o644)
}

func (stubRunner) Output(context.Context, string, ...string) ([]byte, error) {
	return nil, assert.AnError
}

func handlerTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Analysis = config.AnalysisConfig{
		MaxFileSizeBytes:    1024 * 1024,
		MaxAudioDuration:    600,
		TargetSampleRate:    16000,
		SupportedFormats:    "mp3,wav",
		MaxActionItems:      10,
		MaxDecisions:        5,
		MaxTopics:           5,
		TranscriberProvider: "openai",
	}
	cfg.OpenAI.APIKey = "sk-test-key"
	return cfg
}

func newTestController(cfg *config.Config, transcriber analysis.Transcriber) (*AnalysisController, *session.Service) {
	logger := zap.NewNop()
	sessions := session.NewService(newMemStore(), logger)
	pipeline := analysis.NewService(
		cfg,
		logger,
		analysis.NewNormalizerWithRunner(&cfg.Analysis, logger, stubRunner{}),
		transcriber,
		analysis.NewExtractor(stubLLM{}, &cfg.Analysis, logger),
		sessions,
		nil,
	)
	return NewAnalysisController(cfg, logger, pipeline, sessions), sessions
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func doAnalyze(t *testing.T, ctrl *AnalysisController, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	require.NoError(t, ctrl.Analyze(e.NewContext(req, rec)))
	return rec
}

func TestAnalyzeEndpoint(t *testing.T) {
	ctrl, _ := newTestController(handlerTestConfig(), &stubTranscriber{
		segments: []entities.TranscriptSegment{
			entities.NewTranscriptSegment("Speaker A", "hello world", 0, 10, 0.9),
			entities.NewTranscriptSegment("Speaker B", "yes indeed ok", 10, 15, 0.9),
		},
	})

	body, contentType := multipartUpload(t, "standup.mp3", []byte("fake audio bytes"))
	rec := doAnalyze(t, ctrl, body, contentType)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	require.NotNil(t, resp.Report)
	assert.InDelta(t, 15.0, resp.Report.Duration, 1e-9)
	assert.Equal(t, 5, resp.Report.WordCount)
	assert.Len(t, resp.Report.Transcript, 2)

	// Every extraction task failed, so each slot carries its default.
	assert.Equal(t, entities.DefaultSummary, resp.Report.Summary)
	assert.Empty(t, resp.Report.ActionItems)
}

func TestAnalyzeMissingFile(t *testing.T) {
	ctrl, _ := newTestController(handlerTestConfig(), &stubTranscriber{})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.Close())
	rec := doAnalyze(t, ctrl, &body, mw.FormDataContentType())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeUnsupportedFormat(t *testing.T) {
	ctrl, _ := newTestController(handlerTestConfig(), &stubTranscriber{})

	body, contentType := multipartUpload(t, "notes.txt", []byte("not audio"))
	rec := doAnalyze(t, ctrl, body, contentType)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, apperrors.ErrorCode_UNSUPPORTED_FORMAT.String(), resp.Code)
}

func TestAnalyzeEmptyFile(t *testing.T) {
	ctrl, _ := newTestController(handlerTestConfig(), &stubTranscriber{})

	body, contentType := multipartUpload(t, "standup.mp3", nil)
	rec := doAnalyze(t, ctrl, body, contentType)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, apperrors.ErrorCode_FILE_EMPTY.String(), resp.Code)
}

func TestAnalyzeOversizedFile(t *testing.T) {
	cfg := handlerTestConfig()
	cfg.Analysis.MaxFileSizeBytes = 8
	ctrl, _ := newTestController(cfg, &stubTranscriber{})

	body, contentType := multipartUpload(t, "standup.mp3", []byte("way more than eight bytes"))
	rec := doAnalyze(t, ctrl, body, contentType)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, apperrors.ErrorCode_FILE_TOO_LARGE.String(), resp.Code)
}

func TestAnalyzeMissingCredentials(t *testing.T) {
	cfg := handlerTestConfig()
	cfg.OpenAI.APIKey = ""
	ctrl, _ := newTestController(cfg, &stubTranscriber{})

	body, contentType := multipartUpload(t, "standup.mp3", []byte("fake audio bytes"))
	rec := doAnalyze(t, ctrl, body, contentType)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, apperrors.ErrorCode_SERVICE_MISCONFIGURED.String(), resp.Code)
}
