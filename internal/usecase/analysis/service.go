package analysis

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/meetinglens/meetinglens/errors"
	"github.com/meetinglens/meetinglens/internal/domain/entities"
	"github.com/meetinglens/meetinglens/pkg/config"
	"github.com/meetinglens/meetinglens/pkg/fileutil"
)

// Tracker receives progress updates for a session as the pipeline advances.
// Implementations must absorb their own failures; tracking never fails a run.
type Tracker interface {
	Track(ctx context.Context, sessionID string, status entities.SessionStatus, progress float64, message string)
}

// Archiver persists finished reports to long-term storage. Archival is
// best-effort and never fails a run.
type Archiver interface {
	ArchiveReport(ctx context.Context, report *entities.MeetingReport) error
}

// Service runs the full analysis pipeline for one uploaded recording:
// normalization, transcription, concurrent insight extraction and speaker
// aggregation, and report composition.
type Service struct {
	cfg         *config.Config
	logger      *zap.Logger
	normalizer  *Normalizer
	transcriber Transcriber
	extractor   *Extractor
	tracker     Tracker
	archiver    Archiver
}

// NewService creates the pipeline service. tracker and archiver may be nil.
func NewService(
	cfg *config.Config,
	logger *zap.Logger,
	normalizer *Normalizer,
	transcriber Transcriber,
	extractor *Extractor,
	tracker Tracker,
	archiver Archiver,
) *Service {
	return &Service{
		cfg:         cfg,
		logger:      logger,
		normalizer:  normalizer,
		transcriber: transcriber,
		extractor:   extractor,
		tracker:     tracker,
		archiver:    archiver,
	}
}

// Analyze runs the pipeline against the file at inputPath and returns the
// report. Only precondition violations on the input fail the run; every
// downstream service failure degrades to a documented default instead.
func (s *Service) Analyze(ctx context.Context, sessionID, inputPath, originalFilename string) (*entities.MeetingReport, error) {
	start := time.Now()

	report, err := s.analyze(ctx, sessionID, inputPath, originalFilename, start)
	if err != nil {
		s.track(ctx, sessionID, entities.SessionStatusFailed, 100, err.Error())
		return nil, err
	}

	s.track(ctx, sessionID, entities.SessionStatusCompleted, 100, "Analysis complete")
	return report, nil
}

func (s *Service) analyze(ctx context.Context, sessionID, inputPath, originalFilename string, start time.Time) (*entities.MeetingReport, error) {
	if !fileutil.IsSupportedFormat(originalFilename, s.cfg.SupportedFormatsList()) {
		return nil, apperrors.ErrUnsupportedFormat(fileutil.Extension(originalFilename), s.cfg.Analysis.SupportedFormats)
	}

	// Over-long audio is rejected up front when the container duration can be
	// probed. When the probe fails the run continues and the decoder's
	// duration cap truncates instead.
	maxDuration := float64(s.cfg.Analysis.MaxAudioDuration)
	if dur, err := s.normalizer.ProbeDuration(ctx, inputPath); err == nil && dur > maxDuration {
		return nil, apperrors.ErrAudioTooLong(dur, maxDuration)
	}

	scratchDir, err := fileutil.CreateScratchDir("meetinglens-")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := fileutil.Cleanup(scratchDir); err != nil {
			s.logger.Warn("pipeline.scratch_cleanup_failed",
				zap.String("dir", scratchDir),
				zap.Error(err),
			)
		}
	}()

	s.track(ctx, sessionID, entities.SessionStatusProcessing, 10, "Normalizing audio")
	audioPath, err := s.normalizer.Normalize(ctx, inputPath, scratchDir)
	if err != nil {
		return nil, err
	}

	s.track(ctx, sessionID, entities.SessionStatusProcessing, 30, "Transcribing audio")
	segments, err := s.transcriber.Transcribe(ctx, audioPath)
	if err != nil || len(segments) == 0 {
		// Transcription is degradable: the pipeline continues with a
		// placeholder transcript rather than aborting the run.
		s.logger.Warn("pipeline.transcription_failed_using_placeholder",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		segments = placeholderTranscript()
	}

	s.track(ctx, sessionID, entities.SessionStatusProcessing, 60, "Extracting insights")

	// Extraction and speaker aggregation are independent consumers of the
	// transcript and run concurrently.
	var (
		wg         sync.WaitGroup
		extraction entities.Extraction
		speakers   []entities.SpeakerStat
		balance    map[string]float64
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		extraction = s.extractor.Extract(ctx, entities.TranscriptText(segments))
	}()
	go func() {
		defer wg.Done()
		speakers, balance = AggregateSpeakers(segments)
	}()
	wg.Wait()

	s.track(ctx, sessionID, entities.SessionStatusProcessing, 90, "Composing report")
	report, err := ComposeReport(
		sessionID,
		originalFilename,
		segments,
		extraction,
		speakers,
		balance,
		time.Since(start).Seconds(),
	)
	if err != nil {
		return nil, err
	}

	if s.archiver != nil {
		if err := s.archiver.ArchiveReport(ctx, report); err != nil {
			s.logger.Warn("pipeline.report_archival_failed",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("pipeline.completed",
		zap.String("session_id", sessionID),
		zap.Float64("duration_seconds", report.Duration),
		zap.Int("word_count", report.WordCount),
		zap.Float64("processing_seconds", report.ProcessingTime),
	)
	return report, nil
}

func (s *Service) track(ctx context.Context, sessionID string, status entities.SessionStatus, progress float64, message string) {
	if s.tracker == nil || sessionID == "" {
		return
	}
	s.tracker.Track(ctx, sessionID, status, progress, message)
}
