package analysis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/meetinglens/meetinglens/internal/domain/entities"
	"github.com/meetinglens/meetinglens/pkg/ai"
)

// Transcriber converts a prepared audio file into attributed transcript
// segments. Implementations return an error only when transcription failed
// outright; partial responses are repaired into valid segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]entities.TranscriptSegment, error)
}

const (
	// speakerCount is the size of the rotating label pool. Attribution is a
	// positional heuristic, not diarization: segment i gets label (i mod 3)+1.
	speakerCount = 3

	// Synthesized timing for transcripts that arrive without timestamps.
	synthWordsPerSecond = 2.0
	synthMinDuration    = 2.0
	synthConfidence     = 0.85
)

// speakerLabel returns the rotating label for segment index i.
func speakerLabel(i int) string {
	return fmt.Sprintf("Speaker %d", i%speakerCount+1)
}

// synthesizeSegments splits flat transcript text into sentence-based segments
// with estimated timing. Used when the provider returns no per-segment
// timestamps.
func synthesizeSegments(text string) []entities.TranscriptSegment {
	sentences := splitSentences(text)
	segments := make([]entities.TranscriptSegment, 0, len(sentences))

	clock := 0.0
	for i, sentence := range sentences {
		words := len(strings.Fields(sentence))
		dur := float64(words) / synthWordsPerSecond
		if dur < synthMinDuration {
			dur = synthMinDuration
		}
		segments = append(segments, entities.NewTranscriptSegment(
			speakerLabel(i),
			sentence,
			clock,
			clock+dur,
			synthConfidence,
		))
		clock += dur
	}
	return segments
}

// splitSentences breaks text on terminal punctuation, keeping the punctuation
// attached to its sentence.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder
	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(b.String()); s != "" {
				sentences = append(sentences, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// placeholderTranscript is the total-failure fallback: a fixed three-segment
// transcript with attributed speakers, so the degraded report still carries
// meaningful speaker statistics.
func placeholderTranscript() []entities.TranscriptSegment {
	return []entities.TranscriptSegment{
		entities.NewTranscriptSegment("Speaker 1",
			"Welcome everyone to today's meeting. Let's start with our project updates.",
			0, 5, 0.95),
		entities.NewTranscriptSegment("Speaker 2",
			"Thanks for organizing this. I have some important updates to share about our progress.",
			5, 10, 0.92),
		entities.NewTranscriptSegment("Speaker 1",
			"Great! We also need to assign action items for next week's deliverables.",
			10, 15, 0.88),
	}
}

// OpenAITranscriber transcribes audio with the Whisper API.
type OpenAITranscriber struct {
	client *ai.OpenAIClient
	logger *zap.Logger
}

// NewOpenAITranscriber creates a Whisper-backed transcriber.
func NewOpenAITranscriber(client *ai.OpenAIClient, logger *zap.Logger) *OpenAITranscriber {
	return &OpenAITranscriber{client: client, logger: logger}
}

// Transcribe uploads the audio file and converts the verbose response into
// transcript segments. Transient failures are retried with exponential backoff.
func (t *OpenAITranscriber) Transcribe(ctx context.Context, audioPath string) ([]entities.TranscriptSegment, error) {
	var resp *ai.WhisperResponse

	operation := func() error {
		var err error
		resp, err = t.client.TranscribeFile(ctx, audioPath)
		return err
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	if err := backoff.Retry(operation, bo); err != nil {
		return nil, fmt.Errorf("whisper transcription failed: %w", err)
	}

	if len(resp.Segments) > 0 {
		return segmentsFromWhisper(resp.Segments), nil
	}
	if strings.TrimSpace(resp.Text) != "" {
		t.logger.Warn("transcription.no_timestamps_synthesizing",
			zap.String("audio", audioPath),
		)
		return synthesizeSegments(resp.Text), nil
	}
	return nil, fmt.Errorf("whisper returned an empty transcription")
}

// segmentsFromWhisper converts verbose Whisper segments. Confidence is derived
// from no_speech_prob; zero-length spans are widened so every segment stays
// valid.
func segmentsFromWhisper(in []ai.WhisperSegment) []entities.TranscriptSegment {
	segments := make([]entities.TranscriptSegment, 0, len(in))
	idx := 0
	for _, ws := range in {
		text := strings.TrimSpace(ws.Text)
		if text == "" {
			continue
		}
		start, end := ws.Start, ws.End
		if end <= start {
			end = start + 0.1
		}
		conf := 1.0 - ws.NoSpeechProb
		if conf < 0 {
			conf = 0
		}
		if conf > 1 {
			conf = 1
		}
		segments = append(segments, entities.NewTranscriptSegment(
			speakerLabel(idx),
			text,
			start,
			end,
			conf,
		))
		idx++
	}
	return segments
}

// AssemblyAITranscriber transcribes audio with AssemblyAI, using its native
// speaker labels when the service provides utterances.
type AssemblyAITranscriber struct {
	client       *ai.AssemblyAIClient
	logger       *zap.Logger
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewAssemblyAITranscriber creates an AssemblyAI-backed transcriber.
func NewAssemblyAITranscriber(client *ai.AssemblyAIClient, logger *zap.Logger) *AssemblyAITranscriber {
	return &AssemblyAITranscriber{
		client:       client,
		logger:       logger,
		pollInterval: 3 * time.Second,
		pollTimeout:  5 * time.Minute,
	}
}

// Transcribe uploads the file, submits a transcription job, and polls until it
// finishes.
func (t *AssemblyAITranscriber) Transcribe(ctx context.Context, audioPath string) ([]entities.TranscriptSegment, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	audioURL, err := t.client.Upload(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("assemblyai upload failed: %w", err)
	}

	jobID, err := t.client.Submit(ctx, audioURL)
	if err != nil {
		return nil, fmt.Errorf("assemblyai submit failed: %w", err)
	}

	deadline := time.Now().Add(t.pollTimeout)
	for {
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("assemblyai transcription timed out after %s", t.pollTimeout)
		}

		tr, err := t.client.GetTranscript(ctx, jobID)
		if err != nil {
			return nil, fmt.Errorf("assemblyai poll failed: %w", err)
		}

		switch tr.Status {
		case "completed":
			return t.segmentsFromTranscript(tr), nil
		case "error":
			return nil, fmt.Errorf("assemblyai transcription failed: %s", tr.Error)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(t.pollInterval):
		}
	}
}

func (t *AssemblyAITranscriber) segmentsFromTranscript(tr *ai.Transcript) []entities.TranscriptSegment {
	if len(tr.Utterances) == 0 {
		if strings.TrimSpace(tr.Text) == "" {
			return nil
		}
		t.logger.Warn("transcription.no_utterances_synthesizing")
		return synthesizeSegments(tr.Text)
	}

	segments := make([]entities.TranscriptSegment, 0, len(tr.Utterances))
	for _, u := range tr.Utterances {
		text := strings.TrimSpace(u.Text)
		if text == "" {
			continue
		}
		start := float64(u.Start) / 1000.0
		end := float64(u.End) / 1000.0
		if end <= start {
			end = start + 0.1
		}
		segments = append(segments, entities.NewTranscriptSegment(
			"Speaker "+u.Speaker,
			text,
			start,
			end,
			u.Confidence,
		))
	}
	return segments
}
