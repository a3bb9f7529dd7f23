package entities

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TranscriptSegment represents a single time-bounded span of speech attributed
// to one speaker label. Segments are immutable once created.
type TranscriptSegment struct {
	ID         string  `json:"id"`
	Speaker    string  `json:"speaker"`
	Text       string  `json:"text"`
	StartTime  float64 `json:"start_time"`
	EndTime    float64 `json:"end_time"`
	Confidence float64 `json:"confidence"`
}

// NewTranscriptSegment creates a segment with a fresh identifier.
func NewTranscriptSegment(speaker, text string, start, end, confidence float64) TranscriptSegment {
	return TranscriptSegment{
		ID:         uuid.New().String(),
		Speaker:    speaker,
		Text:       text,
		StartTime:  start,
		EndTime:    end,
		Confidence: confidence,
	}
}

// Validate checks the segment invariants: end after start, confidence in [0,1].
func (s TranscriptSegment) Validate() error {
	if s.EndTime <= s.StartTime {
		return fmt.Errorf("segment %s: end_time %.3f must be greater than start_time %.3f", s.ID, s.EndTime, s.StartTime)
	}
	if s.Confidence < 0 || s.Confidence > 1 {
		return fmt.Errorf("segment %s: confidence %.3f out of range [0,1]", s.ID, s.Confidence)
	}
	return nil
}

// Duration returns the segment duration in seconds.
func (s TranscriptSegment) Duration() float64 {
	return s.EndTime - s.StartTime
}

// WordCount returns the whitespace-delimited token count of the segment text.
func (s TranscriptSegment) WordCount() int {
	return len(strings.Fields(s.Text))
}

// TranscriptText joins segment texts into the full transcript text.
func TranscriptText(segments []TranscriptSegment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, seg.Text)
	}
	return strings.Join(parts, " ")
}
