package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetinglens/meetinglens/internal/domain/entities"
)

func TestComposeReport(t *testing.T) {
	segments := []entities.TranscriptSegment{
		entities.NewTranscriptSegment("Speaker A", "hello world", 0, 10, 0.9),
		entities.NewTranscriptSegment("Speaker B", "yes indeed ok", 10, 15, 0.9),
	}
	extraction := entities.DefaultExtraction()
	extraction.Summary = "A short meeting."
	speakers, balance := AggregateSpeakers(segments)

	report, err := ComposeReport("sess-1", "standup.mp3", segments, extraction, speakers, balance, 1.25)
	require.NoError(t, err)

	assert.Equal(t, "sess-1", report.SessionID)
	assert.Equal(t, "standup.mp3", report.Filename)
	assert.InDelta(t, 15.0, report.Duration, 1e-9)
	assert.Equal(t, 5, report.WordCount)
	assert.Equal(t, "A short meeting.", report.Summary)
	assert.InDelta(t, 1.25, report.ProcessingTime, 1e-9)
	assert.Len(t, report.Transcript, 2)
	assert.False(t, report.Timestamp.IsZero())
}

func TestComposeReportEmptyTranscript(t *testing.T) {
	report, err := ComposeReport("sess-2", "silence.wav", nil, entities.DefaultExtraction(), nil, nil, 0.1)
	require.NoError(t, err)

	assert.Zero(t, report.Duration)
	assert.Zero(t, report.WordCount)
}
