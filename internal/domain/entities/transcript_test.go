package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptSegmentValidate(t *testing.T) {
	valid := NewTranscriptSegment("Speaker 1", "hello", 0, 2, 0.9)
	assert.NoError(t, valid.Validate())

	inverted := NewTranscriptSegment("Speaker 1", "hello", 5, 5, 0.9)
	assert.Error(t, inverted.Validate())

	badConfidence := NewTranscriptSegment("Speaker 1", "hello", 0, 2, 1.5)
	assert.Error(t, badConfidence.Validate())
}

func TestTranscriptSegmentDerived(t *testing.T) {
	seg := NewTranscriptSegment("Speaker 1", "  one   two three ", 1.5, 4.0, 0.9)
	assert.InDelta(t, 2.5, seg.Duration(), 1e-9)
	assert.Equal(t, 3, seg.WordCount())
	require.NotEmpty(t, seg.ID)
}

func TestTranscriptText(t *testing.T) {
	segments := []TranscriptSegment{
		NewTranscriptSegment("Speaker 1", "hello world", 0, 2, 0.9),
		NewTranscriptSegment("Speaker 2", "yes indeed", 2, 4, 0.9),
	}
	assert.Equal(t, "hello world yes indeed", TranscriptText(segments))
	assert.Equal(t, "", TranscriptText(nil))
}
