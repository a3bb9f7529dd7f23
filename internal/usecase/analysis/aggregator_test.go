package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetinglens/meetinglens/internal/domain/entities"
)

func TestAggregateSpeakers(t *testing.T) {
	segments := []entities.TranscriptSegment{
		entities.NewTranscriptSegment("Speaker A", "hello world", 0, 10, 0.9),
		entities.NewTranscriptSegment("Speaker B", "yes indeed ok", 10, 15, 0.9),
	}

	stats, balance := AggregateSpeakers(segments)

	require.Len(t, stats, 2)
	assert.Equal(t, "Speaker A", stats[0].Name)
	assert.InDelta(t, 10.0, stats[0].SpeakingTime, 1e-9)
	assert.Equal(t, 2, stats[0].WordCount)
	assert.Equal(t, entities.SentimentNeutral, stats[0].Sentiment)

	assert.Equal(t, "Speaker B", stats[1].Name)
	assert.InDelta(t, 5.0, stats[1].SpeakingTime, 1e-9)
	assert.Equal(t, 3, stats[1].WordCount)

	assert.InDelta(t, 66.7, balance["Speaker A"], 1e-9)
	assert.InDelta(t, 33.3, balance["Speaker B"], 1e-9)
}

func TestAggregateSpeakersDeterministic(t *testing.T) {
	segments := []entities.TranscriptSegment{
		entities.NewTranscriptSegment("Speaker 2", "first to speak", 0, 3, 0.8),
		entities.NewTranscriptSegment("Speaker 1", "second to speak", 3, 7, 0.8),
		entities.NewTranscriptSegment("Speaker 2", "speaks again", 7, 9, 0.8),
	}

	firstStats, firstBalance := AggregateSpeakers(segments)
	secondStats, secondBalance := AggregateSpeakers(segments)

	assert.Equal(t, firstStats, secondStats)
	assert.Equal(t, firstBalance, secondBalance)

	// Speakers appear in first-appearance order, not label order.
	require.Len(t, firstStats, 2)
	assert.Equal(t, "Speaker 2", firstStats[0].Name)
	assert.Equal(t, "Speaker 1", firstStats[1].Name)
}

func TestAggregateSpeakersAccumulatesAcrossSegments(t *testing.T) {
	segments := []entities.TranscriptSegment{
		entities.NewTranscriptSegment("Speaker 1", "one two", 0, 2, 0.9),
		entities.NewTranscriptSegment("Speaker 1", "three four five", 2, 6, 0.9),
	}

	stats, balance := AggregateSpeakers(segments)

	require.Len(t, stats, 1)
	assert.InDelta(t, 6.0, stats[0].SpeakingTime, 1e-9)
	assert.Equal(t, 5, stats[0].WordCount)
	assert.InDelta(t, 100.0, balance["Speaker 1"], 1e-9)
}

func TestAggregateSpeakersParticipationSum(t *testing.T) {
	segments := []entities.TranscriptSegment{
		entities.NewTranscriptSegment("Speaker 1", "a", 0, 3.3, 0.9),
		entities.NewTranscriptSegment("Speaker 2", "b", 3.3, 7.1, 0.9),
		entities.NewTranscriptSegment("Speaker 3", "c", 7.1, 13.9, 0.9),
		entities.NewTranscriptSegment("Speaker 1", "d", 13.9, 20.0, 0.9),
	}

	_, balance := AggregateSpeakers(segments)

	sum := 0.0
	for _, share := range balance {
		sum += share
	}
	assert.LessOrEqual(t, math.Abs(sum-100.0), 0.2)
}

func TestAggregateSpeakersZeroTotalTime(t *testing.T) {
	segments := []entities.TranscriptSegment{
		{ID: "s1", Speaker: "Speaker 1", Text: "instant", StartTime: 5, EndTime: 5},
	}

	stats, balance := AggregateSpeakers(segments)

	require.Len(t, stats, 1)
	assert.Equal(t, map[string]float64{"Speaker 1": 0}, balance)
}

func TestAggregateSpeakersEmpty(t *testing.T) {
	stats, balance := AggregateSpeakers(nil)
	assert.Empty(t, stats)
	assert.Empty(t, balance)
}
