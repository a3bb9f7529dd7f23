package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetinglens/meetinglens/internal/domain/entities"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"bare array", `[1,2]`, `[1,2]`},
		{"fenced json", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced no tag", "```\n[1,2]\n```", `[1,2]`},
		{"prose around object", `Here you go: {"a":1} hope that helps`, `{"a":1}`},
		{"leading whitespace", "  \n  [\"x\"]  ", `["x"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.in))
		})
	}
}

func TestParseActionItems(t *testing.T) {
	raw := `[
		{"text": "Send the deck", "assignee": "Dana", "deadline": "Friday", "priority": "high"},
		{"text": "Book a room", "assignee": "", "deadline": "", "priority": "whenever"},
		{"text": ""}
	]`

	items, err := parseActionItems(raw, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Send the deck", items[0].Text)
	assert.Equal(t, "Dana", items[0].Assignee)
	assert.Equal(t, entities.PriorityHigh, items[0].Priority)
	assert.InDelta(t, 0.9, items[0].Confidence, 1e-9)
	assert.NotEmpty(t, items[0].ID)

	// Unknown priority falls back to medium; empty text is dropped.
	assert.Equal(t, entities.PriorityMedium, items[1].Priority)
}

func TestParseActionItemsCap(t *testing.T) {
	raw := `[
		{"text": "one"}, {"text": "two"}, {"text": "three"}
	]`
	items, err := parseActionItems(raw, 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestParseActionItemsMalformed(t *testing.T) {
	_, err := parseActionItems("not json at all", 10)
	assert.Error(t, err)
}

func TestParseDecisions(t *testing.T) {
	raw := "```json\n" + `[
		{"decision": "Ship on Tuesday", "rationale": "Beta passed", "impact": "high"},
		{"decision": "Skip retro", "rationale": "", "impact": ""}
	]` + "\n```"

	decisions, err := parseDecisions(raw, 5)
	require.NoError(t, err)
	require.Len(t, decisions, 2)

	assert.Equal(t, "Ship on Tuesday", decisions[0].Decision)
	assert.Equal(t, "high", decisions[0].Impact)
	assert.InDelta(t, 0.85, decisions[0].Confidence, 1e-9)

	// Missing impact defaults to medium.
	assert.Equal(t, "medium", decisions[1].Impact)
}

func TestParseSentiment(t *testing.T) {
	result, err := parseSentiment(`{"overall": "positive", "score": 0.6, "tone": "Energetic"}`)
	require.NoError(t, err)
	assert.Equal(t, entities.SentimentPositive, result.Overall)
	assert.InDelta(t, 0.6, result.Score, 1e-9)
	assert.Equal(t, "Energetic", result.Tone)
}

func TestParseSentimentClampsAndDefaults(t *testing.T) {
	result, err := parseSentiment(`{"overall": "ecstatic", "score": 4.2, "tone": ""}`)
	require.NoError(t, err)
	assert.Equal(t, entities.SentimentNeutral, result.Overall)
	assert.InDelta(t, 1.0, result.Score, 1e-9)
	assert.Equal(t, "Unknown tone", result.Tone)

	result, err = parseSentiment(`{"overall": "negative", "score": -3}`)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, result.Score, 1e-9)
}

func TestParseTopics(t *testing.T) {
	topics, err := parseTopics(`["roadmap", " hiring ", "", "budget", "offsite", "infra", "misc"]`, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"roadmap", "hiring", "budget", "offsite", "infra"}, topics)
}
