package entities

import "github.com/google/uuid"

// Priority levels for action items.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ParsePriority maps a raw string to a Priority, defaulting to medium.
func ParsePriority(raw string) Priority {
	switch Priority(raw) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return Priority(raw)
	default:
		return PriorityMedium
	}
}

// SentimentLabel classifies overall sentiment.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentMixed    SentimentLabel = "mixed"
)

// ParseSentimentLabel maps a raw string to a SentimentLabel, defaulting to neutral.
func ParseSentimentLabel(raw string) SentimentLabel {
	switch SentimentLabel(raw) {
	case SentimentPositive, SentimentNegative, SentimentNeutral, SentimentMixed:
		return SentimentLabel(raw)
	default:
		return SentimentNeutral
	}
}

// ActionItem is a task extracted from the meeting.
type ActionItem struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	Assignee   string   `json:"assignee,omitempty"`
	Deadline   string   `json:"deadline,omitempty"`
	Priority   Priority `json:"priority"`
	Confidence float64  `json:"confidence"`
}

// NewActionItem creates an ActionItem with a fresh identifier and medium priority.
func NewActionItem(text string) ActionItem {
	return ActionItem{
		ID:       uuid.New().String(),
		Text:     text,
		Priority: PriorityMedium,
	}
}

// Decision is an important decision made during the meeting.
type Decision struct {
	ID         string  `json:"id"`
	Decision   string  `json:"decision"`
	Rationale  string  `json:"rationale,omitempty"`
	Impact     string  `json:"impact"`
	Confidence float64 `json:"confidence"`
}

// NewDecision creates a Decision with a fresh identifier.
func NewDecision(text string) Decision {
	return Decision{
		ID:       uuid.New().String(),
		Decision: text,
	}
}

// SentimentResult is the overall meeting sentiment.
type SentimentResult struct {
	Overall SentimentLabel `json:"overall"`
	Score   float64        `json:"score"` // in [-1, 1]
	Tone    string         `json:"tone"`
}

// NeutralSentiment is the documented default used when sentiment analysis fails.
func NeutralSentiment() SentimentResult {
	return SentimentResult{
		Overall: SentimentNeutral,
		Score:   0,
		Tone:    "Unknown tone",
	}
}

// Extraction bundles the five structured-extraction outputs. Each field
// independently carries either the extracted value or its documented default;
// the failure of one extraction never affects the others.
type Extraction struct {
	Summary     string          `json:"summary"`
	ActionItems []ActionItem    `json:"action_items"`
	Decisions   []Decision      `json:"decisions"`
	Sentiment   SentimentResult `json:"sentiment"`
	Topics      []string        `json:"topics"`
}

// DefaultSummary is the documented fallback when summary generation fails.
const DefaultSummary = "Summary generation unavailable."

// DefaultExtraction returns an Extraction with every slot at its documented default.
func DefaultExtraction() Extraction {
	return Extraction{
		Summary:     DefaultSummary,
		ActionItems: []ActionItem{},
		Decisions:   []Decision{},
		Sentiment:   NeutralSentiment(),
		Topics:      []string{},
	}
}
