package entities

import "time"

// SpeakerStat holds per-speaker statistics derived from the transcript.
type SpeakerStat struct {
	Name         string         `json:"name"`
	SpeakingTime float64        `json:"speaking_time"` // seconds
	WordCount    int            `json:"word_count"`
	Sentiment    SentimentLabel `json:"sentiment"`
}

// MeetingReport is the aggregate root produced by one analysis run. It is
// constructed once by the composer and never mutated afterwards; each report
// is owned exclusively by the caller that requested the analysis.
type MeetingReport struct {
	SessionID string    `json:"session_id"`
	Filename  string    `json:"filename"`
	Timestamp time.Time `json:"timestamp"`

	Transcript  []TranscriptSegment `json:"transcript"`
	Summary     string              `json:"summary"`
	ActionItems []ActionItem        `json:"action_items"`
	Decisions   []Decision          `json:"key_decisions"`

	Speakers             []SpeakerStat      `json:"speakers"`
	Topics               []string           `json:"key_topics"`
	Sentiment            SentimentResult    `json:"sentiment"`
	ParticipationBalance map[string]float64 `json:"participation_balance"`

	Duration       float64 `json:"duration"`   // seconds, max segment end time
	WordCount      int     `json:"word_count"` // sum of per-segment word counts
	ProcessingTime float64 `json:"processing_time"`
}
