package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/meetinglens/meetinglens/internal/domain/entities"
)

// extractJSON pulls a JSON object or array out of a model response that may be
// wrapped in markdown code fences or surrounded by prose.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.Contains(s, "```") {
		start := strings.Index(s, "```")
		rest := s[start+3:]
		// Skip a language tag such as ```json.
		if nl := strings.Index(rest, "\n"); nl >= 0 {
			firstLine := strings.TrimSpace(rest[:nl])
			if firstLine == "json" || firstLine == "JSON" || firstLine == "" {
				rest = rest[nl+1:]
			}
		}
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		s = strings.TrimSpace(rest)
	}

	// Trim prose around the outermost JSON value.
	objStart := strings.IndexAny(s, "{[")
	if objStart < 0 {
		return s
	}
	var closer byte
	if s[objStart] == '{' {
		closer = '}'
	} else {
		closer = ']'
	}
	objEnd := strings.LastIndexByte(s, closer)
	if objEnd <= objStart {
		return s
	}
	return s[objStart : objEnd+1]
}

// actionItemPayload is the model-facing shape for one action item.
type actionItemPayload struct {
	Text     string `json:"text"`
	Assignee string `json:"assignee"`
	Deadline string `json:"deadline"`
	Priority string `json:"priority"`
}

// parseActionItems decodes the action item extraction response. Parsing is
// strict: any malformed payload fails the whole task so the caller can fall
// back to the documented default.
func parseActionItems(raw string, max int) ([]entities.ActionItem, error) {
	var payload []actionItemPayload
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return nil, fmt.Errorf("malformed action item response: %w", err)
	}

	items := make([]entities.ActionItem, 0, len(payload))
	for _, p := range payload {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}
		item := entities.NewActionItem(text)
		item.Assignee = strings.TrimSpace(p.Assignee)
		item.Deadline = strings.TrimSpace(p.Deadline)
		item.Priority = entities.ParsePriority(strings.ToLower(strings.TrimSpace(p.Priority)))
		item.Confidence = 0.9
		items = append(items, item)
		if len(items) >= max {
			break
		}
	}
	return items, nil
}

// decisionPayload is the model-facing shape for one decision.
type decisionPayload struct {
	Decision  string `json:"decision"`
	Rationale string `json:"rationale"`
	Impact    string `json:"impact"`
}

func parseDecisions(raw string, max int) ([]entities.Decision, error) {
	var payload []decisionPayload
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return nil, fmt.Errorf("malformed decision response: %w", err)
	}

	decisions := make([]entities.Decision, 0, len(payload))
	for _, p := range payload {
		text := strings.TrimSpace(p.Decision)
		if text == "" {
			continue
		}
		d := entities.NewDecision(text)
		d.Rationale = strings.TrimSpace(p.Rationale)
		d.Impact = strings.TrimSpace(p.Impact)
		if d.Impact == "" {
			d.Impact = "medium"
		}
		d.Confidence = 0.85
		decisions = append(decisions, d)
		if len(decisions) >= max {
			break
		}
	}
	return decisions, nil
}

// sentimentPayload is the model-facing shape for the sentiment response.
type sentimentPayload struct {
	Overall string  `json:"overall"`
	Score   float64 `json:"score"`
	Tone    string  `json:"tone"`
}

func parseSentiment(raw string) (entities.SentimentResult, error) {
	var payload sentimentPayload
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return entities.SentimentResult{}, fmt.Errorf("malformed sentiment response: %w", err)
	}

	score := payload.Score
	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}
	tone := strings.TrimSpace(payload.Tone)
	if tone == "" {
		tone = "Unknown tone"
	}
	return entities.SentimentResult{
		Overall: entities.ParseSentimentLabel(strings.ToLower(strings.TrimSpace(payload.Overall))),
		Score:   score,
		Tone:    tone,
	}, nil
}

func parseTopics(raw string, max int) ([]string, error) {
	var payload []string
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return nil, fmt.Errorf("malformed topic response: %w", err)
	}

	topics := make([]string, 0, len(payload))
	for _, t := range payload {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		topics = append(topics, t)
		if len(topics) >= max {
			break
		}
	}
	return topics, nil
}
