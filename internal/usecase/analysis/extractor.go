package analysis

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/meetinglens/meetinglens/internal/domain/entities"
	"github.com/meetinglens/meetinglens/pkg/config"
)

var errEmptyResponse = errors.New("model returned an empty response")

// LLMClient is the structured-generation capability the extractor needs.
type LLMClient interface {
	ChatCompletion(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error)
}

// Input truncation limits, in characters. Long transcripts are cut from the
// front before prompting so requests stay inside model context limits.
const (
	truncateLimitLong  = 4000 // summary, action items, decisions
	truncateLimitShort = 3000 // sentiment, topics
)

// Extractor runs the five structured extraction tasks against the transcript
// text. Tasks run concurrently and fail independently: a failed task logs a
// warning and leaves its slot at the documented default.
type Extractor struct {
	llm    LLMClient
	cfg    *config.AnalysisConfig
	logger *zap.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(llm LLMClient, cfg *config.AnalysisConfig, logger *zap.Logger) *Extractor {
	return &Extractor{llm: llm, cfg: cfg, logger: logger}
}

// Extract runs all five tasks and returns the combined result. It never
// returns an error: every slot carries either the extracted value or its
// default.
func (e *Extractor) Extract(ctx context.Context, transcript string) entities.Extraction {
	result := entities.DefaultExtraction()

	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		if summary, err := e.summarize(ctx, transcript); err != nil {
			e.logger.Warn("extraction.summary_failed", zap.Error(err))
		} else {
			result.Summary = summary
		}
	}()

	go func() {
		defer wg.Done()
		if items, err := e.extractActionItems(ctx, transcript); err != nil {
			e.logger.Warn("extraction.action_items_failed", zap.Error(err))
		} else {
			result.ActionItems = items
		}
	}()

	go func() {
		defer wg.Done()
		if decisions, err := e.extractDecisions(ctx, transcript); err != nil {
			e.logger.Warn("extraction.decisions_failed", zap.Error(err))
		} else {
			result.Decisions = decisions
		}
	}()

	go func() {
		defer wg.Done()
		if sentiment, err := e.analyzeSentiment(ctx, transcript); err != nil {
			e.logger.Warn("extraction.sentiment_failed", zap.Error(err))
		} else {
			result.Sentiment = sentiment
		}
	}()

	go func() {
		defer wg.Done()
		if topics, err := e.extractTopics(ctx, transcript); err != nil {
			e.logger.Warn("extraction.topics_failed", zap.Error(err))
		} else {
			result.Topics = topics
		}
	}()

	wg.Wait()
	return result
}

func (e *Extractor) summarize(ctx context.Context, transcript string) (string, error) {
	const system = "You are an expert meeting analyst. Write a concise summary " +
		"of the meeting transcript in 2-4 sentences, covering the purpose, the " +
		"main points discussed, and the outcome. Respond with the summary text only."

	content, err := e.llm.ChatCompletion(ctx, system, truncate(transcript, truncateLimitLong), 300, 0.3)
	if err != nil {
		return "", err
	}
	summary := strings.TrimSpace(content)
	if summary == "" {
		return "", errEmptyResponse
	}
	return summary, nil
}

func (e *Extractor) extractActionItems(ctx context.Context, transcript string) ([]entities.ActionItem, error) {
	const system = "You are an expert meeting analyst. Extract action items from " +
		"the transcript. Respond with a JSON array only; each element has keys " +
		`"text", "assignee", "deadline", and "priority" (low, medium, high, or ` +
		"urgent). Use an empty string when a field is unknown. Return [] when " +
		"there are no action items."

	content, err := e.llm.ChatCompletion(ctx, system, truncate(transcript, truncateLimitLong), 800, 0.2)
	if err != nil {
		return nil, err
	}
	return parseActionItems(content, e.cfg.MaxActionItems)
}

func (e *Extractor) extractDecisions(ctx context.Context, transcript string) ([]entities.Decision, error) {
	const system = "You are an expert meeting analyst. Extract the key decisions " +
		"made during the meeting. Respond with a JSON array only; each element " +
		`has keys "decision", "rationale", and "impact" (low, medium, or high). ` +
		"Return [] when no decisions were made."

	content, err := e.llm.ChatCompletion(ctx, system, truncate(transcript, truncateLimitLong), 600, 0.2)
	if err != nil {
		return nil, err
	}
	return parseDecisions(content, e.cfg.MaxDecisions)
}

func (e *Extractor) analyzeSentiment(ctx context.Context, transcript string) (entities.SentimentResult, error) {
	const system = "You are an expert meeting analyst. Assess the overall " +
		"sentiment of the meeting. Respond with a JSON object only, with keys " +
		`"overall" (positive, negative, neutral, or mixed), "score" (a number ` +
		`from -1 to 1), and "tone" (a short phrase describing the mood).`

	content, err := e.llm.ChatCompletion(ctx, system, truncate(transcript, truncateLimitShort), 200, 0.2)
	if err != nil {
		return entities.SentimentResult{}, err
	}
	return parseSentiment(content)
}

func (e *Extractor) extractTopics(ctx context.Context, transcript string) ([]string, error) {
	const system = "You are an expert meeting analyst. List the main topics " +
		"discussed in the meeting. Respond with a JSON array of short topic " +
		"strings only."

	content, err := e.llm.ChatCompletion(ctx, system, truncate(transcript, truncateLimitShort), 200, 0.2)
	if err != nil {
		return nil, err
	}
	return parseTopics(content, e.cfg.MaxTopics)
}

// truncate cuts s to at most limit bytes, keeping the front of the transcript
// and backing up so a multi-byte rune is never split.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
