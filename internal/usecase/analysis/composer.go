package analysis

import (
	"fmt"
	"time"

	"github.com/meetinglens/meetinglens/internal/domain/entities"
)

// ComposeReport assembles the final MeetingReport from the pipeline outputs.
// Duration is the maximum segment end time and word count is the sum of
// per-segment counts, so both agree with the transcript by construction.
// A negative derived duration indicates corrupted segments upstream and is
// reported as a plain error.
func ComposeReport(
	sessionID, filename string,
	segments []entities.TranscriptSegment,
	extraction entities.Extraction,
	speakers []entities.SpeakerStat,
	balance map[string]float64,
	processingTime float64,
) (*entities.MeetingReport, error) {
	duration := 0.0
	wordCount := 0
	for _, seg := range segments {
		if seg.EndTime > duration {
			duration = seg.EndTime
		}
		wordCount += seg.WordCount()
	}
	if duration < 0 {
		return nil, fmt.Errorf("derived duration %.3f is negative", duration)
	}

	return &entities.MeetingReport{
		SessionID:            sessionID,
		Filename:             filename,
		Timestamp:            time.Now().UTC(),
		Transcript:           segments,
		Summary:              extraction.Summary,
		ActionItems:          extraction.ActionItems,
		Decisions:            extraction.Decisions,
		Speakers:             speakers,
		Topics:               extraction.Topics,
		Sentiment:            extraction.Sentiment,
		ParticipationBalance: balance,
		Duration:             duration,
		WordCount:            wordCount,
		ProcessingTime:       processingTime,
	}, nil
}
