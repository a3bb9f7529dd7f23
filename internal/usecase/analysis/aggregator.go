package analysis

import (
	"math"

	"github.com/meetinglens/meetinglens/internal/domain/entities"
)

// AggregateSpeakers computes per-speaker statistics and the participation
// balance from transcript segments. The computation is pure and deterministic:
// speakers appear in first-appearance order and participation shares are
// derived from speaking time, rounded to one decimal place.
func AggregateSpeakers(segments []entities.TranscriptSegment) ([]entities.SpeakerStat, map[string]float64) {
	order := make([]string, 0)
	totals := make(map[string]*entities.SpeakerStat)

	for _, seg := range segments {
		stat, ok := totals[seg.Speaker]
		if !ok {
			stat = &entities.SpeakerStat{
				Name:      seg.Speaker,
				Sentiment: entities.SentimentNeutral,
			}
			totals[seg.Speaker] = stat
			order = append(order, seg.Speaker)
		}
		stat.SpeakingTime += seg.Duration()
		stat.WordCount += seg.WordCount()
	}

	stats := make([]entities.SpeakerStat, 0, len(order))
	totalTime := 0.0
	for _, name := range order {
		stats = append(stats, *totals[name])
		totalTime += totals[name].SpeakingTime
	}

	// Zero total speaking time yields all-zero shares rather than NaN.
	balance := make(map[string]float64, len(stats))
	for _, stat := range stats {
		if totalTime > 0 {
			balance[stat.Name] = round1(stat.SpeakingTime / totalTime * 100)
		} else {
			balance[stat.Name] = 0
		}
	}
	return stats, balance
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
