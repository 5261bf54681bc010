package insight

import (
	"fmt"
	"strings"

	"github.com/capitolstream/searchcore/internal/search"
)

// sentimentSampleSize bounds how many results the sentiment pass reads.
// Sampling the head of the set instead of all of it is intentional.
const sentimentSampleSize = 10

// Lexicons for the word-count sentiment signal. No model, just counts.
var (
	positiveWords = []string{
		"support", "success", "progress", "improve", "improvement",
		"agreement", "praise", "win", "growth", "benefit", "hope",
		"bipartisan", "reform",
	}

	negativeWords = []string{
		"crisis", "fail", "failure", "attack", "scandal", "decline",
		"loss", "corruption", "threat", "criticism", "criticize",
		"shutdown", "deadlock",
	}
)

type sentimentLabel string

const (
	sentimentPositive sentimentLabel = "positive"
	sentimentNegative sentimentLabel = "negative"
	sentimentNeutral  sentimentLabel = "neutral"
)

// classifySentiment labels one text by comparing lexicon hit counts.
// A tie or no hits is neutral.
func classifySentiment(text string) sentimentLabel {
	lower := strings.ToLower(text)

	pos, neg := 0, 0
	for _, w := range positiveWords {
		pos += strings.Count(lower, w)
	}
	for _, w := range negativeWords {
		neg += strings.Count(lower, w)
	}

	switch {
	case pos > neg:
		return sentimentPositive
	case neg > pos:
		return sentimentNegative
	default:
		return sentimentNeutral
	}
}

// sentimentInsight samples up to the first ten results carrying content text
// and reports the modal sentiment label with its share of the sample.
func sentimentInsight(results []search.Result) *Insight {
	counts := make(map[string]int)
	sampled := 0
	for _, r := range results {
		if r.Content == "" {
			continue
		}
		counts[string(classifySentiment(r.Content))]++
		sampled++
		if sampled == sentimentSampleSize {
			break
		}
	}
	if sampled == 0 {
		return nil
	}

	label, count := modal(counts)
	pct := 100 * count / sampled

	return &Insight{
		Type:        TypeSentiment,
		Title:       "Overall Tone",
		Description: fmt.Sprintf("Sampled coverage reads %s (%d%% of %d sampled).", label, pct, sampled),
		Confidence:  float64(count) / float64(sampled),
		Actionable:  false,
	}
}
