package entity

import (
	"strings"
)

// Intent is a coarse classification of what kind of search the user is
// performing.
type Intent int

const (
	IntentGeneral Intent = iota
	IntentSpeakerSpecific
	IntentTopicResearch
	IntentDateRangeQuery
	IntentComparative
	IntentFactFinding
	IntentSentiment
)

// String returns the intent name.
func (i Intent) String() string {
	switch i {
	case IntentGeneral:
		return "general"
	case IntentSpeakerSpecific:
		return "speaker_specific"
	case IntentTopicResearch:
		return "topic_research"
	case IntentDateRangeQuery:
		return "date_range"
	case IntentComparative:
		return "comparative"
	case IntentFactFinding:
		return "fact_finding"
	case IntentSentiment:
		return "sentiment"
	default:
		return "unknown"
	}
}

// comparativeConnectors signal a comparison between two subjects.
var comparativeConnectors = []string{
	" vs ", " vs. ", " versus ", "compared to", "compared with",
	"difference between",
}

// Rule confidences. These reflect how specific each signal is, not
// correctness of the classification.
const (
	confDateRange   = 0.9
	confComparative = 0.85
	confSpeaker     = 0.8
	confTopic       = 0.7
	confGeneral     = 0.5
)

// ClassifyIntent classifies a query with fixed rule priority:
// DateRangeQuery > Comparative > SpeakerSpecific > TopicResearch > General.
// The ordering keeps classification deterministic when several rules match.
func (e *Extractor) ClassifyIntent(query string) (Intent, float64) {
	lower := strings.ToLower(query)

	if HasDatePhrase(query, e.now()) {
		return IntentDateRangeQuery, confDateRange
	}

	for _, conn := range comparativeConnectors {
		if strings.Contains(lower, conn) {
			return IntentComparative, confComparative
		}
	}

	if len(e.extractSpeakers(query)) > 0 {
		return IntentSpeakerSpecific, confSpeaker
	}

	if len(e.extractTopics(query)) > 0 {
		return IntentTopicResearch, confTopic
	}

	return IntentGeneral, confGeneral
}
