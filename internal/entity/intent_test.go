package entity

import (
	"testing"
)

func TestClassifyIntent(t *testing.T) {
	t.Parallel()

	e := newTestExtractor()

	tests := []struct {
		name  string
		query string
		want  Intent
	}{
		{"date phrase", "healthcare speeches last year", IntentDateRangeQuery},
		{"explicit year", "budget 2022", IntentDateRangeQuery},
		{"comparative", "healthcare vs education", IntentComparative},
		{"compared to", "spending compared to revenue", IntentComparative},
		{"speaker", "Senator Johnson on trade", IntentSpeakerSpecific},
		{"topic only", "healthcare", IntentTopicResearch},
		{"nothing recognized", "zzz qqq", IntentGeneral},
		{"empty", "", IntentGeneral},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, conf := e.ClassifyIntent(tt.query)
			if got != tt.want {
				t.Errorf("ClassifyIntent(%q) = %v, want %v", tt.query, got, tt.want)
			}
			if conf < 0 || conf > 1 {
				t.Errorf("confidence = %v, want within [0,1]", conf)
			}
		})
	}
}

// When multiple rules match, the fixed priority order decides:
// DateRangeQuery > Comparative > SpeakerSpecific > TopicResearch > General.
func TestClassifyIntent_PriorityOrder(t *testing.T) {
	t.Parallel()

	e := newTestExtractor()

	tests := []struct {
		name  string
		query string
		want  Intent
	}{
		{
			name:  "date beats comparative and speaker and topic",
			query: "Senator Johnson healthcare vs education last year",
			want:  IntentDateRangeQuery,
		},
		{
			name:  "comparative beats speaker and topic",
			query: "Senator Johnson healthcare vs education",
			want:  IntentComparative,
		},
		{
			name:  "speaker beats topic",
			query: "Senator Johnson healthcare",
			want:  IntentSpeakerSpecific,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, _ := e.ClassifyIntent(tt.query)
			if got != tt.want {
				t.Errorf("ClassifyIntent(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestIntent_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		intent Intent
		want   string
	}{
		{IntentGeneral, "general"},
		{IntentSpeakerSpecific, "speaker_specific"},
		{IntentTopicResearch, "topic_research"},
		{IntentDateRangeQuery, "date_range"},
		{IntentComparative, "comparative"},
		{IntentFactFinding, "fact_finding"},
		{IntentSentiment, "sentiment"},
		{Intent(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.intent.String(); got != tt.want {
			t.Errorf("Intent(%d).String() = %q, want %q", tt.intent, got, tt.want)
		}
	}
}
