package insight

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/capitolstream/searchcore/internal/search"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(0, 0, nil)
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}
	return a
}

// Twelve results over two days, nine of them from one speaker, must yield a
// week-scale temporal insight and a 75% speaker share.
func TestAnalyze_TemporalAndSpeaker(t *testing.T) {
	t.Parallel()

	var results []search.Result
	for i := 0; i < 12; i++ {
		speaker := "Senator Johnson"
		if i >= 9 {
			speaker = "Governor Lee"
		}
		results = append(results, search.Result{
			ID:      fmt.Sprintf("r%d", i),
			Speaker: speaker,
			Date:    testNow.Add(time.Duration(i%2) * 36 * time.Hour),
		})
	}

	insights := newTestAnalyzer(t).Analyze("senator johnson", results)

	var temporal, speaker *Insight
	for i := range insights {
		switch insights[i].Type {
		case TypeTemporal:
			temporal = &insights[i]
		case TypeSpeaker:
			speaker = &insights[i]
		}
	}

	if temporal == nil {
		t.Fatal("missing temporal insight")
	}
	if !strings.Contains(temporal.Description, "single week") {
		t.Errorf("temporal description = %q, want single week span", temporal.Description)
	}

	if speaker == nil {
		t.Fatal("missing speaker insight")
	}
	if !strings.Contains(speaker.Description, "Senator Johnson") {
		t.Errorf("speaker description = %q, want modal speaker named", speaker.Description)
	}
	if !strings.Contains(speaker.Description, "75%") {
		t.Errorf("speaker description = %q, want 75%% share", speaker.Description)
	}
}

func TestAnalyze_InsightCap(t *testing.T) {
	t.Parallel()

	// Results rich enough to trigger every insight type.
	var results []search.Result
	for i := 0; i < 12; i++ {
		results = append(results, search.Result{
			ID:       fmt.Sprintf("r%d", i),
			Speaker:  "Senator Johnson",
			Category: "Healthcare",
			Content:  "bipartisan support and progress on the bill",
			Source:   fmt.Sprintf("network-%d", i%3),
			Date:     testNow.AddDate(0, 0, -i*10),
		})
	}

	insights := newTestAnalyzer(t).Analyze("healthcare", results)
	if len(insights) > DefaultMaxInsights {
		t.Errorf("len(insights) = %d, want <= %d", len(insights), DefaultMaxInsights)
	}
}

func TestAnalyze_EmptyResults(t *testing.T) {
	t.Parallel()

	if insights := newTestAnalyzer(t).Analyze("anything", nil); len(insights) != 0 {
		t.Errorf("Analyze(nil results) = %v, want empty", insights)
	}
}

// A second call with the same query inside the TTL serves the cache: the
// output is identical and the recomputation counter does not move.
func TestAnalyze_CacheHitSkipsRecompute(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(t)
	now := testNow
	a.SetClock(func() time.Time { return now })

	results := []search.Result{
		{ID: "r1", Speaker: "Senator Johnson", Date: testNow},
		{ID: "r2", Speaker: "Senator Johnson", Date: testNow},
	}

	first := a.Analyze("senator johnson", results)
	if got := a.Recomputations(); got != 1 {
		t.Fatalf("Recomputations() = %d after first call, want 1", got)
	}

	now = now.Add(10 * time.Minute)
	second := a.Analyze("senator johnson", results)
	if got := a.Recomputations(); got != 1 {
		t.Errorf("Recomputations() = %d after cache hit, want 1", got)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached output differs: first %v, second %v", first, second)
	}
}

func TestAnalyze_CacheExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(t)
	now := testNow
	a.SetClock(func() time.Time { return now })

	results := []search.Result{{ID: "r1", Speaker: "Senator Johnson", Date: testNow}}

	a.Analyze("senator johnson", results)
	now = now.Add(DefaultCacheTTL)
	a.Analyze("senator johnson", results)

	if got := a.Recomputations(); got != 2 {
		t.Errorf("Recomputations() = %d after TTL expiry, want 2", got)
	}
}

// A caller-supplied TTL governs expiry instead of the default.
func TestAnalyze_ConfiguredTTL(t *testing.T) {
	t.Parallel()

	a, err := NewAnalyzer(0, time.Minute, nil)
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}
	now := testNow
	a.SetClock(func() time.Time { return now })

	results := []search.Result{{ID: "r1", Speaker: "Senator Johnson", Date: testNow}}

	a.Analyze("senator johnson", results)

	now = now.Add(30 * time.Second)
	a.Analyze("senator johnson", results)
	if got := a.Recomputations(); got != 1 {
		t.Errorf("Recomputations() = %d inside configured TTL, want 1", got)
	}

	now = now.Add(2 * time.Minute)
	a.Analyze("senator johnson", results)
	if got := a.Recomputations(); got != 2 {
		t.Errorf("Recomputations() = %d past configured TTL, want 2", got)
	}
}

func TestNewAnalyzer_NegativeTTL(t *testing.T) {
	t.Parallel()

	if _, err := NewAnalyzer(0, -time.Minute, nil); err == nil {
		t.Error("NewAnalyzer(negative TTL) error = nil, want error")
	}
}

func TestTemporalInsight_SpanLabels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		span time.Duration
		want string
	}{
		{"hours apart", 6 * time.Hour, "single day"},
		{"days apart", 3 * 24 * time.Hour, "single week"},
		{"weeks apart", 20 * 24 * time.Hour, "single month"},
		{"months apart", 90 * 24 * time.Hour, "extended period"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			results := []search.Result{
				{ID: "a", Date: testNow},
				{ID: "b", Date: testNow.Add(tt.span)},
			}
			ins := temporalInsight(results)
			if ins == nil {
				t.Fatal("temporalInsight() = nil")
			}
			if !strings.Contains(ins.Description, tt.want) {
				t.Errorf("Description = %q, want label %q", ins.Description, tt.want)
			}
		})
	}
}

func TestTemporalInsight_RequiresDatedResult(t *testing.T) {
	t.Parallel()

	if ins := temporalInsight([]search.Result{{ID: "a"}}); ins != nil {
		t.Errorf("temporalInsight() = %v, want nil without dates", ins)
	}
}

func TestTopicInsight_RelatedCategories(t *testing.T) {
	t.Parallel()

	results := []search.Result{
		{Category: "Healthcare"}, {Category: "Healthcare"}, {Category: "Healthcare"},
		{Category: "Economy"}, {Category: "Economy"},
		{Category: "Climate"},
		{Category: "Trade"},
	}

	ins := topicInsight(results)
	if ins == nil {
		t.Fatal("topicInsight() = nil")
	}
	if !strings.Contains(ins.Description, "Healthcare") {
		t.Errorf("Description = %q, want modal category Healthcare", ins.Description)
	}
	// Only the top three make the related list.
	if strings.Contains(ins.Description, "Trade") {
		t.Errorf("Description = %q, fourth category should be dropped", ins.Description)
	}
}

func TestCrossReferenceInsight_NeedsTwoSources(t *testing.T) {
	t.Parallel()

	one := []search.Result{{Source: "cspan"}, {Source: "cspan"}}
	if ins := crossReferenceInsight(one); ins != nil {
		t.Errorf("crossReferenceInsight() = %v, want nil for a single source", ins)
	}

	two := []search.Result{{Source: "cspan"}, {Source: "senate.gov"}}
	ins := crossReferenceInsight(two)
	if ins == nil {
		t.Fatal("crossReferenceInsight() = nil, want insight for two sources")
	}
	if !strings.Contains(ins.Description, "2 distinct sources") {
		t.Errorf("Description = %q, want source count", ins.Description)
	}
}

func TestClassifySentiment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want sentimentLabel
	}{
		{"bipartisan support and real progress", sentimentPositive},
		{"a scandal and a budget crisis", sentimentNegative},
		{"the committee met on tuesday", sentimentNeutral},
		{"praise for the deal amid criticism", sentimentNeutral},
	}
	for _, tt := range tests {
		if got := classifySentiment(tt.text); got != tt.want {
			t.Errorf("classifySentiment(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestSentimentInsight_SamplesFirstTen(t *testing.T) {
	t.Parallel()

	// Ten positive results followed by ten negative ones: only the first
	// ten with content are sampled.
	var results []search.Result
	for i := 0; i < 10; i++ {
		results = append(results, search.Result{Content: "progress and support"})
	}
	for i := 0; i < 10; i++ {
		results = append(results, search.Result{Content: "crisis and scandal"})
	}

	ins := sentimentInsight(results)
	if ins == nil {
		t.Fatal("sentimentInsight() = nil")
	}
	if !strings.Contains(ins.Description, "positive") {
		t.Errorf("Description = %q, want positive modal label from the sample", ins.Description)
	}
	if !strings.Contains(ins.Description, "100%") {
		t.Errorf("Description = %q, want 100%% of sample", ins.Description)
	}
}
