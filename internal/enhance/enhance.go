// Package enhance transforms a submitted query into a richer search string
// through a fixed pipeline of rewrite stages. Each stage tags itself only if
// it actually changed the text, and the whole pipeline degrades to the
// original query on any internal failure rather than surfacing an error.
package enhance

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/capitolstream/searchcore/internal/entity"
	"github.com/capitolstream/searchcore/internal/normalize"
)

// Technique identifies one rewrite stage of the pipeline.
type Technique int

const (
	TechniqueNormalization Technique = iota
	TechniqueAbbreviationExpansion
	TechniqueContextualEnhancement
	TechniqueSemanticEnhancement
	TechniqueDomainSpecific
)

// String returns the technique name.
func (t Technique) String() string {
	switch t {
	case TechniqueNormalization:
		return "normalization"
	case TechniqueAbbreviationExpansion:
		return "abbreviation_expansion"
	case TechniqueContextualEnhancement:
		return "contextual_enhancement"
	case TechniqueSemanticEnhancement:
		return "semantic_enhancement"
	case TechniqueDomainSpecific:
		return "domain_specific"
	default:
		return "unknown"
	}
}

// description is the human-readable phrase used in explanations.
func (t Technique) description() string {
	switch t {
	case TechniqueNormalization:
		return "cleaned up whitespace and punctuation"
	case TechniqueAbbreviationExpansion:
		return "expanded political abbreviations"
	case TechniqueContextualEnhancement:
		return "added contextual terms"
	case TechniqueSemanticEnhancement:
		return "added entity-derived terms"
	case TechniqueDomainSpecific:
		return "focused the query on political content"
	default:
		return "unknown technique"
	}
}

// Enhanced is the outcome of running the pipeline over one query.
type Enhanced struct {
	Original         string
	Enhanced         string
	Techniques       []Technique
	ImprovementScore float64
	Confidence       float64
	Explanation      string
}

// Applied reports whether a technique tag is present.
func (e Enhanced) Applied(t Technique) bool {
	for _, got := range e.Techniques {
		if got == t {
			return true
		}
	}
	return false
}

// Keyword lists driving the heuristic stages. These are deliberately small
// and deterministic; they stand in for no model.
var (
	economicTerms = []string{
		"economy", "economic", "inflation", "jobs", "unemployment",
		"budget", "deficit", "trade", "tariff", "wages", "recession",
	}

	legalTerms = []string{
		"law", "legal", "court", "ruling", "bill", "justice",
		"lawsuit", "constitutional",
	}

	controversialTerms = []string{
		"abortion", "immigration", "gun control", "guns",
		"climate change", "vaccine",
	}

	roleWords = []string{
		"politician", "president", "senator", "governor", "congressman",
		"congresswoman", "representative", "secretary", "mayor", "official",
	}

	organizationTerms = []string{
		"congress", "senate", "white house", "pentagon", "supreme court",
		"fbi", "cia", "epa", "doj", "state department",
	}

	institutionalWords = []string{
		"institution", "agency", "department", "administration", "branch",
	}

	politicalKeywords = []string{
		"policy", "legislation", "political", "politics", "government",
		"congress", "senate", "election", "debate", "vote", "law",
		"president", "senator", "governor", "democrat", "republican",
		"politician", "institution", "statement",
	}

	// domainTerms feed the improvement score: each net new occurrence of
	// one of these words counts toward the rewrite being an improvement.
	domainTerms = []string{
		"policy", "legislation", "debate", "politician", "institution",
		"government", "political", "statement",
	}
)

// Enhancer runs the rewrite pipeline. Zero value is not usable; construct
// with NewEnhancer.
type Enhancer struct {
	extractor *entity.Extractor
	logger    *slog.Logger
}

// NewEnhancer creates an enhancer. A nil extractor gets a default one; a nil
// logger defaults to slog.Default().
func NewEnhancer(extractor *entity.Extractor, logger *slog.Logger) *Enhancer {
	if extractor == nil {
		extractor = entity.NewExtractor()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Enhancer{extractor: extractor, logger: logger}
}

// Enhance runs the five rewrite stages in order and scores the result.
// It never fails: an internal panic produces a fallback result carrying the
// original query with zero scores.
func (e *Enhancer) Enhance(query string) (out Enhanced) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("enhancement pipeline failed, returning original query", "error", r)
			out = Enhanced{
				Original:    query,
				Enhanced:    query,
				Explanation: "enhancement unavailable, original query used",
			}
		}
	}()

	var techniques []Technique
	abbrevExpanded := false

	text := normalize.Normalize(query)
	techniques = append(techniques, TechniqueNormalization)

	if expanded := normalize.ExpandAbbreviations(text); expanded != text {
		text = expanded
		techniques = append(techniques, TechniqueAbbreviationExpansion)
		abbrevExpanded = true
	}

	if changed := e.addContextualTerms(text); changed != text {
		text = changed
		techniques = append(techniques, TechniqueContextualEnhancement)
	}

	if changed := e.addEntityTerms(text); changed != text {
		text = changed
		techniques = append(techniques, TechniqueSemanticEnhancement)
	}

	if changed := e.applyDomainFocus(text); changed != text {
		text = changed
		techniques = append(techniques, TechniqueDomainSpecific)
	}

	improvement := improvementScore(query, text, abbrevExpanded)
	confidence := clamp01(0.15*float64(len(techniques)) + 0.6*improvement + 0.25)

	return Enhanced{
		Original:         query,
		Enhanced:         text,
		Techniques:       techniques,
		ImprovementScore: improvement,
		Confidence:       confidence,
		Explanation:      explain(techniques),
	}
}

// addContextualTerms appends broad topical anchors when a term family is
// present without its anchor word.
func (e *Enhancer) addContextualTerms(text string) string {
	if anyWordPresent(text, economicTerms) && !hasWord(text, "policy") {
		text += " policy"
	}
	if anyWordPresent(text, legalTerms) && !hasWord(text, "legislation") {
		text += " legislation"
	}
	if anyWordPresent(text, controversialTerms) && !hasWord(text, "debate") && !hasWord(text, "discussion") {
		text += " debate"
	}
	return text
}

// addEntityTerms appends role or institution anchors derived from detected
// named entities.
func (e *Enhancer) addEntityTerms(text string) string {
	if entity.HasPersonalName(text) && !anyWordPresent(text, roleWords) {
		text += " politician"
	}
	if anyWordPresent(text, organizationTerms) && !anyWordPresent(text, institutionalWords) {
		text += " institution"
	}
	return text
}

// applyDomainFocus appends a topic-specific suffix when the evolving text
// still carries no political keyword at all.
func (e *Enhancer) applyDomainFocus(text string) string {
	if anyWordPresent(text, politicalKeywords) {
		return text
	}
	switch {
	case hasWord(text, "healthcare"):
		return text + " healthcare policy"
	case hasWord(text, "climate"):
		return text + " climate legislation"
	case hasWord(text, "tax") || hasWord(text, "taxes"):
		return text + " tax policy"
	default:
		return text + " political statement"
	}
}

// improvementScore estimates how much the rewrite improved the query:
// relative length growth capped at 0.5, plus 0.1 per net new domain term,
// plus 0.2 when an abbreviation was expanded, clamped to [0, 1].
func improvementScore(before, after string, abbrevExpanded bool) float64 {
	score := 0.0
	if n := len(before); n > 0 {
		growth := float64(len(after)-n) / float64(n)
		if growth > 0.5 {
			growth = 0.5
		}
		if growth > 0 {
			score += growth
		}
	}

	if added := countDomainTerms(after) - countDomainTerms(before); added > 0 {
		score += 0.1 * float64(added)
	}
	if abbrevExpanded {
		score += 0.2
	}
	return clamp01(score)
}

func countDomainTerms(text string) int {
	n := 0
	for _, term := range domainTerms {
		if hasWord(text, term) {
			n++
		}
	}
	return n
}

func explain(techniques []Technique) string {
	if len(techniques) == 0 {
		return "no enhancement applied"
	}
	parts := make([]string, 0, len(techniques))
	for _, t := range techniques {
		parts = append(parts, t.description())
	}
	return fmt.Sprintf("Enhanced query: %s.", strings.Join(parts, "; "))
}

// hasWord reports a case-insensitive whole-word (or whole-phrase) match.
func hasWord(text, needle string) bool {
	t := strings.ToLower(text)
	n := strings.ToLower(needle)
	for start := 0; ; {
		idx := strings.Index(t[start:], n)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(n)
		leftOK := idx == 0 || !isWordByte(t[idx-1])
		rightOK := end == len(t) || !isWordByte(t[end])
		if leftOK && rightOK {
			return true
		}
		start = idx + 1
	}
}

func anyWordPresent(text string, words []string) bool {
	for _, w := range words {
		if hasWord(text, w) {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
