// Package entity detects speaker, topic, and date mentions in transcript
// search queries and classifies coarse search intent.
//
// Detection is signal-based: keyword and phrase membership against
// configurable lookup lists, plus lightweight date-phrase recognition.
// There is no statistical model; empty results are normal, not errors.
package entity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/shlex"
)

// Entities holds everything recognized in a single query.
type Entities struct {
	Speakers   []string
	Topics     []string
	DateRanges []DateRange

	// Confidence reflects the fraction of signal categories (speaker,
	// topic, date) that produced at least one hit, not correctness.
	Confidence float64
}

// DateRange is a recognized time span with a human-readable label.
type DateRange struct {
	Start time.Time
	End   time.Time
	Label string
}

// Extractor recognizes entities against configured lookup lists.
type Extractor struct {
	speakers []string
	topics   []string
	now      func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSpeakers replaces the default speaker lookup list.
func WithSpeakers(speakers []string) Option {
	return func(e *Extractor) { e.speakers = speakers }
}

// WithTopics replaces the default topic lookup list.
func WithTopics(topics []string) Option {
	return func(e *Extractor) { e.topics = topics }
}

// WithClock replaces the extractor's time source, used by date-phrase
// recognition. Tests use this for deterministic ranges.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// defaultTopics are political topic keywords matched by substring.
// Multi-word entries match as phrases.
var defaultTopics = []string{
	"healthcare", "economy", "climate", "immigration", "education",
	"tax", "taxes", "abortion", "gun control", "guns", "foreign policy",
	"infrastructure", "energy", "trade", "defense", "budget",
	"election", "voting rights", "social security", "medicare",
}

// titledSpeakerPattern matches a political title followed by a capitalized
// surname, e.g. "Senator Johnson" or "president Reyes".
var titledSpeakerPattern = regexp.MustCompile(
	`\b(?i:(senator|president|governor|congressman|congresswoman|representative|secretary|speaker|mayor|justice|ambassador))[ ]+([A-Z][A-Za-z'-]+)`)

// capitalizedNamePattern matches a plain "First Last" personal name.
var capitalizedNamePattern = regexp.MustCompile(
	`\b([A-Z][a-z]+)[ ]+([A-Z][a-z]+)\b`)

// NewExtractor creates an Extractor with default lookup lists.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		topics: defaultTopics,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract recognizes speakers, topics, and date ranges in a query.
// Nothing recognized yields empty lists, never an error.
func (e *Extractor) Extract(query string) Entities {
	ents := Entities{
		Speakers:   e.extractSpeakers(query),
		Topics:     e.extractTopics(query),
		DateRanges: extractDateRanges(query, e.now()),
	}

	hits := 0
	if len(ents.Speakers) > 0 {
		hits++
	}
	if len(ents.Topics) > 0 {
		hits++
	}
	if len(ents.DateRanges) > 0 {
		hits++
	}
	ents.Confidence = float64(hits) / 3.0
	return ents
}

func (e *Extractor) extractSpeakers(query string) []string {
	var speakers []string
	seen := make(map[string]bool)
	add := func(s string) {
		key := strings.ToLower(s)
		if !seen[key] {
			seen[key] = true
			speakers = append(speakers, s)
		}
	}

	lower := strings.ToLower(query)
	for _, known := range e.speakers {
		if known != "" && strings.Contains(lower, strings.ToLower(known)) {
			add(known)
		}
	}

	for _, m := range titledSpeakerPattern.FindAllStringSubmatch(query, -1) {
		add(m[1] + " " + m[2])
	}

	return speakers
}

func (e *Extractor) extractTopics(query string) []string {
	var topics []string
	seen := make(map[string]bool)
	add := func(s string) {
		key := strings.ToLower(s)
		if !seen[key] {
			seen[key] = true
			topics = append(topics, key)
		}
	}

	lower := strings.ToLower(query)
	for _, topic := range e.topics {
		if containsWord(lower, strings.ToLower(topic)) {
			add(topic)
		}
	}

	// Quoted phrases are exact topic mentions: `"clean energy" vote`
	// yields the topic "clean energy".
	for _, phrase := range quotedPhrases(query) {
		add(phrase)
	}

	return topics
}

// HasPersonalName reports whether the query contains something that looks
// like a personal name: a titled speaker or a capitalized First Last pair.
func HasPersonalName(query string) bool {
	return titledSpeakerPattern.MatchString(query) ||
		capitalizedNamePattern.MatchString(query)
}

// quotedPhrases returns multi-word tokens produced by shell-style
// tokenization, i.e. phrases the user put in quotes. Unbalanced quotes
// fall back to no phrases.
func quotedPhrases(query string) []string {
	tokens, err := shlex.Split(query)
	if err != nil {
		return nil
	}
	var phrases []string
	for _, tok := range tokens {
		if strings.Contains(tok, " ") {
			phrases = append(phrases, strings.ToLower(tok))
		}
	}
	return phrases
}

// containsWord reports whether text contains needle bounded by non-letter
// characters (or string edges). Multi-word needles match as substrings with
// the same boundary rule on both ends.
func containsWord(text, needle string) bool {
	if needle == "" {
		return false
	}
	for start := 0; ; {
		idx := strings.Index(text[start:], needle)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(needle)
		beforeOK := idx == 0 || !isWordByte(text[idx-1])
		afterOK := end == len(text) || !isWordByte(text[end])
		if beforeOK && afterOK {
			return true
		}
		start = idx + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}
