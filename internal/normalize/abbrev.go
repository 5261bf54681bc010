package normalize

import (
	"regexp"
	"sort"
	"strings"
)

// abbreviations maps political-domain acronyms to their expanded forms.
// Matches are whole-word and case-insensitive; unmatched text passes
// through unchanged.
var abbreviations = map[string]string{
	"POTUS":  "President of the United States",
	"SCOTUS": "Supreme Court of the United States",
	"FLOTUS": "First Lady of the United States",
	"SOTU":   "State of the Union",
	"GOP":    "Republican Party",
	"DNC":    "Democratic National Committee",
	"RNC":    "Republican National Committee",
	"EPA":    "Environmental Protection Agency",
	"DOJ":    "Department of Justice",
	"DHS":    "Department of Homeland Security",
	"FBI":    "Federal Bureau of Investigation",
	"CIA":    "Central Intelligence Agency",
	"NATO":   "North Atlantic Treaty Organization",
	"UN":     "United Nations",
	"EU":     "European Union",
	"VP":     "Vice President",
	"AG":     "Attorney General",
	"ACA":    "Affordable Care Act",
	"GDP":    "gross domestic product",
}

type abbrevRule struct {
	pattern   *regexp.Regexp
	expansion string
}

var abbrevRules = compileAbbrevRules()

func compileAbbrevRules() []abbrevRule {
	// Stable ordering so repeated runs expand identically.
	keys := make([]string, 0, len(abbreviations))
	for k := range abbreviations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rules := make([]abbrevRule, 0, len(keys))
	for _, k := range keys {
		rules = append(rules, abbrevRule{
			pattern:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(k) + `\b`),
			expansion: abbreviations[k],
		})
	}
	return rules
}

// ExpandAbbreviations replaces whole-word occurrences of known political
// acronyms with their expansions. Multiple distinct acronyms in one query
// all expand independently.
func ExpandAbbreviations(text string) string {
	for _, rule := range abbrevRules {
		text = rule.pattern.ReplaceAllString(text, rule.expansion)
	}
	return text
}

// Expansion returns the expanded form of an acronym and whether it is known.
func Expansion(acronym string) (string, bool) {
	for k, v := range abbreviations {
		if strings.EqualFold(k, acronym) {
			return v, true
		}
	}
	return "", false
}
