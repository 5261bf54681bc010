package normalize

import (
	"math/rand"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t\n ", ""},
		{"trims and collapses", "  healthcare   policy!!  ", "healthcare policy"},
		{"preserves hyphen underscore", "climate-change_2024", "climate-change_2024"},
		{"strips punctuation", "taxes?!", "taxes"},
		{"internal tabs", "budget\t\tvote", "budget vote"},
		{"already clean", "senate floor speech", "senate floor speech"},
		{"punctuation only falls back to trimmed input", "  ?!?  ", "?!?"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Normalize must be idempotent: a second pass never changes the output.
func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	fixed := []string{
		"  healthcare   policy!!  ",
		"?!?",
		"climate change",
		"a",
		"  VOTE  2024  ",
	}
	for _, input := range fixed {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}

	// Randomized inputs over a mixed alphabet.
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("abzXYZ019 -_\t?!.,:/\"'")
	for i := 0; i < 500; i++ {
		n := rng.Intn(24) + 1
		var b strings.Builder
		for j := 0; j < n; j++ {
			b.WriteRune(alphabet[rng.Intn(len(alphabet))])
		}
		input := b.String()
		once := Normalize(input)
		if Normalize(once) != once {
			t.Fatalf("Normalize not idempotent for %q: first %q", input, once)
		}
	}
}

// Any input with non-whitespace content must normalize to a non-empty string.
func TestNormalize_NonEmptyPreserving(t *testing.T) {
	t.Parallel()

	inputs := []string{"!", "???", "a", " x ", "...---...", "\"\""}
	for _, input := range inputs {
		if got := Normalize(input); got == "" {
			t.Errorf("Normalize(%q) = empty, want non-empty", input)
		}
	}
}

func TestExpandAbbreviations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single acronym",
			input: "POTUS healthcare",
			want:  "President of the United States healthcare",
		},
		{
			name:  "case insensitive",
			input: "potus speech",
			want:  "President of the United States speech",
		},
		{
			name:  "multiple acronyms expand independently",
			input: "GOP vs DNC",
			want:  "Republican Party vs Democratic National Committee",
		},
		{
			name:  "no whole-word match inside larger word",
			input: "hippopotamus",
			want:  "hippopotamus",
		},
		{
			name:  "unmatched text unchanged",
			input: "climate change vote",
			want:  "climate change vote",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExpandAbbreviations(tt.input); got != tt.want {
				t.Errorf("ExpandAbbreviations(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpansion(t *testing.T) {
	t.Parallel()

	if got, ok := Expansion("scotus"); !ok || got != "Supreme Court of the United States" {
		t.Errorf("Expansion(scotus) = %q, %v", got, ok)
	}
	if _, ok := Expansion("xyz"); ok {
		t.Error("Expansion(xyz) = known, want unknown")
	}
}
