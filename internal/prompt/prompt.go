// Package prompt maps free-form descriptions onto a pattern by keyword.
package prompt

import (
	"strings"

	"github.com/coreman2200/funtimes-ledstudio/internal/pattern"
)

// Rule maps a lowercase substring onto a pattern.
type Rule struct {
	Keyword string
	Pattern pattern.ID
}

// Fallback is returned when no rule matches.
const Fallback = pattern.Sparkle

// Rules is scanned in order and the first match wins.
var Rules = []Rule{
	{"ocean", pattern.Wave},
	{"party", pattern.Rainbow},
	{"emergency", pattern.Police},
	{"fire", pattern.Fire},
	{"flame", pattern.Fire},
	{"calm", pattern.Breathing},
	{"breath", pattern.Breathing},
	{"sleep", pattern.Breathing},
	{"flash", pattern.Strobe},
	{"strobe", pattern.Strobe},
	{"chase", pattern.Chase},
	{"run", pattern.Chase},
	{"rainbow", pattern.Rainbow},
	{"wave", pattern.Wave},
	{"sea", pattern.Wave},
	{"police", pattern.Police},
	{"siren", pattern.Police},
	{"sparkle", pattern.Sparkle},
	{"twinkle", pattern.Sparkle},
	{"star", pattern.Sparkle},
}

// Suggest returns the pattern for text using Rules.
func Suggest(text string) pattern.ID {
	id, _ := Match(Rules, text)
	return id
}

// Match scans rules for the first keyword contained in text, ignoring case.
// It reports the matched keyword, or "" when Fallback was used.
func Match(rules []Rule, text string) (pattern.ID, string) {
	s := strings.ToLower(text)
	for _, r := range rules {
		if r.Keyword != "" && strings.Contains(s, r.Keyword) {
			return r.Pattern, r.Keyword
		}
	}
	return Fallback, ""
}
