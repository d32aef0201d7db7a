package service

import (
	"strings"

	"github.com/brandongraves08/packstack/internal/core/ports"
)

// RefusalMessage replaces any text the filter flags.
const RefusalMessage = "I can't help with that request. Let's keep the conversation focused on trip planning and outdoor gear."

// defaultBlockedPatterns is the fixed pattern set: terms suggesting illegal
// activity or requests for sensitive personal data. Matching is
// case-insensitive substring.
var defaultBlockedPatterns = []string{
	"how to make a weapon",
	"how to make explosives",
	"buy illegal drugs",
	"steal a",
	"social security number",
	"credit card number",
	"bank account number",
	"password for",
	"poach",
	"hunt endangered",
}

// PatternContentFilter screens text against a fixed blocklist.
type PatternContentFilter struct {
	patterns []string
}

// NewPatternContentFilter creates a filter with the default pattern set.
func NewPatternContentFilter() *PatternContentFilter {
	return &PatternContentFilter{patterns: defaultBlockedPatterns}
}

// NewPatternContentFilterWith creates a filter with a custom pattern set.
func NewPatternContentFilterWith(patterns []string) *PatternContentFilter {
	return &PatternContentFilter{patterns: patterns}
}

var _ ports.ContentFilter = (*PatternContentFilter)(nil)

// Check reports whether text matches a blocked pattern. Flagged text is
// replaced with the fixed refusal message; clean text passes through intact.
func (f *PatternContentFilter) Check(text string) (bool, string) {
	lowered := strings.ToLower(text)
	for _, pattern := range f.patterns {
		if strings.Contains(lowered, pattern) {
			return true, RefusalMessage
		}
	}
	return false, text
}
