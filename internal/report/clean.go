package report

import (
	"strings"

	"github.com/forPelevin/gomoji"
)

// Uncategorized labels rows whose category is absent or reduces to nothing
// after emoji stripping.
const Uncategorized = "(uncategorized)"

// Unnamed labels payment methods in the same situation.
const Unnamed = "(unnamed)"

// CleanName strips emoji from a label and collapses the whitespace they
// leave behind. Money Manager encourages emoji-prefixed category names,
// which read poorly in tables and chart legends.
func CleanName(s string) string {
	s = gomoji.RemoveEmojis(s)
	return strings.Join(strings.Fields(s), " ")
}

func categoryName(s string) string {
	if c := CleanName(s); c != "" {
		return c
	}
	return Uncategorized
}

func methodName(s string) string {
	if c := CleanName(s); c != "" {
		return c
	}
	return Unnamed
}
