package guard

import (
	"fmt"
	"strings"

	"github.com/centsible/centsible/internal/model"
)

// ValidateMessage checks short templated nudge copy against the
// short-form rulebook.
func ValidateMessage(text string) model.ValidationResult {
	return validate(text, nudgeRules)
}

// ValidateAIResponse checks a conversational AI reply against the
// long-form rulebook.
func ValidateAIResponse(text string) model.ValidationResult {
	return validate(text, aiRules)
}

// validate runs every rule, accumulating all violations rather than
// short-circuiting on the first. It never fails on any input; an empty
// string simply has zero violations. Only emoji and list markup set
// ShouldBlock, since those cannot be safely auto-corrected; everything
// else is repaired in Sanitized.
func validate(text string, rules Rules) model.ValidationResult {
	violations := []string{}
	shouldBlock := false

	words := strings.Fields(text)
	if len(words) > rules.MaxWords {
		violations = append(violations, fmt.Sprintf("too many words: %d > %d", len(words), rules.MaxWords))
	}
	if len(text) > rules.MaxChars {
		violations = append(violations, fmt.Sprintf("too many characters: %d > %d", len(text), rules.MaxChars))
	}

	lower := strings.ToLower(text)
	for _, phrase := range rules.ForbiddenPhrases {
		if strings.Contains(lower, phrase) {
			violations = append(violations, fmt.Sprintf("forbidden phrase: %q", phrase))
		}
	}

	if strings.Contains(text, "!") {
		violations = append(violations, "contains exclamation mark")
	}
	if strings.Contains(text, "?") {
		violations = append(violations, "contains question mark")
	}
	if strings.ContainsFunc(text, isEmoji) {
		violations = append(violations, "contains emoji")
		shouldBlock = true
	}
	if listMarkupRe.MatchString(text) {
		violations = append(violations, "contains list markup")
		shouldBlock = true
	}
	if rules.ForbidLeadingI && startsWithI(words) {
		violations = append(violations, `Starts with "I"`)
	}

	return model.ValidationResult{
		IsValid:     len(violations) == 0,
		Violations:  violations,
		ShouldBlock: shouldBlock,
		Sanitized:   sanitize(text, rules, len(violations) > 0),
	}
}

// startsWithI reports whether the first word is the pronoun "I", including
// contractions like "I've" or "I'm".
func startsWithI(words []string) bool {
	if len(words) == 0 {
		return false
	}
	first := words[0]
	return first == "I" || strings.HasPrefix(first, "I'")
}

// sanitize repairs the correctable violation classes: terminal punctuation
// swapped for periods, word count truncated to the ceiling, redundant
// periods collapsed, and a trailing period enforced when any violation
// occurred.
func sanitize(text string, rules Rules, hadViolation bool) string {
	s := strings.NewReplacer("!", ".", "?", ".").Replace(text)

	words := strings.Fields(s)
	if len(words) > rules.MaxWords {
		words = words[:rules.MaxWords]
		s = strings.Join(words, " ")
	}

	s = repeatedPeriodRe.ReplaceAllString(s, ".")
	s = strings.TrimSpace(s)

	if hadViolation && s != "" && !strings.HasSuffix(s, ".") {
		s += "."
	}

	return s
}
