// Package guard validates user-facing text before display. Two rulebooks
// share one checking pipeline: a strict short-form book for templated
// nudge copy and a looser long-form book for conversational AI replies.
// Rulebooks are plain data so tests and locales can swap them without
// touching validation logic.
package guard

import "regexp"

// Rules is one validation rulebook.
type Rules struct {
	ForbiddenPhrases []string
	MaxWords         int
	MaxChars         int
	ForbidLeadingI   bool
}

// nudgeRules governs short templated nudge copy shown in the app.
var nudgeRules = Rules{
	MaxWords:       12,
	MaxChars:       120,
	ForbidLeadingI: true,
	ForbiddenPhrases: []string{
		"you should",
		"you need to",
		"you must",
		"try to",
		"don't forget",
		"make sure",
		"remember to",
		"great job",
		"well done",
		"keep it up",
		"proud of you",
		"don't worry",
		"as an ai",
		"language model",
		"i'm here to help",
		"happy to help",
	},
}

// aiRules governs longer conversational AI responses. It tolerates
// first-person voice, so there is no leading-pronoun rule, but it bans the
// coaching and acknowledgment phrases that make AI replies sound canned.
var aiRules = Rules{
	MaxWords:       60,
	MaxChars:       600,
	ForbidLeadingI: false,
	ForbiddenPhrases: []string{
		"you should",
		"you need to",
		"you must",
		"try to",
		"consider",
		"great job",
		"keep it up",
		"i understand",
		"i see",
		"i notice",
		"don't worry",
		"amazing",
		"as an ai",
		"language model",
	},
}

var (
	// listMarkupRe matches numbered or bulleted list lines.
	listMarkupRe = regexp.MustCompile(`(?m)^\s*(?:\d+[.)]\s|[-*•]\s)`)
	// repeatedPeriodRe collapses runs of periods left over after
	// punctuation replacement.
	repeatedPeriodRe = regexp.MustCompile(`\.(\s*\.)+`)
)

// isEmoji reports whether a rune falls in the Unicode emoji ranges the
// validators refuse to auto-correct.
func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF: // Emoticons, symbols, supplemental
		return true
	case r >= 0x2600 && r <= 0x27BF: // Misc symbols and dingbats
		return true
	case r >= 0x2B00 && r <= 0x2BFF: // Stars and arrows
		return true
	case r == 0xFE0F: // Variation selector
		return true
	}
	return false
}
