package parser

// classifyCategory resolves at most one service category for the event.
//
// The ignore check runs first, against the summary alone and against the
// full text: administrative entries must never classify, whatever else they
// contain. After that the priority chain in categoryRules decides.
func classifyCategory(summary, text string) *string {
	if isIgnoredText(summary) || isIgnoredText(text) {
		return nil
	}
	for _, rule := range categoryRules {
		if rule.re.MatchString(text) {
			return strRef(rule.category)
		}
	}
	return nil
}

func isIgnoredText(text string) bool {
	if text == "" {
		return false
	}
	return matchesAny(text, ignorePatterns)
}

func strRef(s string) *string { return &s }
