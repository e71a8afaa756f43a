package answer

import (
	"strings"

	"sitechat/internal/domain"
)

// questionWords are filtered out before keyword matching.
var questionWords = map[string]struct{}{
	"what": {}, "is": {}, "are": {}, "the": {}, "a": {}, "an": {},
	"how": {}, "why": {}, "when": {}, "where": {}, "who": {},
}

var definitionalCues = []string{"what is", "what are", "define", "explain"}

// simpleAnswer is the crude keyword-overlap fallback used when no
// language model is reachable. Definitional questions match context
// sentences against up to three key terms from the question; other
// questions match on any question word longer than three characters.
// No match at all yields the refusal string.
func simpleAnswer(question, contextText string) string {
	questionLower := strings.ToLower(question)

	if containsAny(questionLower, definitionalCues) {
		var keyTerms []string
		for _, word := range strings.Fields(questionLower) {
			if _, skip := questionWords[word]; skip || len(word) <= 2 {
				continue
			}
			keyTerms = append(keyTerms, word)
		}
		if len(keyTerms) > 3 {
			keyTerms = keyTerms[:3]
		}
		if relevant := matchingSentences(contextText, keyTerms, 2); len(relevant) > 0 {
			return strings.Join(relevant, ". ") + "."
		}
	}

	var contentWords []string
	for _, word := range strings.Fields(questionLower) {
		if len(word) > 3 {
			contentWords = append(contentWords, word)
		}
	}
	if len(contentWords) > 0 {
		if matching := matchingSentences(contextText, contentWords, 3); len(matching) > 0 {
			return strings.Join(matching, ". ") + "."
		}
	}

	return domain.Refusal
}

// matchingSentences splits the context on periods and keeps up to max
// sentences containing any of the terms, case-insensitively.
func matchingSentences(contextText string, terms []string, max int) []string {
	if len(terms) == 0 {
		return nil
	}
	var kept []string
	for _, sentence := range strings.Split(contextText, ".") {
		lower := strings.ToLower(sentence)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				if trimmed := strings.TrimSpace(sentence); trimmed != "" {
					kept = append(kept, trimmed)
				}
				break
			}
		}
		if len(kept) == max {
			break
		}
	}
	return kept
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
