package crawler

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	punctRe      = regexp.MustCompile(`[^\w\s.,!?-]`)
)

// minLineLen filters residual nav and menu fragments.
const minLineLen = 20

// CleanText normalises extracted page text: whitespace runs collapse
// to single spaces, lines of minLineLen characters or fewer are
// dropped, and characters outside word characters, whitespace and
// basic punctuation are stripped.
func CleanText(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > minLineLen {
			kept = append(kept, line)
		}
	}
	text = strings.Join(kept, " ")

	text = punctRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
