package normalize

import (
	"regexp"
	"strings"
)

var spaceRun = regexp.MustCompile(`\s+`)

// CleanText replaces NBSP with plain spaces, collapses whitespace runs
// and trims the result.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, " ", " ")
	text = spaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// StripLabel removes every occurrence of a label word (e.g. "Description")
// from extracted text and cleans what remains. Labels on the source listing
// sit inside the same block as the value, so the raw block text always
// carries them.
func StripLabel(text, label string) string {
	if label != "" {
		text = strings.ReplaceAll(text, label, "")
	}
	return CleanText(text)
}
