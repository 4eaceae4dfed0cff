// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
)

var (
	controlChars  = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
	blankLines    = regexp.MustCompile(`\n{3,}`)
	inlineSpacing = regexp.MustCompile(`[ \t]{2,}`)
)

// Clean strips control characters (keeping tab, newline and carriage
// return), collapses three or more newlines to two, collapses runs of
// spaces and tabs to one space, and trims the result.
func Clean(text string) string {
	text = controlChars.ReplaceAllString(text, "")
	text = blankLines.ReplaceAllString(text, "\n\n")
	text = inlineSpacing.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
