// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// maxNameRunes bounds the length of a sanitized filename.
const maxNameRunes = 100

var (
	controlWhitespace = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")
	unsafeChars       = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRun     = regexp.MustCompile(`\s+`)
)

// SanitizeFilename turns an arbitrary title into a name safe for use as a
// file stem. Line breaks and tabs become spaces, the characters <>:"/\|?*
// are removed, whitespace runs collapse to one space, and the result is
// trimmed and truncated to 100 runes. The result may be empty.
func SanitizeFilename(s string) string {
	s = controlWhitespace.Replace(s)
	s = unsafeChars.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	if r := []rune(s); len(r) > maxNameRunes {
		s = string(r[:maxNameRunes])
	}
	return s
}

// fallbackName derives a stable name from a URL for titles that sanitize to
// nothing.
func fallbackName(url string) string {
	h := sha256.Sum256([]byte(url))
	return "paper-" + hex.EncodeToString(h[:8])
}
