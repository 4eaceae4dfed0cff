// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize asks a chat model for a plain-text reading guide to a
// paper. The prompt carries the paper title and at most MaxChars characters
// of its extracted text.
package summarize

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
)

const (
	// DefaultMaxChars bounds the paper text included in the prompt.
	DefaultMaxChars = 5000

	// EmptySentinel replaces an empty model response.
	EmptySentinel = "AI could not generate the summary."
)

// Completer sends a single-turn prompt to a chat model and returns the reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// guidePromptTmpl is the reading-guide prompt. The six numbered sections are
// the structure every emailed summary follows.
var guidePromptTmpl = template.Must(template.New("guide").Parse(`You are a research assistant. I have provided the text of a research paper.
Please generate a detailed guide for reading this paper using the following structure:

1. Before You Start: Preparation & Prerequisites
2. Structured Reading Approach
3. Summarizing the Paper
4. Critical Thinking While Reading
5. Projects to implement using this Paper
6. Practical Tips

Please provide the output as plain text only, without Markdown symbols like **, *, #, or >.
Use numbered lists and simple indentation for subpoints. Make it easy to read in plain text format.

Paper Title: {{.Title}}

Paper Text (first {{.MaxChars}} characters): {{.Text}}`))

// Summarizer builds the reading-guide prompt and sends it to Backend.
type Summarizer struct {
	Backend  Completer
	MaxChars int
}

// Summarize returns the reading guide for a paper. An empty or blank reply
// yields EmptySentinel with a nil error; transport and API failures are
// returned as errors.
func (s *Summarizer) Summarize(ctx context.Context, text, title string) (string, error) {
	if s.Backend == nil {
		return "", fmt.Errorf("no summary backend configured")
	}
	prompt, err := s.Prompt(text, title)
	if err != nil {
		return "", err
	}

	reply, err := s.Backend.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generating summary for %q: %w", title, err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return EmptySentinel, nil
	}
	return reply, nil
}

// Prompt renders the prompt for a paper, truncating text to MaxChars runes.
func (s *Summarizer) Prompt(text, title string) (string, error) {
	max := s.MaxChars
	if max <= 0 {
		max = DefaultMaxChars
	}

	var buf bytes.Buffer
	err := guidePromptTmpl.Execute(&buf, struct {
		Title    string
		Text     string
		MaxChars int
	}{title, truncateRunes(text, max), max})
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return buf.String(), nil
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
