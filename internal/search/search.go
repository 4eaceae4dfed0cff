// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries a paper source for the most recent submissions on
// a topic and returns candidates that carry a direct PDF link.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Source searches a single paper index. ArxivSource is the production
// implementation; tests substitute fakes.
type Source interface {
	Name() string
	Search(ctx context.Context, topic string, limit int) (Output, error)
}

// Output holds the usable candidates and the number of entries dropped
// because they carried no PDF link.
type Output struct {
	Candidates []types.Candidate
	Dropped    int
}

// Run searches src and prints a one-line summary to w. Dropped entries are
// reported on their own line.
func Run(ctx context.Context, src Source, topic string, limit int, w io.Writer) (Output, error) {
	fmt.Fprintf(w, "searching: %s for %q (limit %d)\n", src.Name(), topic, limit)
	out, err := src.Search(ctx, topic, limit)
	if err != nil {
		return Output{}, fmt.Errorf("searching %s: %w", src.Name(), err)
	}
	if out.Dropped > 0 {
		fmt.Fprintf(w, "warning: %d entr%s without a PDF link dropped\n", out.Dropped, plural(out.Dropped, "y", "ies"))
	}
	fmt.Fprintf(w, "found:   %d candidate(s)\n", len(out.Candidates))
	return out, nil
}

// FormatTable writes candidates as a human-readable table to w.
func FormatTable(out Output, w io.Writer) {
	if len(out.Candidates) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-10s  %s\n",
		"Rank", "Title", "Authors", "Published", "PDF")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, c := range out.Candidates {
		published := ""
		if !c.Published.IsZero() {
			published = c.Published.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-10s  %s\n",
			i+1, truncate(c.Title, 60), formatAuthors(c.Authors), published, c.PDFURL)
	}

	fmt.Fprintf(w, "\n%d results", len(out.Candidates))
	if out.Dropped > 0 {
		fmt.Fprintf(w, " (%d without PDF link dropped)", out.Dropped)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes candidates as indented JSON to w.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	candidates := out.Candidates
	if candidates == nil {
		candidates = []types.Candidate{}
	}
	return enc.Encode(candidates)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
