// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed/atom"

	"github.com/pdiddy/paper-digest/internal/httputil"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivSource queries the arXiv export API for the newest submissions.
type ArxivSource struct {
	Client *http.Client
	Config types.SearchConfig
}

// Name returns the source identifier.
func (s *ArxivSource) Name() string { return "arxiv" }

// Search requests the limit most recent entries matching topic, sorted by
// submission date descending. Entries without a PDF link are counted in
// Output.Dropped and omitted.
func (s *ArxivSource) Search(ctx context.Context, topic string, limit int) (Output, error) {
	q := buildArxivQuery(topic)
	if q == "" {
		return Output{}, fmt.Errorf("empty arXiv query")
	}
	if limit <= 0 {
		limit = 1
	}

	u := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		arxivAPIBase, q, limit)

	if s.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Config.Timeout)
		defer cancel()
	}

	resp, err := httputil.Get(ctx, s.Client, u, s.Config.UserAgent, "application/atom+xml")
	if err != nil {
		return Output{}, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	feed, err := (&atom.Parser{}).Parse(resp.Body)
	if err != nil {
		return Output{}, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var out Output
	for _, entry := range feed.Entries {
		c, ok := candidateFromEntry(entry)
		if !ok {
			out.Dropped++
			continue
		}
		out.Candidates = append(out.Candidates, c)
	}
	return out, nil
}

// buildArxivQuery joins the topic's terms with "+", escaping each term.
func buildArxivQuery(topic string) string {
	terms := strings.Fields(topic)
	for i, t := range terms {
		terms[i] = url.QueryEscape(t)
	}
	return strings.Join(terms, "+")
}

func candidateFromEntry(e *atom.Entry) (types.Candidate, bool) {
	pdf := pdfLink(e.Links)
	if pdf == "" {
		return types.Candidate{}, false
	}

	c := types.Candidate{
		Title:      strings.TrimSpace(e.Title),
		PDFURL:     pdf,
		Identifier: strings.TrimSpace(e.ID),
	}
	for _, a := range e.Authors {
		if a != nil {
			c.Authors = append(c.Authors, strings.TrimSpace(a.Name))
		}
	}
	if e.PublishedParsed != nil {
		c.Published = *e.PublishedParsed
	}
	return c, true
}

// pdfLink returns the href of the link titled "pdf", falling back to the
// first link typed application/pdf.
func pdfLink(links []*atom.Link) string {
	var typed string
	for _, l := range links {
		if l == nil || l.Href == "" {
			continue
		}
		if l.Title == "pdf" {
			return l.Href
		}
		if typed == "" && l.Type == "application/pdf" {
			typed = l.Href
		}
	}
	return typed
}
