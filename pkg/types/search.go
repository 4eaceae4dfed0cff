// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-digest pipeline:
// search candidates, downloaded papers, extraction results, outgoing
// messages, and the configuration value handed to every stage.
package types

import "time"

// Candidate is a search result that has not been downloaded yet. Only Title
// and PDFURL are needed by acquisition; the remaining fields are metadata
// for display.
type Candidate struct {
	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// PDFURL is the direct link to the PDF variant of the paper.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// Identifier is the source's ID for the entry (e.g. the arXiv abs URL).
	Identifier string `json:"identifier,omitempty" yaml:"identifier,omitempty"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Published is the submission date reported by the source.
	Published time.Time `json:"published,omitempty" yaml:"published,omitempty"`
}
