// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls readable text out of a PDF. Extraction is an ordered
// list of stages: the first stage that yields non-blank text wins, and the
// result is cleaned once before it is returned. When every stage comes back
// empty the caller receives NoTextSentinel instead of an error.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/paper-digest/internal/ocr"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// NoTextSentinel replaces the text of a PDF from which nothing readable
// could be extracted.
const NoTextSentinel = "No readable text could be extracted from this PDF."

// ErrNoContent is returned by a stage that ran cleanly but found no text.
var ErrNoContent = errors.New("no text content")

// Stage is one extraction strategy.
type Stage interface {
	Name() string
	Extract(ctx context.Context, pdfPath string) (string, error)
}

// Extractor runs its stages in order until one yields text.
type Extractor struct {
	Stages []Stage
}

// New returns the default two-stage extractor: the PDF text layer, then
// page rendering followed by OCR with engine.
func New(engine ocr.Engine) *Extractor {
	return &Extractor{Stages: []Stage{
		&TextLayerStage{},
		&OCRStage{Engine: engine},
	}}
}

// Extract returns the cleaned text of the PDF at pdfPath. Stage errors are
// written to w as warnings and the next stage is tried; they are never
// returned.
func (e *Extractor) Extract(ctx context.Context, pdfPath string, w io.Writer) types.Extraction {
	for i, s := range e.Stages {
		if ctx.Err() != nil {
			break
		}
		text, err := runStage(ctx, s, pdfPath)
		if err == nil && strings.TrimSpace(text) == "" {
			err = ErrNoContent
		}
		if err != nil {
			if i+1 < len(e.Stages) {
				fmt.Fprintf(w, "warning: %s stage found no text in %s (%v), trying %s\n",
					s.Name(), pdfPath, err, e.Stages[i+1].Name())
			} else {
				fmt.Fprintf(w, "warning: %s stage found no text in %s (%v)\n", s.Name(), pdfPath, err)
			}
			continue
		}

		cleaned := Clean(text)
		if cleaned == "" {
			continue
		}
		fmt.Fprintf(w, "extracted: %s (%s, %d chars)\n", pdfPath, s.Name(), len([]rune(cleaned)))
		return types.Extraction{Text: cleaned, Stage: s.Name()}
	}
	return types.Extraction{Text: NoTextSentinel}
}

// runStage calls s.Extract, converting a panic inside the PDF libraries into
// an error.
func runStage(ctx context.Context, s Stage, pdfPath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%s stage panicked: %v", s.Name(), r)
		}
	}()
	return s.Extract(ctx, pdfPath)
}
