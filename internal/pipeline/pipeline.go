// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the digest end to end: search once, acquire every
// candidate, then extract, summarize and mail each acquired paper in turn.
// A failure on one paper is recorded and the run moves on to the next.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/pdiddy/paper-digest/internal/acquire"
	"github.com/pdiddy/paper-digest/internal/search"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// Stage names used in Failure records.
const (
	StageSearch    = "search"
	StageAcquire   = "acquire"
	StageSummarize = "summarize"
	StageNotify    = "notify"
)

// SubjectPrefix starts the subject line of every digest email.
const SubjectPrefix = "Research Paper Summary: "

// ErrMissingRecipient is returned before any network activity when no
// recipient address is configured.
var ErrMissingRecipient = errors.New("recipient email not set (RECEIVER_EMAIL)")

// Acquirer downloads candidates into local papers.
type Acquirer interface {
	AcquireBatch(ctx context.Context, candidates []types.Candidate, w io.Writer) acquire.BatchResult
}

// Extractor returns the cleaned text of a PDF, or a sentinel when none.
type Extractor interface {
	Extract(ctx context.Context, pdfPath string, w io.Writer) types.Extraction
}

// Summarizer produces the reading guide for a paper's text.
type Summarizer interface {
	Summarize(ctx context.Context, text, title string) (string, error)
}

// Notifier delivers a message.
type Notifier interface {
	Notify(ctx context.Context, m types.Message, w io.Writer) error
}

// Pipeline wires the stages of one digest run.
type Pipeline struct {
	Source     search.Source
	Acquirer   Acquirer
	Extractor  Extractor
	Summarizer Summarizer
	Notifier   Notifier
}

// Failure records one item that did not make it through a stage.
type Failure struct {
	Stage string
	Paper string
	Err   error
}

func (f Failure) Error() string {
	if f.Paper == "" {
		return fmt.Sprintf("%s: %v", f.Stage, f.Err)
	}
	return fmt.Sprintf("%s %q: %v", f.Stage, f.Paper, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// Report summarises a run.
type Report struct {
	RunID      string
	Candidates int
	Acquired   int
	Processed  int
	Failures   []Failure
}

// NoWork reports whether the run found nothing to process.
func (r Report) NoWork() bool {
	return r.Acquired == 0
}

// Run performs one digest run. The only error it returns is
// ErrMissingRecipient (or a cancelled context); everything else is recorded
// in the Report.
func (p *Pipeline) Run(ctx context.Context, cfg types.PipelineConfig, w io.Writer) (Report, error) {
	report := Report{RunID: uuid.NewString()}

	if strings.TrimSpace(cfg.Recipient) == "" {
		fmt.Fprintf(w, "failed:  run %s (%v)\n", report.RunID, ErrMissingRecipient)
		return report, ErrMissingRecipient
	}

	fmt.Fprintf(w, "run %s: fetching %d paper(s) on %q\n", report.RunID, cfg.MaxPapers, cfg.Topic)

	out, err := search.Run(ctx, p.Source, cfg.Topic, cfg.MaxPapers, w)
	if err != nil {
		fmt.Fprintf(w, "failed:  %v\n", err)
		report.Failures = append(report.Failures, Failure{Stage: StageSearch, Err: err})
	}
	report.Candidates = len(out.Candidates)

	var papers []*types.Paper
	if len(out.Candidates) > 0 {
		batch := p.Acquirer.AcquireBatch(ctx, out.Candidates, w)
		papers = batch.Papers
		for _, ce := range batch.Errors {
			report.Failures = append(report.Failures, Failure{Stage: StageAcquire, Paper: ce.Candidate.Title, Err: ce.Err})
		}
	}
	report.Acquired = len(papers)

	if len(papers) == 0 {
		fmt.Fprintln(w, "no new papers to process")
		p.finish(report, w)
		return report, ctx.Err()
	}

	for _, paper := range papers {
		if ctx.Err() != nil {
			break
		}
		if f := p.process(ctx, cfg, paper, w); f != nil {
			report.Failures = append(report.Failures, *f)
			continue
		}
		report.Processed++
	}

	p.finish(report, w)
	return report, ctx.Err()
}

// process takes one paper through extract, summarize and notify.
func (p *Pipeline) process(ctx context.Context, cfg types.PipelineConfig, paper *types.Paper, w io.Writer) *Failure {
	fmt.Fprintf(w, "\nprocessing: %s\n", paper.Name)

	ext := p.Extractor.Extract(ctx, paper.PDFPath, w)

	summary, err := p.Summarizer.Summarize(ctx, ext.Text, paper.Name)
	if err != nil {
		fmt.Fprintf(w, "failed:  summary for %s (%v)\n", paper.Name, err)
		return &Failure{Stage: StageSummarize, Paper: paper.Name, Err: err}
	}

	msg := ComposeMessage(paper, summary, cfg.Recipient)
	if err := p.Notifier.Notify(ctx, msg, w); err != nil {
		return &Failure{Stage: StageNotify, Paper: paper.Name, Err: err}
	}
	return nil
}

func (p *Pipeline) finish(r Report, w io.Writer) {
	fmt.Fprintf(w, "\ndone: %d paper(s) processed, %d failed (run %s)\n", r.Processed, len(r.Failures), r.RunID)
}

// ComposeMessage builds the digest email for a paper.
func ComposeMessage(paper *types.Paper, summary, to string) types.Message {
	rule := strings.Repeat("=", 80)
	var b strings.Builder
	b.WriteString("Hello,\n\n")
	fmt.Fprintf(&b, "Here is your weekly research paper summary for '%s'.\n\n", paper.Name)
	b.WriteString("Best regards,\n")
	b.WriteString("Your Research Assistant\n\n")
	b.WriteString(rule + "\n")
	b.WriteString("SUMMARY\n")
	b.WriteString(rule + "\n\n")
	b.WriteString(summary)

	return types.Message{
		Subject:        SubjectPrefix + paper.Name,
		Body:           b.String(),
		To:             to,
		AttachmentPath: paper.PDFPath,
	}
}
