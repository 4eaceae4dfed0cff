// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/acquire"
	"github.com/pdiddy/paper-digest/internal/extract"
	"github.com/pdiddy/paper-digest/internal/notify"
	"github.com/pdiddy/paper-digest/internal/ocr"
	"github.com/pdiddy/paper-digest/internal/pipeline"
	"github.com/pdiddy/paper-digest/internal/search"
	"github.com/pdiddy/paper-digest/internal/summarize"
	"github.com/pdiddy/paper-digest/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, summarize and email the latest papers once",
	Long: `Run performs a single digest pass: search arXiv for the newest papers on the
topic, download and compress them, extract their text, generate a reading
guide for each, and email it with the PDF attached.

A paper that fails at any stage is reported and skipped; the command still
exits 0. A missing recipient or invalid configuration exits 1 before any
network activity.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := newPipeline(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	_, err = p.Run(cmd.Context(), cfg, cmd.OutOrStdout())
	return err
}

// newPipeline builds the pipeline for the run and schedule commands.
var newPipeline = buildPipeline

// buildPipeline wires the production stages for cfg.
func buildPipeline(ctx context.Context, cfg types.PipelineConfig) (*pipeline.Pipeline, error) {
	ext, err := buildExtractor(ctx, cfg.Extraction)
	if err != nil {
		return nil, err
	}
	return &pipeline.Pipeline{
		Source:     &search.ArxivSource{Client: &http.Client{}, Config: cfg.Search},
		Acquirer:   acquire.New(cfg.Acquisition),
		Extractor:  ext,
		Summarizer: newSummarizer(cfg.AI),
		Notifier:   notify.New(cfg.Mail),
	}, nil
}

func buildExtractor(ctx context.Context, cfg types.ExtractionConfig) (*extract.Extractor, error) {
	engine, err := ocr.New(cfg)
	if err != nil {
		return nil, err
	}
	if cli, ok := engine.(*ocr.CLIEngine); ok && !cli.Available(ctx) {
		fmt.Fprintln(os.Stderr, "warning: tesseract not found on PATH; OCR fallback will fail")
	}
	return extract.New(engine), nil
}

func newSummarizer(cfg types.AIConfig) *summarize.Summarizer {
	return &summarize.Summarizer{
		Backend:  summarize.NewOpenAIBackend(cfg),
		MaxChars: cfg.MaxChars,
	}
}
