// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <pdf>",
	Short: "Extract a local PDF and print its reading guide",
	Long: `Summarize extracts the text of a local PDF (text layer first, OCR second)
and prints the reading guide produced by the LLM. With --text-only the cleaned
text is printed instead and no LLM call is made. Nothing is mailed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		pdfPath := args[0]
		if _, err := os.Stat(pdfPath); err != nil {
			return fmt.Errorf("reading %s: %w", pdfPath, err)
		}

		ext, err := buildExtractor(cmd.Context(), cfg.Extraction)
		if err != nil {
			return err
		}
		result := ext.Extract(cmd.Context(), pdfPath, os.Stderr)

		if textOnly, _ := cmd.Flags().GetBool("text-only"); textOnly {
			fmt.Fprintln(os.Stdout, result.Text)
			return nil
		}

		title := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
		summary, err := newSummarizer(cfg.AI).Summarize(cmd.Context(), result.Text, title)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, summary)
		return nil
	},
}

func init() {
	summarizeCmd.Flags().Bool("text-only", false, "print the extracted text instead of the summary")

	rootCmd.AddCommand(summarizeCmd)
}
