package main

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/acquire"
	"github.com/pdiddy/paper-digest/internal/search"
	"github.com/pdiddy/paper-digest/pkg/types"
)

var acquireCmd = &cobra.Command{
	Use:   "acquire [pdf-urls...]",
	Short: "Download and compress PDFs into the data directory",
	Long: `Acquire downloads PDFs into the data directory and recompresses them. With
URL arguments each URL is fetched directly; without arguments the newest
papers on the topic are searched for and downloaded. Nothing is summarized
or mailed.`,
	RunE: runAcquire,
}

func init() {
	acquireCmd.Flags().String("title", "", "title used to name a single downloaded PDF")

	rootCmd.AddCommand(acquireCmd)
}

func runAcquire(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	title, _ := cmd.Flags().GetString("title")
	if title != "" && len(args) != 1 {
		return fmt.Errorf("--title needs exactly one URL")
	}

	var candidates []types.Candidate
	if len(args) > 0 {
		for _, u := range args {
			c := types.Candidate{Title: title, PDFURL: u}
			if c.Title == "" {
				c.Title = titleFromURL(u)
			}
			candidates = append(candidates, c)
		}
	} else {
		src := &search.ArxivSource{Client: &http.Client{}, Config: cfg.Search}
		out, err := search.Run(cmd.Context(), src, cfg.Topic, cfg.MaxPapers, os.Stdout)
		if err != nil {
			return err
		}
		candidates = out.Candidates
	}

	result := acquire.New(cfg.Acquisition).AcquireBatch(cmd.Context(), candidates, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d paper(s) failed acquisition", result.Failed)
	}
	return nil
}

// titleFromURL names a download after the last path element of its URL.
func titleFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return strings.TrimSuffix(path.Base(u.Path), ".pdf")
}
