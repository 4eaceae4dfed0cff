package main

import (
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "List the newest arXiv papers on the topic",
	Long: `Search queries arXiv for the most recent submissions matching the topic and
prints those with a direct PDF link. Nothing is downloaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = cfg.MaxPapers
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		src := &search.ArxivSource{Client: &http.Client{}, Config: cfg.Search}
		out, err := search.Run(cmd.Context(), src, cfg.Topic, limit, os.Stderr)
		if err != nil {
			return err
		}
		if asJSON {
			return search.FormatJSON(out, os.Stdout)
		}
		search.FormatTable(out, os.Stdout)
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("limit", 0, "number of results (default: max_papers)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
