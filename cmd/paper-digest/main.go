// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-digest CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-digest/internal/config"
	"github.com/pdiddy/paper-digest/internal/secrets"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the paper-digest CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-digest",
	Short: "Email reading guides for the latest arXiv papers on a topic",
	Long: `paper-digest finds the most recent arXiv submissions on a topic, downloads
and compresses their PDFs, extracts the text (falling back to OCR for scanned
papers), asks an LLM for a structured reading guide, and emails the guide with
the PDF attached.

Use "run" for a single pass or "schedule" to repeat on a cron cadence. The
remaining subcommands run one stage on its own.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(secrets.DefaultDir)
		if err != nil {
			return err
		}
		if len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", secrets.Names(s))
		}
		config.Setup(viper.GetViper(), s)
		viper.SetDefault(config.KeyUserAgent, "paper-digest/"+version)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./paper-digest.yaml or ~/.config/paper-digest/paper-digest.yaml)")
	pf.String("env-file", ".env", "dotenv file loaded into the environment at startup")
	pf.String("topic", "", "search topic (default \"LLM\")")
	pf.String("recipient", "", "address that receives the summaries")
	pf.Int("max-papers", 0, "number of most recent papers to process (default 1)")
	pf.String("data-dir", "", "directory for downloaded PDFs (default \"data\")")

	bindFlags(viper.GetViper())
}

// bindFlags binds the persistent flags to their configuration keys.
func bindFlags(v *viper.Viper) {
	pf := rootCmd.PersistentFlags()
	for key, flag := range map[string]string{
		config.KeyTopic:     "topic",
		config.KeyRecipient: "recipient",
		config.KeyMaxPapers: "max-papers",
		config.KeyDataDir:   "data-dir",
	} {
		_ = v.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	envFile, _ := rootCmd.PersistentFlags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-digest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-digest"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig builds the pipeline configuration from flags, environment,
// config file and secrets.
func loadConfig() (types.PipelineConfig, error) {
	return config.Load(viper.GetViper())
}

// execute runs the CLI with args and returns the process exit code.
func execute(ctx context.Context, args []string) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
