// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/pipeline"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run now, then again on every tick of the schedule",
	Long: `Schedule performs a digest run immediately and then keeps running, waking
every poll interval (schedule.poll_interval, default 1m) to check whether the
next tick of schedule.cron (default "@weekly") is due. Stop it with Ctrl-C or
SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		p, err := newPipeline(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "scheduling %q (poll every %s)\n", cfg.Schedule.Cron, cfg.Schedule.PollInterval)
		s := &pipeline.Scheduler{Runner: p}
		return s.Loop(cmd.Context(), cfg, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}
