// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/notify"
	"github.com/pdiddy/paper-digest/pkg/types"
)

const testMailBody = `Hello,

This is a test email. If you received this, mail delivery is working.

Best regards,
Your Research Assistant
`

var mailTestCmd = &cobra.Command{
	Use:   "mail-test",
	Short: "Send a test email with the configured SMTP account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		attach, _ := cmd.Flags().GetString("attach")
		return notify.New(cfg.Mail).Notify(cmd.Context(), types.Message{
			Subject:        "Test: Research Paper Summary",
			Body:           testMailBody,
			To:             cfg.Recipient,
			AttachmentPath: attach,
		}, os.Stdout)
	},
}

func init() {
	mailTestCmd.Flags().String("attach", "", "file to attach")

	rootCmd.AddCommand(mailTestCmd)
}
