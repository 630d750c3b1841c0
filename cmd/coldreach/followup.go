package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var followupCommand = &cobra.Command{
	Use:   "followup",
	Short: "Run one follow-up pass over sent contacts",
	Long: `Checks every sent contact for an unread reply, records its
classification, and sends at most one overdue follow-up stage per contact.
A human reply halts the contact's sequence permanently; auto-replies are
recorded and the schedule continues.`,
	RunE: runFollowUpCmd,
}

var followupFlags commonFlags

func init() {
	addCommonFlags(followupCommand, &followupFlags)
	rootCmd.AddCommand(followupCommand)
}

func runFollowUpCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, &followupFlags)
	if err != nil {
		return err
	}
	if cfg.ResumeAIML == "" || cfg.ResumeFullstack == "" {
		return fmt.Errorf("both resume paths are required (set resume_ai_ml and resume_fullstack in the config file)")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.runner.FollowUpPass(ctx); err != nil {
		return fmt.Errorf("follow-up pass aborted: %w", err)
	}
	return nil
}
