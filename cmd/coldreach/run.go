package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/akm592/coldreach/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run one outreach pass over the contact table",
	Long: `Processes every Pending and Failed contact end-to-end: company research
(cached between runs), insight ranking, template selection, email
generation, the safety gate, and the Gmail send. Rejected drafts are held
in Pending Review for the review command; failures are retried on the next
run. With --with-followups, a follow-up pass over sent contacts runs after
the outreach pass completes.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runOutreachCmd,
}

var (
	runFlags         commonFlags
	runWithFollowups bool
)

func init() {
	addCommonFlags(runCommand, &runFlags)
	runCommand.Flags().BoolVar(&runWithFollowups, "with-followups", false, "Run a follow-up pass after the outreach pass")
	rootCmd.AddCommand(runCommand)
}

func runOutreachCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, &runFlags)
	if err != nil {
		return err
	}
	if cfg.SearchAPIKey == "" {
		return fmt.Errorf("TAVILY_API_KEY environment variable or --search-api-key flag is required")
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

	return executePasses(ctx, a.runner, runWithFollowups)
}

// executePasses runs the outreach pass and, when requested, chains the
// follow-up pass behind it in the same invocation.
func executePasses(ctx context.Context, r *pipeline.Runner, withFollowups bool) error {
	if _, err := r.OutreachPass(ctx); err != nil {
		return fmt.Errorf("outreach pass aborted: %w", err)
	}
	if !withFollowups {
		return nil
	}
	if _, err := r.FollowUpPass(ctx); err != nil {
		return fmt.Errorf("follow-up pass aborted: %w", err)
	}
	return nil
}
