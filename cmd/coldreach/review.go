package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var reviewCommand = &cobra.Command{
	Use:   "review",
	Short: "Resolve contacts held in Pending Review",
	Long: `Contacts land in Pending Review when the safety gate rejects their
generated email. approve sends the held content (optionally edited via
--subject/--body) and marks the contact Sent (Manual); reject discards it
permanently.`,
}

var approveCommand = &cobra.Command{
	Use:   "approve <email>",
	Short: "Send a held email, optionally with edits",
	Args:  cobra.ExactArgs(1),
	RunE:  runApproveCmd,
}

var rejectCommand = &cobra.Command{
	Use:   "reject <email>",
	Short: "Discard a held email permanently",
	Args:  cobra.ExactArgs(1),
	RunE:  runRejectCmd,
}

var (
	reviewFlags     commonFlags
	approveFlags    commonFlags
	overrideSubject string
	overrideBody    string
)

func init() {
	addCommonFlags(approveCommand, &approveFlags)
	approveCommand.Flags().StringVar(&overrideSubject, "subject", "", "Replace the held subject before sending")
	approveCommand.Flags().StringVar(&overrideBody, "body", "", "Replace the held body before sending")
	addCommonFlags(rejectCommand, &reviewFlags)

	reviewCommand.AddCommand(approveCommand)
	reviewCommand.AddCommand(rejectCommand)
	rootCmd.AddCommand(reviewCommand)
}

func runApproveCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, &approveFlags)
	if err != nil {
		return err
	}

	a, err := buildApp(cmd.Context(), cfg, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.runner.ApproveReview(cmd.Context(), args[0], overrideSubject, overrideBody); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Approved and sent to %s\n", args[0])
	return nil
}

func runRejectCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, &reviewFlags)
	if err != nil {
		return err
	}

	a, err := buildApp(cmd.Context(), cfg, false)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.runner.RejectReview(cmd.Context(), args[0]); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Discarded held email for %s\n", args[0])
	return nil
}
