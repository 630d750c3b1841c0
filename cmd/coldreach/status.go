package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/akm592/coldreach/internal/types"
)

var statusCommand = &cobra.Command{
	Use:   "status",
	Short: "Show contact counts per campaign state",
	RunE:  runStatusCmd,
}

var statusFlags commonFlags

// statusOrder fixes the display order of lifecycle states.
var statusOrder = []types.ContactStatus{
	types.StatusPending,
	types.StatusSent,
	types.StatusSentManual,
	types.StatusPendingReview,
	types.StatusFailed,
	types.StatusDiscarded,
}

func init() {
	addCommonFlags(statusCommand, &statusFlags)
	rootCmd.AddCommand(statusCommand)
}

func runStatusCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, &statusFlags)
	if err != nil {
		return err
	}

	a, err := buildApp(cmd.Context(), cfg, false)
	if err != nil {
		return err
	}
	defer a.Close()

	counts, err := a.runner.StatusCounts(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	total := 0
	for _, s := range statusOrder {
		if counts[s] == 0 {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\n", s, counts[s])
		total += counts[s]
	}
	_, _ = fmt.Fprintf(w, "Total\t%d\n", total)
	return w.Flush()
}
