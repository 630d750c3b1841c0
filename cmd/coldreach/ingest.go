package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var ingestCommand = &cobra.Command{
	Use:   "ingest [csv-file]",
	Short: "Load contacts from a CSV file into the campaign table",
	Long: `Upserts CSV rows into the contact table keyed by normalized email.
Re-ingesting an updated CSV preserves campaign progress on rows that
already exist; rows without a usable email address are reported and
skipped. The CSV path can also come from contacts_csv in the config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngestCmd,
}

var ingestFlags commonFlags

func init() {
	addCommonFlags(ingestCommand, &ingestFlags)
	rootCmd.AddCommand(ingestCommand)
}

func runIngestCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, &ingestFlags)
	if err != nil {
		return err
	}

	csvPath := cfg.ContactsCSV
	if len(args) == 1 {
		csvPath = args[0]
	}
	if csvPath == "" {
		return fmt.Errorf("a CSV path is required (argument or contacts_csv in the config file)")
	}

	a, err := buildApp(cmd.Context(), cfg, false)
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.runner.IngestCSV(cmd.Context(), csvPath)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Ingested %d contacts from %s\n", n, csvPath)
	return nil
}
