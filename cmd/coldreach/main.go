// Package main provides the entry point for the coldreach campaign CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coldreach",
	Short: "Cold outreach campaign automation",
	Long:  "coldreach researches target companies, generates personalized outreach emails behind a safety gate, sends them over Gmail, schedules timed follow-ups, and tracks template performance per company.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
