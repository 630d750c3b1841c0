// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/akm592/coldreach/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintContactOutcome outputs one contact's result after processing.
func (p *Printer) PrintContactOutcome(c *types.Contact, detail string) {
	if c == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", c.Company))
	sb.WriteString(fmt.Sprintf("To:       %s\n", c.RecipientEmail))
	sb.WriteString(fmt.Sprintf("Status:   %s\n", c.Status))
	if c.TemplateUsed != "" {
		sb.WriteString(fmt.Sprintf("Template: %s\n", c.TemplateUsed))
	}
	if c.ResumeType != "" {
		sb.WriteString(fmt.Sprintf("Resume:   %s\n", c.ResumeType))
	}
	if c.Response != types.ResponseNone {
		sb.WriteString(fmt.Sprintf("Response: %s\n", c.Response))
	}
	if c.FailureReason != "" {
		sb.WriteString(fmt.Sprintf("Failure:  %s\n", c.FailureReason))
	}
	if detail != "" {
		sb.WriteString(detail + "\n")
	}

	p.printBox("CONTACT OUTCOME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintInsights outputs a human-readable summary of the ranked insight
// report for a company.
func (p *Printer) PrintInsights(company string, report *types.InsightReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:    %s\n", company))
	sb.WriteString(fmt.Sprintf("Urgency:    %s\n", report.Actionable.HiringUrgency))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", report.ConfidenceScore))
	if report.Actionable.ReferralPathway != "" {
		sb.WriteString(fmt.Sprintf("Referral:   %s\n", report.Actionable.ReferralPathway))
	}

	if len(report.PrimaryInsights) > 0 {
		sb.WriteString("\nTop insights:\n")
		count := min(len(report.PrimaryInsights), maxItemsToShow)
		for i := 0; i < count; i++ {
			frag := report.PrimaryInsights[i]
			sb.WriteString(fmt.Sprintf("  %d. [%d] %s\n", i+1, frag.PersonalizationRelevance, frag.Data))
		}
	}

	p.printBox("COMPANY INSIGHTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PassSummary aggregates per-contact outcomes over one pass.
type PassSummary struct {
	Processed int
	Sent      int
	Held      int
	Failed    int
	Skipped   int
	Replies   int
	FollowUps int
}

// PrintPassSummary outputs the totals for a completed pass.
func (p *Printer) PrintPassSummary(kind string, s PassSummary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Processed:  %d\n", s.Processed))
	if s.Sent > 0 || kind == "OUTREACH" {
		sb.WriteString(fmt.Sprintf("Sent:       %d\n", s.Sent))
	}
	if s.FollowUps > 0 || kind == "FOLLOW-UP" {
		sb.WriteString(fmt.Sprintf("Follow-ups: %d\n", s.FollowUps))
	}
	if s.Held > 0 {
		sb.WriteString(fmt.Sprintf("Held:       %d\n", s.Held))
	}
	if s.Replies > 0 {
		sb.WriteString(fmt.Sprintf("Replies:    %d\n", s.Replies))
	}
	sb.WriteString(fmt.Sprintf("Failed:     %d\n", s.Failed))
	sb.WriteString(fmt.Sprintf("Skipped:    %d", s.Skipped))

	p.printBox(kind+" PASS SUMMARY", sb.String())
}
