package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akm592/coldreach/internal/types"
)

func TestPrintContactOutcome(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	c := &types.Contact{
		Company:        "Acme",
		RecipientEmail: "jordan@acme.example",
		Status:         types.StatusSent,
		TemplateUsed:   "project_showcase",
		ResumeType:     "AI/ML",
	}
	p.PrintContactOutcome(c, "")

	out := buf.String()
	assert.Contains(t, out, "CONTACT OUTCOME")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "jordan@acme.example")
	assert.Contains(t, out, "Sent")
	assert.Contains(t, out, "project_showcase")
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "└")
}

func TestPrintContactOutcomeNil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintContactOutcome(nil, "")
	assert.Empty(t, buf.String())
}

func TestPrintInsightsTruncatesList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := &types.InsightReport{
		Actionable:      types.ActionableIntelligence{HiringUrgency: types.UrgencyHigh},
		ConfidenceScore: 0.9,
	}
	for i := 0; i < 8; i++ {
		report.PrimaryInsights = append(report.PrimaryInsights, types.Fragment{
			Data: "insight", PersonalizationRelevance: 5,
		})
	}
	p.PrintInsights("Acme", report)

	out := buf.String()
	assert.Contains(t, out, "High")
	assert.Equal(t, maxItemsToShow, strings.Count(out, "[5] insight"))
}

func TestPrintPassSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPassSummary("OUTREACH", PassSummary{Processed: 5, Sent: 3, Held: 1, Failed: 1})

	out := buf.String()
	assert.Contains(t, out, "OUTREACH PASS SUMMARY")
	assert.Contains(t, out, "Processed:  5")
	assert.Contains(t, out, "Sent:       3")
	assert.Contains(t, out, "Held:       1")
}

func TestBoxLinesTruncated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	c := &types.Contact{
		Company:        strings.Repeat("VeryLongCompanyName", 10),
		RecipientEmail: "a@b.co",
		Status:         types.StatusPending,
	}
	p.PrintContactOutcome(c, "")

	for _, line := range strings.Split(buf.String(), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth+2)
	}
}
