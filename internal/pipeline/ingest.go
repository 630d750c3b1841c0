package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/akm592/coldreach/internal/contacts"
	"github.com/akm592/coldreach/internal/types"
)

// IngestCSV loads contacts from a CSV file and upserts them into the
// store. Rows merge into existing contacts by normalized email with
// last-write-wins; campaign state on existing rows is preserved when the
// incoming row carries none.
func (r *Runner) IngestCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("ingest open: %w", err)
	}
	defer func() { _ = f.Close() }()

	incoming, err := contacts.ParseCSV(f)
	if err != nil {
		return 0, fmt.Errorf("ingest parse: %w", err)
	}

	existing, err := r.Store.LoadContacts(ctx)
	if err != nil {
		return 0, err
	}
	byEmail := make(map[string]*types.Contact, len(existing))
	for i := range existing {
		byEmail[existing[i].RecipientEmail] = &existing[i]
	}

	saved := 0
	for _, c := range incoming {
		if c.RecipientEmail == "" {
			// Rows without a usable address are reported, never stored.
			fmt.Printf("Skipping row for %s: no valid email address\n", c.Company)
			continue
		}
		if prior, ok := byEmail[c.RecipientEmail]; ok {
			mergeCampaignState(&c, prior)
		}
		if err := r.Store.SaveContact(ctx, c); err != nil {
			return saved, fmt.Errorf("ingest save %s: %w", c.RecipientEmail, err)
		}
		saved++
	}
	return saved, nil
}

// mergeCampaignState keeps a prior row's campaign progress when the
// incoming CSV row is identity-only.
func mergeCampaignState(incoming, prior *types.Contact) {
	incoming.ID = prior.ID
	if incoming.Status == types.StatusPending && prior.Status != types.StatusPending {
		incoming.Status = prior.Status
		incoming.ResumeType = prior.ResumeType
		incoming.TemplateUsed = prior.TemplateUsed
		incoming.SentDate = prior.SentDate
		incoming.FollowUpDates = prior.FollowUpDates
		incoming.Response = prior.Response
		incoming.ResearchSnapshot = prior.ResearchSnapshot
		incoming.PendingSubject = prior.PendingSubject
		incoming.PendingBody = prior.PendingBody
		incoming.FailureReason = prior.FailureReason
	}
}

// StatusCounts tallies contacts per lifecycle state.
func (r *Runner) StatusCounts(ctx context.Context) (map[types.ContactStatus]int, error) {
	list, err := r.Store.LoadContacts(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[types.ContactStatus]int)
	for i := range list {
		counts[list[i].Status]++
	}
	return counts, nil
}
