// Package pipeline orchestrates the outreach and follow-up passes over the
// contact table.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/akm592/coldreach/internal/cache"
	"github.com/akm592/coldreach/internal/contacts"
	"github.com/akm592/coldreach/internal/followup"
	"github.com/akm592/coldreach/internal/generation"
	"github.com/akm592/coldreach/internal/insights"
	"github.com/akm592/coldreach/internal/observability"
	"github.com/akm592/coldreach/internal/research"
	"github.com/akm592/coldreach/internal/resume"
	"github.com/akm592/coldreach/internal/templates"
	"github.com/akm592/coldreach/internal/transport"
	"github.com/akm592/coldreach/internal/types"
)

// ContactStore persists the contact table. Every mutation is saved
// immediately so a mid-pass crash loses at most the in-flight contact.
type ContactStore interface {
	LoadContacts(ctx context.Context) ([]types.Contact, error)
	SaveContact(ctx context.Context, c types.Contact) error
}

// Runner wires the campaign components together and drives passes. All
// processing is sequential; cancellation is honored between contacts only,
// so a send in flight always completes.
type Runner struct {
	Store      ContactStore
	Cache      *cache.Cache
	Researcher *research.Researcher
	Gate       *generation.Gate
	Generator  generation.Generator
	Tracker    *templates.Tracker
	Resumes    *resume.Library
	Mailer     transport.Mailer
	Replies    transport.ReplyChecker
	Sheets     transport.SheetSyncer // optional
	Printer    *observability.Printer

	Sender     generation.SenderProfile
	Thresholds [types.FollowUpStages]int
	SendDelay  time.Duration
	Verbose    bool

	Now func() time.Time // defaults to time.Now
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// OutreachPass processes every contact eligible for a first-touch email:
// research, insight ranking, template selection, generation, the safety
// gate, and the send. It then mirrors the table to the sheet when a syncer
// is configured. Errors local to one contact never abort the pass.
func (r *Runner) OutreachPass(ctx context.Context) (observability.PassSummary, error) {
	var summary observability.PassSummary

	list, err := r.Store.LoadContacts(ctx)
	if err != nil {
		return summary, fmt.Errorf("outreach pass: %w", err)
	}

	for i := range list {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		c := &list[i]
		if !contacts.EligibleForOutreach(c) {
			continue
		}
		summary.Processed++

		outcome := r.processContact(ctx, c)
		switch outcome {
		case outcomeSent:
			summary.Sent++
		case outcomeHeld:
			summary.Held++
		case outcomeFailed:
			summary.Failed++
		case outcomeSkipped:
			summary.Skipped++
		}
		if r.Verbose && r.Printer != nil {
			r.Printer.PrintContactOutcome(c, "")
		}

		if outcome == outcomeSent && r.SendDelay > 0 {
			select {
			case <-time.After(r.SendDelay):
			case <-ctx.Done():
				return summary, ctx.Err()
			}
		}
	}

	r.syncSheet(ctx, list)
	if r.Printer != nil {
		r.Printer.PrintPassSummary("OUTREACH", summary)
	}
	return summary, nil
}

type contactOutcome int

const (
	outcomeSent contactOutcome = iota
	outcomeHeld
	outcomeFailed
	outcomeSkipped
)

// processContact runs the full pipeline for one pending contact and
// persists every state change as it happens.
func (r *Runner) processContact(ctx context.Context, c *types.Contact) contactOutcome {
	// Failed contacts re-enter through Pending on each full pass.
	if c.Status == types.StatusFailed {
		if err := contacts.Transition(c, types.StatusPending); err != nil {
			log.Printf("[PIPELINE] cannot retry %s: %v", c.RecipientEmail, err)
			return outcomeSkipped
		}
		c.FailureReason = ""
		r.checkpoint(ctx, c)
	}

	doc, ok := r.Cache.Get(ctx, c.Company, cache.CategoryCompanyResearch)
	if !ok {
		fresh, err := r.Researcher.Research(ctx, research.Request{
			Company:         c.Company,
			ReferralName:    c.ReferralName,
			ReferralCompany: c.ReferralCompany,
		})
		if err != nil {
			log.Printf("[PIPELINE] research failed for %s: %v", c.Company, err)
			r.fail(ctx, c, "research failed")
			return outcomeFailed
		}
		doc = *fresh
		if err := r.Cache.Put(ctx, c.Company, cache.CategoryCompanyResearch, doc); err != nil {
			log.Printf("[PIPELINE] cache write failed for %s: %v", c.Company, err)
		}
	}

	report := insights.Build(&doc)
	if r.Verbose && r.Printer != nil {
		r.Printer.PrintInsights(c.Company, report)
	}

	result, err := r.Gate.ComposeInitial(ctx, generation.ComposeInput{
		Company:       c.Company,
		RecipientName: c.RecipientName,
		Title:         c.Title,
		RoleType:      c.Title,
		Sender:        r.Sender,
		Insights:      report,
		Resumes:       r.Resumes,
	})
	if err != nil {
		if generation.IsResumeUnavailable(err) {
			log.Printf("[PIPELINE] skipping %s: %v", c.RecipientEmail, err)
			return outcomeSkipped
		}
		log.Printf("[PIPELINE] generation failed for %s: %v", c.RecipientEmail, err)
		r.fail(ctx, c, "generation failed")
		return outcomeFailed
	}

	snapshot, err := json.Marshal(doc)
	if err != nil {
		log.Printf("[PIPELINE] snapshot encode failed for %s: %v", c.Company, err)
	}

	if result.Verdict == types.VerdictReject {
		if err := contacts.Transition(c, types.StatusPendingReview); err != nil {
			log.Printf("[PIPELINE] %s: %v", c.RecipientEmail, err)
			return outcomeSkipped
		}
		c.PendingSubject = result.Draft.Subject
		c.PendingBody = result.Draft.Body
		c.ResumeType = result.Draft.ResumeChoice
		c.TemplateUsed = result.Draft.TemplateUsed
		c.ResearchSnapshot = string(snapshot)
		r.checkpoint(ctx, c)
		return outcomeHeld
	}

	err = r.Mailer.Send(ctx, types.OutboundMessage{
		To:             c.RecipientEmail,
		Subject:        result.Draft.Subject,
		Body:           result.Draft.Body,
		AttachmentPath: r.Resumes.AttachmentPath(result.Draft.ResumeChoice),
	})
	if err != nil {
		log.Printf("[PIPELINE] send failed for %s: %v", c.RecipientEmail, err)
		r.fail(ctx, c, "transport failed")
		return outcomeFailed
	}

	if err := contacts.Transition(c, types.StatusSent); err != nil {
		log.Printf("[PIPELINE] %s: %v", c.RecipientEmail, err)
		return outcomeSkipped
	}
	c.SentDate = followup.Today(r.now())
	c.ResumeType = result.Draft.ResumeChoice
	c.TemplateUsed = result.Draft.TemplateUsed
	c.ResearchSnapshot = string(snapshot)
	r.checkpoint(ctx, c)

	if err := r.Tracker.Update(ctx, c.TemplateUsed, c.Company, false); err != nil {
		log.Printf("[PIPELINE] performance update failed for %s: %v", c.Company, err)
	}
	return outcomeSent
}

// fail records a failure category and moves the contact to Failed; it is
// retried on the next full pass.
func (r *Runner) fail(ctx context.Context, c *types.Contact, reason string) {
	if err := contacts.Transition(c, types.StatusFailed); err != nil {
		log.Printf("[PIPELINE] %s: %v", c.RecipientEmail, err)
		return
	}
	c.FailureReason = reason
	r.checkpoint(ctx, c)
}

// checkpoint persists a contact mutation immediately.
func (r *Runner) checkpoint(ctx context.Context, c *types.Contact) {
	if err := r.Store.SaveContact(ctx, *c); err != nil {
		log.Printf("[PIPELINE] checkpoint failed for %s: %v", c.RecipientEmail, err)
	}
}

// syncSheet mirrors the contact table to the configured spreadsheet.
func (r *Runner) syncSheet(ctx context.Context, list []types.Contact) {
	if r.Sheets == nil {
		return
	}
	if err := r.Sheets.Sync(ctx, contacts.SheetValues(list)); err != nil {
		log.Printf("[PIPELINE] sheet sync failed: %v", err)
	}
}
