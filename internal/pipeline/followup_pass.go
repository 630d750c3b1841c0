package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/akm592/coldreach/internal/contacts"
	"github.com/akm592/coldreach/internal/followup"
	"github.com/akm592/coldreach/internal/generation"
	"github.com/akm592/coldreach/internal/insights"
	"github.com/akm592/coldreach/internal/observability"
	"github.com/akm592/coldreach/internal/types"
)

// FollowUpPass revisits every sent contact: first a reply check, then at
// most one follow-up stage when its day threshold has elapsed. A human
// reply halts the sequence for good; auto-replies are recorded and the
// sequence continues on its schedule.
func (r *Runner) FollowUpPass(ctx context.Context) (observability.PassSummary, error) {
	var summary observability.PassSummary

	list, err := r.Store.LoadContacts(ctx)
	if err != nil {
		return summary, fmt.Errorf("follow-up pass: %w", err)
	}

	today := r.now()
	for i := range list {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		c := &list[i]
		if !c.SentLike() {
			continue
		}
		summary.Processed++

		replied := r.checkReply(ctx, c)
		if replied {
			summary.Replies++
		}
		if c.Response == types.ResponseHuman {
			continue
		}

		stage, due, err := followup.NextStage(c, r.Thresholds, today)
		if err != nil {
			log.Printf("[FOLLOWUP] skipping %s: %v", c.RecipientEmail, err)
			summary.Skipped++
			continue
		}
		if !due {
			continue
		}

		if r.sendFollowUp(ctx, c, stage) {
			summary.FollowUps++
			if r.SendDelay > 0 {
				select {
				case <-time.After(r.SendDelay):
				case <-ctx.Done():
					return summary, ctx.Err()
				}
			}
		} else {
			summary.Failed++
		}
		if r.Verbose && r.Printer != nil {
			r.Printer.PrintContactOutcome(c, "")
		}
	}

	r.syncSheet(ctx, list)
	if r.Printer != nil {
		r.Printer.PrintPassSummary("FOLLOW-UP", summary)
	}
	return summary, nil
}

// checkReply looks for an unread reply and records its classification.
// Returns true when a new reply was found this pass.
func (r *Runner) checkReply(ctx context.Context, c *types.Contact) bool {
	if c.Response == types.ResponseHuman {
		return false
	}

	body, found, err := r.Replies.Check(ctx, c.RecipientEmail)
	if err != nil {
		log.Printf("[FOLLOWUP] reply check failed for %s: %v", c.RecipientEmail, err)
		return false
	}
	if !found {
		return false
	}

	class, err := r.Generator.ClassifyReply(ctx, body)
	if err != nil {
		log.Printf("[FOLLOWUP] reply classification failed for %s: %v", c.RecipientEmail, err)
		class = types.ReplyOther
	}
	contacts.RecordReply(c, class)
	r.checkpoint(ctx, c)

	if class == types.ReplyHuman && c.TemplateUsed != "" {
		if err := r.Tracker.Update(ctx, c.TemplateUsed, c.Company, true); err != nil {
			log.Printf("[FOLLOWUP] performance update failed for %s: %v", c.Company, err)
		}
	}
	return true
}

// sendFollowUp composes and sends one follow-up stage. A failure leaves
// the stage date unset so the stage is retried on the next pass.
func (r *Runner) sendFollowUp(ctx context.Context, c *types.Contact, stage int) bool {
	report, err := r.snapshotInsights(c)
	if err != nil {
		log.Printf("[FOLLOWUP] skipping %s: %v", c.RecipientEmail, err)
		return false
	}

	result, err := r.Gate.ComposeFollowUp(ctx, generation.ComposeInput{
		Company:       c.Company,
		RecipientName: c.RecipientName,
		Title:         c.Title,
		RoleType:      c.Title,
		Sender:        r.Sender,
		Insights:      report,
		Resumes:       r.Resumes,
		ResumeVariant: c.ResumeType,
	}, stage)
	if err != nil {
		log.Printf("[FOLLOWUP] generation failed for %s stage %d: %v", c.RecipientEmail, stage+1, err)
		return false
	}
	if result.Verdict == types.VerdictReject {
		// Held follow-ups are not routed to review; the stage simply
		// waits for the next pass.
		log.Printf("[FOLLOWUP] stage %d for %s held by safety check", stage+1, c.RecipientEmail)
		return false
	}

	err = r.Mailer.Send(ctx, types.OutboundMessage{
		To:             c.RecipientEmail,
		Subject:        result.Draft.Subject,
		Body:           result.Draft.Body,
		AttachmentPath: r.Resumes.AttachmentPath(c.ResumeType),
	})
	if err != nil {
		log.Printf("[FOLLOWUP] send failed for %s stage %d: %v", c.RecipientEmail, stage+1, err)
		return false
	}

	c.FollowUpDates[stage] = followup.Today(r.now())
	r.checkpoint(ctx, c)
	return true
}

// snapshotInsights rebuilds the insight report from the research snapshot
// captured at send time. A missing snapshot is a skip prerequisite, not a
// failure.
func (r *Runner) snapshotInsights(c *types.Contact) (*types.InsightReport, error) {
	if c.ResearchSnapshot == "" {
		return nil, fmt.Errorf("no research snapshot for %s", c.Company)
	}
	var doc types.ResearchDocument
	if err := json.Unmarshal([]byte(c.ResearchSnapshot), &doc); err != nil {
		return nil, fmt.Errorf("bad research snapshot for %s: %w", c.Company, err)
	}
	return insights.Build(&doc), nil
}
