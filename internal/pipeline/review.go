package pipeline

import (
	"context"
	"fmt"

	"github.com/akm592/coldreach/internal/contacts"
	"github.com/akm592/coldreach/internal/followup"
	"github.com/akm592/coldreach/internal/types"
)

// ApproveReview sends a held contact's pending content (with optional
// subject/body overrides from human editing) and marks it Sent (Manual).
func (r *Runner) ApproveReview(ctx context.Context, email, subject, body string) error {
	c, err := r.findContact(ctx, email)
	if err != nil {
		return err
	}
	if !contacts.AwaitingDecision(c) {
		return fmt.Errorf("contact %s is not awaiting review (status %s)", email, c.Status)
	}

	if subject == "" {
		subject = c.PendingSubject
	}
	if body == "" {
		body = c.PendingBody
	}
	if subject == "" || body == "" {
		return fmt.Errorf("contact %s has no pending content to approve", email)
	}

	err = r.Mailer.Send(ctx, types.OutboundMessage{
		To:             c.RecipientEmail,
		Subject:        subject,
		Body:           body,
		AttachmentPath: r.Resumes.AttachmentPath(c.ResumeType),
	})
	if err != nil {
		return fmt.Errorf("approved send failed for %s: %w", email, err)
	}

	if err := contacts.Transition(c, types.StatusSentManual); err != nil {
		return err
	}
	c.SentDate = followup.Today(r.now())
	c.ClearPendingContent()
	r.checkpoint(ctx, c)

	if c.TemplateUsed != "" {
		if err := r.Tracker.Update(ctx, c.TemplateUsed, c.Company, false); err != nil {
			return fmt.Errorf("performance update failed for %s: %w", c.Company, err)
		}
	}
	return nil
}

// RejectReview discards a held contact and clears its pending content.
func (r *Runner) RejectReview(ctx context.Context, email string) error {
	c, err := r.findContact(ctx, email)
	if err != nil {
		return err
	}
	if !contacts.AwaitingDecision(c) {
		return fmt.Errorf("contact %s is not awaiting review (status %s)", email, c.Status)
	}

	if err := contacts.Transition(c, types.StatusDiscarded); err != nil {
		return err
	}
	c.ClearPendingContent()
	r.checkpoint(ctx, c)
	return nil
}

func (r *Runner) findContact(ctx context.Context, email string) (*types.Contact, error) {
	normalized := contacts.NormalizeEmail(email)
	if normalized == "" {
		return nil, fmt.Errorf("invalid email %q", email)
	}

	list, err := r.Store.LoadContacts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].RecipientEmail == normalized {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("no contact with email %s", normalized)
}
