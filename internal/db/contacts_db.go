package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/akm592/coldreach/internal/types"
)

// LoadContacts returns every contact, ordered by company then email for
// stable pass ordering.
func (db *DB) LoadContacts(ctx context.Context) ([]types.Contact, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, company, recipient_name, recipient_email, title,
		        referral_name, referral_company, status, resume_type,
		        template_used, sent_date, follow_up_1_date, follow_up_2_date,
		        follow_up_3_date, response_status, research_snapshot,
		        pending_subject, pending_body, failure_reason
		 FROM contacts
		 ORDER BY company, recipient_email`)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}
	defer rows.Close()

	var contacts []types.Contact
	for rows.Next() {
		var c types.Contact
		err := rows.Scan(
			&c.ID, &c.Company, &c.RecipientName, &c.RecipientEmail, &c.Title,
			&c.ReferralName, &c.ReferralCompany, &c.Status, &c.ResumeType,
			&c.TemplateUsed, &c.SentDate, &c.FollowUpDates[0], &c.FollowUpDates[1],
			&c.FollowUpDates[2], &c.Response, &c.ResearchSnapshot,
			&c.PendingSubject, &c.PendingBody, &c.FailureReason,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading contacts: %w", err)
	}
	return contacts, nil
}

// SaveContact upserts one contact keyed by normalized email; last write
// wins. Called after every mutation so a mid-pass crash loses at most the
// in-flight contact.
func (db *DB) SaveContact(ctx context.Context, c types.Contact) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO contacts (
			id, company, recipient_name, recipient_email, title,
			referral_name, referral_company, status, resume_type,
			template_used, sent_date, follow_up_1_date, follow_up_2_date,
			follow_up_3_date, response_status, research_snapshot,
			pending_subject, pending_body, failure_reason, updated_at
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		           $11, $12, $13, $14, $15, $16, $17, $18, $19, NOW())
		 ON CONFLICT (recipient_email) DO UPDATE SET
			company = $2, recipient_name = $3, title = $5,
			referral_name = $6, referral_company = $7, status = $8,
			resume_type = $9, template_used = $10, sent_date = $11,
			follow_up_1_date = $12, follow_up_2_date = $13,
			follow_up_3_date = $14, response_status = $15,
			research_snapshot = $16, pending_subject = $17,
			pending_body = $18, failure_reason = $19, updated_at = NOW()`,
		c.ID, c.Company, c.RecipientName, c.RecipientEmail, c.Title,
		c.ReferralName, c.ReferralCompany, c.Status, c.ResumeType,
		c.TemplateUsed, c.SentDate, c.FollowUpDates[0], c.FollowUpDates[1],
		c.FollowUpDates[2], c.Response, c.ResearchSnapshot,
		c.PendingSubject, c.PendingBody, c.FailureReason,
	)
	if err != nil {
		return fmt.Errorf("failed to save contact %s: %w", c.RecipientEmail, err)
	}
	return nil
}

// DeleteContact removes a contact by email.
func (db *DB) DeleteContact(ctx context.Context, email string) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM contacts WHERE recipient_email = $1`, email)
	if err != nil {
		return fmt.Errorf("failed to delete contact %s: %w", email, err)
	}
	return nil
}
