// Package types defines the shared data model for the outreach campaign:
// contacts, research documents, drafts, and template performance records.
package types

import (
	"github.com/google/uuid"
)

// ContactStatus is the campaign lifecycle state of a contact.
type ContactStatus string

const (
	// StatusPending means no outreach attempt has been made yet.
	StatusPending ContactStatus = "Pending"
	// StatusSent means the initial email was sent automatically.
	StatusSent ContactStatus = "Sent"
	// StatusSentManual means a human approved held content and it was sent.
	StatusSentManual ContactStatus = "Sent (Manual)"
	// StatusPendingReview means generated content was rejected by the safety
	// gate and is held for human editing.
	StatusPendingReview ContactStatus = "Pending Review"
	// StatusFailed means research, generation, or transport failed; the
	// contact is retried on the next full pass.
	StatusFailed ContactStatus = "Failed"
	// StatusDiscarded means a human rejected held content. Terminal.
	StatusDiscarded ContactStatus = "Discarded"
)

// ResponseStatus classifies a detected reply from the recipient.
type ResponseStatus string

const (
	ResponseNone  ResponseStatus = ""
	ResponseHuman ResponseStatus = "Replied"
	ResponseAuto  ResponseStatus = "Auto-Reply"
	ResponseOther ResponseStatus = "Other"
)

// FollowUpStages is the number of timed follow-up sends after the initial email.
const FollowUpStages = 3

// Contact is one outreach target with its persistent campaign state.
// Dates are stored as "2006-01-02" strings; empty means unset. This matches
// the tabular contact store, where every column is text.
type Contact struct {
	ID              uuid.UUID `json:"id"`
	Company         string    `json:"company"`
	RecipientName   string    `json:"recipient_name"`
	RecipientEmail  string    `json:"recipient_email"`
	Title           string    `json:"title,omitempty"`
	ReferralName    string    `json:"referral_name,omitempty"`
	ReferralCompany string    `json:"referral_company,omitempty"`

	Status        ContactStatus          `json:"status"`
	ResumeType    string                 `json:"resume_type,omitempty"`
	TemplateUsed  string                 `json:"template_used,omitempty"`
	SentDate      string                 `json:"sent_date,omitempty"`
	FollowUpDates [FollowUpStages]string `json:"follow_up_dates"`
	Response      ResponseStatus         `json:"response_status,omitempty"`

	// ResearchSnapshot is the serialized research document captured at send
	// time, reused by follow-up generation.
	ResearchSnapshot string `json:"research_snapshot,omitempty"`

	// PendingSubject/PendingBody hold generated content awaiting human
	// review. Set only in Pending Review, cleared on resolution.
	PendingSubject string `json:"pending_subject,omitempty"`
	PendingBody    string `json:"pending_body,omitempty"`

	// FailureReason records the failure category for Failed contacts.
	FailureReason string `json:"failure_reason,omitempty"`
}

// SentLike reports whether the contact is in a state eligible for the
// follow-up sequence.
func (c *Contact) SentLike() bool {
	return c.Status == StatusSent || c.Status == StatusSentManual
}

// FollowUpsExhausted reports whether every follow-up stage has completed.
func (c *Contact) FollowUpsExhausted() bool {
	for _, d := range c.FollowUpDates {
		if d == "" {
			return false
		}
	}
	return true
}

// ClearPendingContent drops held review content after a human decision.
func (c *Contact) ClearPendingContent() {
	c.PendingSubject = ""
	c.PendingBody = ""
}
