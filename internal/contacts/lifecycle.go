package contacts

import (
	"fmt"

	"github.com/akm592/coldreach/internal/types"
)

// ErrIllegalTransition is returned when a status change violates the
// lifecycle state machine.
type ErrIllegalTransition struct {
	From types.ContactStatus
	To   types.ContactStatus
}

func (e *ErrIllegalTransition) Error() string {
	return fmt.Sprintf("illegal contact transition: %q -> %q", e.From, e.To)
}

// legalTransitions is the full transition table. Sent-like states never
// change status again; replies and follow-up progress are tracked in
// separate fields. Failed returns to Pending only at the start of a fresh
// pass, never within the run that failed it.
var legalTransitions = map[types.ContactStatus][]types.ContactStatus{
	types.StatusPending: {
		types.StatusSent,
		types.StatusPendingReview,
		types.StatusFailed,
	},
	types.StatusPendingReview: {
		types.StatusSentManual,
		types.StatusDiscarded,
	},
	types.StatusFailed: {
		types.StatusPending,
	},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to types.ContactStatus) bool {
	for _, allowed := range legalTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition applies a status change to the contact, enforcing the
// lifecycle rules. Side effects (dates, held content, failure reasons) are
// the caller's responsibility and are applied alongside the transition.
func Transition(c *types.Contact, to types.ContactStatus) error {
	if !CanTransition(c.Status, to) {
		return &ErrIllegalTransition{From: c.Status, To: to}
	}
	c.Status = to
	return nil
}

// RecordReply stores the classified response on the contact. A human reply
// is terminal for the follow-up sequence; auto-replies and other classes
// are recorded but do not halt it.
func RecordReply(c *types.Contact, class types.ReplyClass) {
	c.Response = types.ResponseStatusFor(class)
}

// AwaitingDecision reports whether the contact holds content pending a
// human decision. A contact in this state is excluded from automated sends
// until resolved.
func AwaitingDecision(c *types.Contact) bool {
	return c.Status == types.StatusPendingReview
}

// EligibleForOutreach reports whether the outreach pass should process this
// contact. Failed contacts are eligible again because eligibility is only
// evaluated at the start of a new pass.
func EligibleForOutreach(c *types.Contact) bool {
	return c.Status == types.StatusPending || c.Status == types.StatusFailed
}

// EligibleForFollowUp reports whether the follow-up pass should consider
// this contact: sent, not answered by a human, stages remaining.
func EligibleForFollowUp(c *types.Contact) bool {
	if !c.SentLike() {
		return false
	}
	if c.Response == types.ResponseHuman {
		return false
	}
	return !c.FollowUpsExhausted()
}
