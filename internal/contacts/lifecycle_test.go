package contacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akm592/coldreach/internal/types"
)

func TestTransition_LegalPaths(t *testing.T) {
	tests := []struct {
		from types.ContactStatus
		to   types.ContactStatus
	}{
		{types.StatusPending, types.StatusSent},
		{types.StatusPending, types.StatusPendingReview},
		{types.StatusPending, types.StatusFailed},
		{types.StatusPendingReview, types.StatusSentManual},
		{types.StatusPendingReview, types.StatusDiscarded},
		{types.StatusFailed, types.StatusPending},
	}

	for _, tt := range tests {
		c := &types.Contact{Status: tt.from}
		require.NoError(t, Transition(c, tt.to))
		assert.Equal(t, tt.to, c.Status)
	}
}

func TestTransition_PendingReviewNeverReachesSentDirectly(t *testing.T) {
	c := &types.Contact{Status: types.StatusPendingReview}
	err := Transition(c, types.StatusSent)

	require.Error(t, err)
	var illegal *ErrIllegalTransition
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, types.StatusPendingReview, c.Status, "status unchanged on rejection")
}

func TestTransition_TerminalStates(t *testing.T) {
	for _, from := range []types.ContactStatus{types.StatusDiscarded, types.StatusSent, types.StatusSentManual} {
		c := &types.Contact{Status: from}
		assert.Error(t, Transition(c, types.StatusPending), "%s must not go back to Pending", from)
	}
}

func TestRecordReply(t *testing.T) {
	c := &types.Contact{Status: types.StatusSent}

	RecordReply(c, types.ReplyAuto)
	assert.Equal(t, types.ResponseAuto, c.Response)
	assert.True(t, EligibleForFollowUp(c), "auto-reply does not halt follow-ups")

	RecordReply(c, types.ReplyHuman)
	assert.Equal(t, types.ResponseHuman, c.Response)
	assert.False(t, EligibleForFollowUp(c), "human reply halts follow-ups")
}

func TestEligibleForFollowUp_ExhaustedStages(t *testing.T) {
	c := &types.Contact{Status: types.StatusSent}
	c.FollowUpDates = [types.FollowUpStages]string{"2026-01-01", "2026-01-05", "2026-01-12"}

	assert.False(t, EligibleForFollowUp(c))
}

func TestEligibleForOutreach(t *testing.T) {
	assert.True(t, EligibleForOutreach(&types.Contact{Status: types.StatusPending}))
	assert.True(t, EligibleForOutreach(&types.Contact{Status: types.StatusFailed}))
	assert.False(t, EligibleForOutreach(&types.Contact{Status: types.StatusPendingReview}))
	assert.False(t, EligibleForOutreach(&types.Contact{Status: types.StatusSent}))
}

func TestAwaitingDecision_ExclusiveWithOutreach(t *testing.T) {
	// A contact held for review is never simultaneously eligible for a new
	// automated send.
	c := &types.Contact{Status: types.StatusPendingReview}
	assert.True(t, AwaitingDecision(c))
	assert.False(t, EligibleForOutreach(c))
}
