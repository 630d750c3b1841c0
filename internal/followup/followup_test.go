package followup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akm592/coldreach/internal/types"
)

var thresholds = [types.FollowUpStages]int{3, 7, 14}

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func sentContact() types.Contact {
	return types.Contact{
		Company:        "Acme",
		RecipientEmail: "jordan@acme.example",
		Status:         types.StatusSent,
		SentDate:       "2026-05-01",
	}
}

func TestNextStageFirstFollowUpDue(t *testing.T) {
	// Sent 10 days ago, threshold 3: stage one is due.
	c := sentContact()

	stage, due, err := NextStage(&c, thresholds, day("2026-05-11"))
	require.NoError(t, err)
	assert.True(t, due)
	assert.Equal(t, 0, stage)
}

func TestNextStageNotYetDue(t *testing.T) {
	c := sentContact()

	_, due, err := NextStage(&c, thresholds, day("2026-05-03"))
	require.NoError(t, err)
	assert.False(t, due)
}

func TestNextStageExactThresholdBoundary(t *testing.T) {
	c := sentContact()

	_, due, err := NextStage(&c, thresholds, day("2026-05-04"))
	require.NoError(t, err)
	assert.True(t, due)
}

func TestNextStageOneStagePerPass(t *testing.T) {
	// Stage one completed today: stage two is gated on its own threshold
	// from today, so nothing further is due in the same pass.
	c := sentContact()
	c.FollowUpDates[0] = "2026-05-11"

	_, due, err := NextStage(&c, thresholds, day("2026-05-11"))
	require.NoError(t, err)
	assert.False(t, due)
}

func TestNextStageSecondNeverBeforeFirst(t *testing.T) {
	// Months elapsed but stage one never completed: only stage one can be
	// due, regardless of elapsed time.
	c := sentContact()

	stage, due, err := NextStage(&c, thresholds, day("2026-09-01"))
	require.NoError(t, err)
	assert.True(t, due)
	assert.Equal(t, 0, stage)
}

func TestNextStageProgression(t *testing.T) {
	c := sentContact()
	c.FollowUpDates[0] = "2026-05-04"

	stage, due, err := NextStage(&c, thresholds, day("2026-05-11"))
	require.NoError(t, err)
	assert.True(t, due)
	assert.Equal(t, 1, stage)

	c.FollowUpDates[1] = "2026-05-11"
	stage, due, err = NextStage(&c, thresholds, day("2026-05-25"))
	require.NoError(t, err)
	assert.True(t, due)
	assert.Equal(t, 2, stage)
}

func TestNextStageExhausted(t *testing.T) {
	c := sentContact()
	c.FollowUpDates = [types.FollowUpStages]string{"2026-05-04", "2026-05-11", "2026-05-25"}

	_, due, err := NextStage(&c, thresholds, day("2026-09-01"))
	require.NoError(t, err)
	assert.False(t, due)
}

func TestNextStageHumanReplyHalts(t *testing.T) {
	c := sentContact()
	c.Response = types.ResponseHuman

	_, due, err := NextStage(&c, thresholds, day("2026-05-11"))
	require.NoError(t, err)
	assert.False(t, due)
}

func TestNextStageAutoReplyContinues(t *testing.T) {
	c := sentContact()
	c.Response = types.ResponseAuto

	_, due, err := NextStage(&c, thresholds, day("2026-05-11"))
	require.NoError(t, err)
	assert.True(t, due)
}

func TestNextStageIneligibleStatuses(t *testing.T) {
	for _, status := range []types.ContactStatus{
		types.StatusPending, types.StatusPendingReview, types.StatusFailed, types.StatusDiscarded,
	} {
		c := sentContact()
		c.Status = status

		_, due, err := NextStage(&c, thresholds, day("2026-05-11"))
		require.NoError(t, err)
		assert.False(t, due, "status %s should not be eligible", status)
	}
}

func TestNextStageMissingSentDate(t *testing.T) {
	c := sentContact()
	c.SentDate = ""

	_, due, err := NextStage(&c, thresholds, day("2026-05-11"))
	require.NoError(t, err)
	assert.False(t, due)
}

func TestNextStageMalformedDate(t *testing.T) {
	c := sentContact()
	c.SentDate = "May 1st"

	_, _, err := NextStage(&c, thresholds, day("2026-05-11"))
	assert.Error(t, err)
}

func TestNextStageSentManualEligible(t *testing.T) {
	c := sentContact()
	c.Status = types.StatusSentManual

	stage, due, err := NextStage(&c, thresholds, day("2026-05-11"))
	require.NoError(t, err)
	assert.True(t, due)
	assert.Equal(t, 0, stage)
}
