// Package followup decides when a sent contact is due for the next stage of
// the follow-up sequence.
package followup

import (
	"fmt"
	"time"

	"github.com/akm592/coldreach/internal/contacts"
	"github.com/akm592/coldreach/internal/types"
)

// DateLayout is the storage format for all campaign dates.
const DateLayout = "2006-01-02"

// Today formats a time as a stored campaign date.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// NextStage returns the 0-based follow-up stage due for the contact today,
// or ok=false when nothing is due. At most one stage is due per call; a
// later stage is never due before the previous stage's date is set, no
// matter how much time has elapsed.
func NextStage(c *types.Contact, thresholds [types.FollowUpStages]int, today time.Time) (int, bool, error) {
	if !contacts.EligibleForFollowUp(c) {
		return 0, false, nil
	}

	for stage := 0; stage < types.FollowUpStages; stage++ {
		if c.FollowUpDates[stage] != "" {
			continue
		}

		prev := c.SentDate
		if stage > 0 {
			prev = c.FollowUpDates[stage-1]
		}
		if prev == "" {
			// Prerequisite date missing; the sequence cannot advance.
			return 0, false, nil
		}

		prevDate, err := time.Parse(DateLayout, prev)
		if err != nil {
			return 0, false, fmt.Errorf("bad date %q on contact %s: %w", prev, c.RecipientEmail, err)
		}

		elapsed := int(today.Sub(prevDate).Hours() / 24)
		if elapsed >= thresholds[stage] {
			return stage, true, nil
		}
		return 0, false, nil
	}
	return 0, false, nil
}
