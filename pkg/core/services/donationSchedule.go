package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/bhyulljz/rakt-matching/pkg/core/matching"
	"github.com/bhyulljz/rakt-matching/pkg/core/model"
)

// DonationSchedule describes when a donor can next give blood.
type DonationSchedule struct {
	DonorID       string
	EligibleNow   bool
	NextEligible  time.Time
	UpcomingDates []time.Time
}

// ComputeDonationSchedule returns the donor's next eligible donation dates.
// Eligibility recurs every 56 days from the last donation. A donor with no
// recorded donation is eligible immediately and the recurrence starts at now.
func ComputeDonationSchedule(donor model.DonorProfile, now time.Time, count int) (*DonationSchedule, error) {
	if count < 1 {
		count = 1
	}

	start := now
	if donor.LastDonationDate != nil {
		start = *donor.LastDonationDate
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     rrule.DAILY,
		Interval: matching.MinDonationIntervalDays,
		Dtstart:  start.UTC(),
		Count:    count + 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build donation recurrence: %w", err)
	}

	schedule := &DonationSchedule{DonorID: donor.ID}

	if donor.LastDonationDate == nil {
		schedule.EligibleNow = true
		schedule.NextEligible = now.UTC()
		schedule.UpcomingDates = rule.All()[:count]
		return schedule, nil
	}

	// First occurrence is the last donation itself, so the next eligible
	// date is the first occurrence at or after it.
	upcoming := rule.All()[1:]
	schedule.NextEligible = upcoming[0]
	schedule.EligibleNow = !schedule.NextEligible.After(now.UTC())
	schedule.UpcomingDates = upcoming

	return schedule, nil
}
