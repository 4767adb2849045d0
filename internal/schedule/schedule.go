package schedule

import (
	"time"

	"github.com/conorfennell/insighttrack/internal/domain"
)

const (
	// cycleDays is the base review cycle; the interval grows by one
	// cycle length for every full cycle elapsed since the last review.
	cycleDays = 7

	// maxIntervalDays caps the interval so an insight is never shelved
	// for more than a month.
	maxIntervalDays = 30
)

// Interval returns the number of days until the next review, given the
// time of the last review (nil if the insight was never reviewed) and
// the current time. The result is always in [1, 30].
//
// An insight reviewed less than a full day ago comes back after 1 day,
// not a full cycle. This forces rapid reinforcement early on.
func Interval(lastReviewed *time.Time, now time.Time) int {
	if lastReviewed == nil {
		return 1
	}

	daysSince := int(now.Sub(*lastReviewed) / (24 * time.Hour))
	if daysSince < 1 {
		return 1
	}

	cycle := daysSince / cycleDays
	interval := cycleDays * (cycle + 1)
	if interval > maxIntervalDays {
		interval = maxIntervalDays
	}
	return interval
}

// NextDueDate returns the instant the insight next comes due if it were
// reviewed at the given time. The insight's pre-review state feeds the
// interval calculation.
func NextDueDate(insight domain.Insight, now time.Time) time.Time {
	days := Interval(insight.LastReviewed, now)
	return now.Add(time.Duration(days) * 24 * time.Hour)
}
