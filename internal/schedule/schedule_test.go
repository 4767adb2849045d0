package schedule

import (
	"testing"
	"time"

	"github.com/conorfennell/insighttrack/internal/domain"
)

func TestIntervalNeverReviewed(t *testing.T) {
	now := time.Now()
	if got := Interval(nil, now); got != 1 {
		t.Errorf("Expected interval 1 for a never-reviewed insight, got %d", got)
	}
}

func TestIntervalSameDay(t *testing.T) {
	now := time.Now()
	justNow := now.Add(-5 * time.Minute)
	if got := Interval(&justNow, now); got != 1 {
		t.Errorf("Expected interval 1 when reviewed less than a day ago, got %d", got)
	}
}

func TestIntervalGrowsByCycle(t *testing.T) {
	testCases := []struct {
		name     string
		daysAgo  int
		expected int
	}{
		// days/7 = cycle, interval = 7 * (cycle + 1)
		{name: "one day ago", daysAgo: 1, expected: 7},
		{name: "six days ago", daysAgo: 6, expected: 7},
		{name: "one week ago", daysAgo: 7, expected: 14},
		{name: "two weeks ago", daysAgo: 14, expected: 21},
		{name: "three weeks ago", daysAgo: 21, expected: 28},
		{name: "four weeks ago clamps", daysAgo: 28, expected: 30},
		{name: "far in the past clamps", daysAgo: 365, expected: 30},
	}

	now := time.Now()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			last := now.Add(-time.Duration(tc.daysAgo) * 24 * time.Hour)
			if got := Interval(&last, now); got != tc.expected {
				t.Errorf("Expected interval %d for a review %d days ago, got %d", tc.expected, tc.daysAgo, got)
			}
		})
	}
}

func TestIntervalFloorsPartialDays(t *testing.T) {
	now := time.Now()
	// 6 days and 23 hours floors to 6 days, still inside the first cycle.
	last := now.Add(-(6*24 + 23) * time.Hour)
	if got := Interval(&last, now); got != 7 {
		t.Errorf("Expected interval 7 just under the one-week mark, got %d", got)
	}
}

func TestNextDueDate(t *testing.T) {
	now := time.Now()
	last := now.Add(-7 * 24 * time.Hour)
	insight := domain.Insight{LastReviewed: &last}

	due := NextDueDate(insight, now)
	expected := now.Add(14 * 24 * time.Hour)
	if !due.Equal(expected) {
		t.Errorf("Expected due date %v, got %v", expected, due)
	}
}

func TestNextDueDateNeverReviewed(t *testing.T) {
	now := time.Now()
	due := NextDueDate(domain.Insight{}, now)
	expected := now.Add(24 * time.Hour)
	if !due.Equal(expected) {
		t.Errorf("Expected due date one day out, got %v (wanted %v)", due, expected)
	}
}
