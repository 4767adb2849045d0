package domain

import (
	"testing"
	"time"
)

func TestDueForReview(t *testing.T) {
	now := time.Now()
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	testCases := []struct {
		name     string
		insight  Insight
		expected bool
	}{
		{
			name:     "never reviewed is always due",
			insight:  Insight{},
			expected: true,
		},
		{
			name:     "reviewed with past due date is due again",
			insight:  Insight{LastReviewed: &past, NextReviewDate: &past},
			expected: true,
		},
		{
			name:     "reviewed with future due date is not due",
			insight:  Insight{LastReviewed: &past, NextReviewDate: &future},
			expected: false,
		},
		{
			name:     "reviewed without a due date is not due",
			insight:  Insight{LastReviewed: &past},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.insight.DueForReview(now); got != tc.expected {
				t.Errorf("Expected DueForReview=%v, got %v", tc.expected, got)
			}
		})
	}
}
