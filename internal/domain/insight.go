package domain

import "time"

// Insight is a takeaway recorded against a book, reviewed on a spaced
// schedule. LastReviewed and NextReviewDate are nil until the insight
// has been reviewed at least once.
type Insight struct {
	ID             string
	BookID         string
	Content        string
	Tags           []string
	DateAdded      time.Time
	LastReviewed   *time.Time
	NextReviewDate *time.Time
}

// DueForReview reports whether the insight should be surfaced to the
// user: never reviewed, or past its scheduled review date.
func (i Insight) DueForReview(now time.Time) bool {
	if i.LastReviewed == nil {
		return true
	}
	return i.NextReviewDate != nil && i.NextReviewDate.Before(now)
}

// InsightFields carries the caller-supplied fields for adding or
// editing an insight.
type InsightFields struct {
	BookID  string
	Content string
	Tags    []string
}
