package domain

import "time"

// Quote is a verbatim excerpt from a book. Quotes carry no review
// schedule.
type Quote struct {
	ID         string
	BookID     string
	Content    string
	PageNumber int
	DateAdded  time.Time
	Tags       []string
}

// QuoteFields carries the caller-supplied fields for adding or editing
// a quote. On edit, zero-valued fields leave the stored value unchanged.
type QuoteFields struct {
	BookID     string
	Content    string
	PageNumber int
	Tags       []string
}
