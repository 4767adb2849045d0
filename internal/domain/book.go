package domain

import "time"

// Book is a single tracked book in the library.
type Book struct {
	ID        string
	Title     string
	Author    string
	CoverURL  string
	DateAdded time.Time
	Tags      []string
}

// BookFields carries the caller-supplied fields for adding or editing a
// book. On edit, empty fields leave the stored value unchanged.
type BookFields struct {
	Title    string
	Author   string
	CoverURL string
	Tags     []string
}
