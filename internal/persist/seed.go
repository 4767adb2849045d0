package persist

import (
	"time"

	"github.com/conorfennell/insighttrack/internal/domain"
	"github.com/google/uuid"
)

// PlaceholderCover is the cover image used when a book has no real one.
const PlaceholderCover = "/placeholder.svg?height=150&width=100"

// Seed builds the sample dataset used when the store is uninitialized:
// two books, one insight each, one quote each. Every seeded insight is
// pending review (nil LastReviewed) with a next-review date of now.
func Seed(now time.Time) ([]domain.Book, []domain.Insight, []domain.Quote) {
	books := []domain.Book{
		{
			ID:        uuid.NewString(),
			Title:     "Clean Code",
			Author:    "Robert C. Martin",
			CoverURL:  PlaceholderCover,
			DateAdded: now,
			Tags:      []string{"programming", "best practices", "software engineering"},
		},
		{
			ID:        uuid.NewString(),
			Title:     "Design Patterns",
			Author:    "Erich Gamma, Richard Helm, Ralph Johnson, John Vlissides",
			CoverURL:  PlaceholderCover,
			DateAdded: now,
			Tags:      []string{"software design", "patterns", "architecture"},
		},
	}

	due := now
	insights := []domain.Insight{
		{
			ID:             uuid.NewString(),
			BookID:         books[0].ID,
			Content:        "Functions should be small and focused on doing one thing.",
			Tags:           []string{"programming", "best practices"},
			DateAdded:      now,
			LastReviewed:   nil,
			NextReviewDate: &due,
		},
		{
			ID:             uuid.NewString(),
			BookID:         books[1].ID,
			Content:        "The Factory Method pattern provides an interface for creating objects in a superclass, but allows subclasses to alter the type of objects that will be created.",
			Tags:           []string{"patterns", "design"},
			DateAdded:      now,
			LastReviewed:   nil,
			NextReviewDate: &due,
		},
	}

	quotes := []domain.Quote{
		{
			ID:        uuid.NewString(),
			BookID:    books[0].ID,
			Content:   "Clean code is not written by following a set of rules. You don't need to know design patterns or the latest programming techniques to write clean code.",
			DateAdded: now,
		},
		{
			ID:        uuid.NewString(),
			BookID:    books[1].ID,
			Content:   "The Factory Method pattern provides a way to create objects without specifying the exact class of object that will be created.",
			DateAdded: now,
		},
	}

	return books, insights, quotes
}
