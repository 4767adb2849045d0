// Package tracker owns the in-memory book, insight, and quote
// collections and the derived notification set. Every mutation is
// applied atomically in memory and then mirrored to the key-value
// store; mirror failures are logged, never surfaced.
package tracker

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/conorfennell/insighttrack/internal/domain"
	"github.com/conorfennell/insighttrack/internal/kvstore"
	"github.com/conorfennell/insighttrack/internal/persist"
	"github.com/conorfennell/insighttrack/internal/schedule"
	"github.com/google/uuid"
)

// ErrDuplicateInsight is returned when an added insight exactly matches
// an existing one: same book, same content, same tags in the same
// order. The comparison is order-sensitive on purpose; the same tags in
// a different order count as a different insight.
var ErrDuplicateInsight = errors.New("tracker: duplicate insight")

// Tracker is the single owner of all collections. It is not safe for
// concurrent use; the application drives it from one goroutine.
type Tracker struct {
	store kvstore.Store
	now   func() time.Time

	books         []domain.Book
	insights      []domain.Insight
	quotes        []domain.Quote
	notifications []domain.Insight
}

// New loads the collections from the store, seeding sample data if the
// store is uninitialized or unreadable, and recomputes the notification
// set from the loaded insights.
func New(store kvstore.Store) *Tracker {
	t := &Tracker{store: store, now: time.Now}

	books, insights, quotes, seeded := persist.Load(store, t.now())
	t.books = books
	t.insights = insights
	t.quotes = quotes
	t.notifications = pendingReview(insights)

	if seeded {
		slog.Info("store uninitialized, seeded sample data",
			"books", len(books), "insights", len(insights), "quotes", len(quotes))
		t.saveBooks()
		t.saveInsights()
		t.saveQuotes()
	}
	return t
}

// pendingReview filters insights to those never reviewed. This is the
// notification set; rendering additionally drops insights whose book no
// longer exists.
func pendingReview(insights []domain.Insight) []domain.Insight {
	pending := make([]domain.Insight, 0, len(insights))
	for _, i := range insights {
		if i.LastReviewed == nil {
			pending = append(pending, i)
		}
	}
	return pending
}

// normalizeTags trims entries and drops duplicates, keeping first-seen
// order. An insight never carries the same tag twice.
func normalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// Books returns the book collection in insertion order. The returned
// slice is shared; callers must not mutate it.
func (t *Tracker) Books() []domain.Book { return t.books }

// Insights returns the insight collection in insertion order.
func (t *Tracker) Insights() []domain.Insight { return t.insights }

// Quotes returns the quote collection in insertion order.
func (t *Tracker) Quotes() []domain.Quote { return t.quotes }

// Notifications returns the derived set of insights pending review.
func (t *Tracker) Notifications() []domain.Insight { return t.notifications }

// Book looks up a book by id.
func (t *Tracker) Book(id string) (domain.Book, bool) {
	for _, b := range t.books {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Book{}, false
}

// Insight looks up an insight by id.
func (t *Tracker) Insight(id string) (domain.Insight, bool) {
	for _, i := range t.insights {
		if i.ID == id {
			return i, true
		}
	}
	return domain.Insight{}, false
}

// Quote looks up a quote by id.
func (t *Tracker) Quote(id string) (domain.Quote, bool) {
	for _, q := range t.quotes {
		if q.ID == id {
			return q, true
		}
	}
	return domain.Quote{}, false
}

// BookInsights returns the insights belonging to a book, in insertion
// order.
func (t *Tracker) BookInsights(bookID string) []domain.Insight {
	var out []domain.Insight
	for _, i := range t.insights {
		if i.BookID == bookID {
			out = append(out, i)
		}
	}
	return out
}

// BookQuotes returns the quotes belonging to a book, in insertion order.
func (t *Tracker) BookQuotes(bookID string) []domain.Quote {
	var out []domain.Quote
	for _, q := range t.quotes {
		if q.BookID == bookID {
			out = append(out, q)
		}
	}
	return out
}

// AddBook creates a book with a fresh id and the current timestamp and
// appends it to the collection. Titles and authors are not checked for
// uniqueness.
func (t *Tracker) AddBook(fields domain.BookFields) domain.Book {
	book := domain.Book{
		ID:        uuid.NewString(),
		Title:     fields.Title,
		Author:    fields.Author,
		CoverURL:  fields.CoverURL,
		DateAdded: t.now(),
		Tags:      fields.Tags,
	}
	t.books = append(t.books, book)
	t.saveBooks()
	return book
}

// EditBook overwrites each provided field of the book; empty fields
// leave the stored value unchanged. Unknown ids are a no-op.
func (t *Tracker) EditBook(id string, fields domain.BookFields) Outcome {
	for idx := range t.books {
		if t.books[idx].ID != id {
			continue
		}
		book := &t.books[idx]
		if fields.Title != "" {
			book.Title = fields.Title
		}
		if fields.Author != "" {
			book.Author = fields.Author
		}
		if fields.CoverURL != "" {
			book.CoverURL = fields.CoverURL
		}
		if len(fields.Tags) > 0 {
			book.Tags = fields.Tags
		}
		t.saveBooks()
		return Applied
	}
	return NotFound
}

// DeleteBook removes the book and cascades to every insight and quote
// that references it, then recomputes the notification set from the
// surviving insights.
func (t *Tracker) DeleteBook(id string) Outcome {
	books := make([]domain.Book, 0, len(t.books))
	for _, b := range t.books {
		if b.ID != id {
			books = append(books, b)
		}
	}
	if len(books) == len(t.books) {
		return NotFound
	}
	t.books = books

	insights := make([]domain.Insight, 0, len(t.insights))
	for _, i := range t.insights {
		if i.BookID != id {
			insights = append(insights, i)
		}
	}
	t.insights = insights

	quotes := make([]domain.Quote, 0, len(t.quotes))
	for _, q := range t.quotes {
		if q.BookID != id {
			quotes = append(quotes, q)
		}
	}
	t.quotes = quotes

	t.notifications = pendingReview(t.insights)
	t.saveBooks()
	t.saveInsights()
	t.saveQuotes()
	return Applied
}

// AddInsight creates an insight pending review and appends it to both
// the insight collection and the notification set. The add is rejected
// with ErrDuplicateInsight if an exact match already exists.
func (t *Tracker) AddInsight(fields domain.InsightFields) (domain.Insight, error) {
	tags := normalizeTags(fields.Tags)
	joined := strings.Join(tags, ",")
	for _, existing := range t.insights {
		if existing.BookID == fields.BookID &&
			existing.Content == fields.Content &&
			strings.Join(existing.Tags, ",") == joined {
			return domain.Insight{}, ErrDuplicateInsight
		}
	}

	now := t.now()
	// NextReviewDate starts at "now" as a placeholder; the first real
	// schedule is computed when the insight is reviewed.
	due := now
	insight := domain.Insight{
		ID:             uuid.NewString(),
		BookID:         fields.BookID,
		Content:        fields.Content,
		Tags:           tags,
		DateAdded:      now,
		LastReviewed:   nil,
		NextReviewDate: &due,
	}
	t.insights = append(t.insights, insight)
	t.notifications = append(t.notifications, insight)
	t.saveInsights()
	return insight, nil
}

// EditInsight replaces the insight's content and tags wholesale,
// leaving its timestamps untouched, and re-filters the notification
// set. Unknown ids are a no-op.
func (t *Tracker) EditInsight(id string, content string, tags []string) Outcome {
	for idx := range t.insights {
		if t.insights[idx].ID != id {
			continue
		}
		t.insights[idx].Content = content
		t.insights[idx].Tags = normalizeTags(tags)
		t.notifications = pendingReview(t.insights)
		t.saveInsights()
		return Applied
	}
	return NotFound
}

// DeleteInsight removes the insight from the collection and from the
// notification set.
func (t *Tracker) DeleteInsight(id string) Outcome {
	insights := make([]domain.Insight, 0, len(t.insights))
	for _, i := range t.insights {
		if i.ID != id {
			insights = append(insights, i)
		}
	}
	if len(insights) == len(t.insights) {
		return NotFound
	}
	t.insights = insights

	notifications := make([]domain.Insight, 0, len(t.notifications))
	for _, n := range t.notifications {
		if n.ID != id {
			notifications = append(notifications, n)
		}
	}
	t.notifications = notifications
	t.saveInsights()
	return Applied
}

// ReviewInsight marks the insight reviewed now and schedules the next
// review from its pre-review state. The insight drops out of the
// notification set. Unknown ids are a no-op.
func (t *Tracker) ReviewInsight(id string) Outcome {
	for idx := range t.insights {
		if t.insights[idx].ID != id {
			continue
		}
		now := t.now()
		due := schedule.NextDueDate(t.insights[idx], now)
		reviewed := now
		t.insights[idx].LastReviewed = &reviewed
		t.insights[idx].NextReviewDate = &due
		t.notifications = pendingReview(t.insights)
		t.saveInsights()
		return Applied
	}
	return NotFound
}

// AddQuote creates a quote with a fresh id and the current timestamp.
// Quotes have no duplicate detection.
func (t *Tracker) AddQuote(fields domain.QuoteFields) domain.Quote {
	quote := domain.Quote{
		ID:         uuid.NewString(),
		BookID:     fields.BookID,
		Content:    fields.Content,
		PageNumber: fields.PageNumber,
		DateAdded:  t.now(),
		Tags:       fields.Tags,
	}
	t.quotes = append(t.quotes, quote)
	t.saveQuotes()
	return quote
}

// EditQuote merges the provided fields into the quote; zero-valued
// fields leave the stored value unchanged. Unknown ids are a no-op.
func (t *Tracker) EditQuote(id string, fields domain.QuoteFields) Outcome {
	for idx := range t.quotes {
		if t.quotes[idx].ID != id {
			continue
		}
		quote := &t.quotes[idx]
		if fields.Content != "" {
			quote.Content = fields.Content
		}
		if fields.PageNumber > 0 {
			quote.PageNumber = fields.PageNumber
		}
		if len(fields.Tags) > 0 {
			quote.Tags = fields.Tags
		}
		t.saveQuotes()
		return Applied
	}
	return NotFound
}

// DeleteQuote removes the quote from the collection.
func (t *Tracker) DeleteQuote(id string) Outcome {
	quotes := make([]domain.Quote, 0, len(t.quotes))
	for _, q := range t.quotes {
		if q.ID != id {
			quotes = append(quotes, q)
		}
	}
	if len(quotes) == len(t.quotes) {
		return NotFound
	}
	t.quotes = quotes
	t.saveQuotes()
	return Applied
}

func (t *Tracker) saveBooks() {
	if err := persist.SaveBooks(t.store, t.books); err != nil {
		slog.Warn("failed to mirror books to store", "error", err)
	}
}

func (t *Tracker) saveInsights() {
	if err := persist.SaveInsights(t.store, t.insights, t.notifications); err != nil {
		slog.Warn("failed to mirror insights to store", "error", err)
	}
}

func (t *Tracker) saveQuotes() {
	if err := persist.SaveQuotes(t.store, t.quotes); err != nil {
		slog.Warn("failed to mirror quotes to store", "error", err)
	}
}
