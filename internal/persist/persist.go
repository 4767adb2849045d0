// Package persist mirrors the in-memory collections to the key-value
// store and reconstructs them on startup. Each collection lives under
// its own key as a JSON array; timestamps travel as ISO-8601 strings.
package persist

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/conorfennell/insighttrack/internal/domain"
	"github.com/conorfennell/insighttrack/internal/kvstore"
)

// Storage keys for the three collections and the notification cache.
// The notification cache is written on every insight save but never
// trusted on load; the pending set is always recomputed from insights.
const (
	BooksKey         = "book-insight-tracker-books"
	InsightsKey      = "book-insight-tracker-insights"
	QuotesKey        = "book-insight-tracker-quotes"
	NotificationsKey = "book-insight-tracker-notifications"
)

// timeFormat is ISO-8601 with millisecond precision, matching what the
// stored records use for every date field.
const timeFormat = "2006-01-02T15:04:05.000Z07:00"

type bookRecord struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	CoverURL  string   `json:"coverUrl"`
	DateAdded string   `json:"dateAdded"`
	Tags      []string `json:"tags,omitempty"`
}

type insightRecord struct {
	ID             string   `json:"id"`
	BookID         string   `json:"bookId"`
	Content        string   `json:"content"`
	Tags           []string `json:"tags"`
	DateAdded      string   `json:"dateAdded"`
	LastReviewed   *string  `json:"lastReviewed"`
	NextReviewDate *string  `json:"nextReviewDate"`
}

type quoteRecord struct {
	ID         string   `json:"id"`
	BookID     string   `json:"bookId"`
	Content    string   `json:"content"`
	PageNumber int      `json:"pageNumber,omitempty"`
	DateAdded  string   `json:"dateAdded"`
	Tags       []string `json:"tags,omitempty"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

// parseTimePtr normalizes an absent timestamp field to nil.
func parseTimePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseTime(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func encodeBooks(books []domain.Book) ([]byte, error) {
	records := make([]bookRecord, 0, len(books))
	for _, b := range books {
		records = append(records, bookRecord{
			ID:        b.ID,
			Title:     b.Title,
			Author:    b.Author,
			CoverURL:  b.CoverURL,
			DateAdded: formatTime(b.DateAdded),
			Tags:      b.Tags,
		})
	}
	return json.Marshal(records)
}

func decodeBooks(data []byte) ([]domain.Book, error) {
	var records []bookRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal books: %w", err)
	}

	books := make([]domain.Book, 0, len(records))
	for _, r := range records {
		added, err := parseTime(r.DateAdded)
		if err != nil {
			return nil, fmt.Errorf("book %s: %w", r.ID, err)
		}
		books = append(books, domain.Book{
			ID:        r.ID,
			Title:     r.Title,
			Author:    r.Author,
			CoverURL:  r.CoverURL,
			DateAdded: added,
			Tags:      r.Tags,
		})
	}
	return books, nil
}

func encodeInsights(insights []domain.Insight) ([]byte, error) {
	records := make([]insightRecord, 0, len(insights))
	for _, i := range insights {
		records = append(records, insightRecord{
			ID:             i.ID,
			BookID:         i.BookID,
			Content:        i.Content,
			Tags:           i.Tags,
			DateAdded:      formatTime(i.DateAdded),
			LastReviewed:   formatTimePtr(i.LastReviewed),
			NextReviewDate: formatTimePtr(i.NextReviewDate),
		})
	}
	return json.Marshal(records)
}

func decodeInsights(data []byte) ([]domain.Insight, error) {
	var records []insightRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal insights: %w", err)
	}

	insights := make([]domain.Insight, 0, len(records))
	for _, r := range records {
		added, err := parseTime(r.DateAdded)
		if err != nil {
			return nil, fmt.Errorf("insight %s: %w", r.ID, err)
		}
		reviewed, err := parseTimePtr(r.LastReviewed)
		if err != nil {
			return nil, fmt.Errorf("insight %s: %w", r.ID, err)
		}
		due, err := parseTimePtr(r.NextReviewDate)
		if err != nil {
			return nil, fmt.Errorf("insight %s: %w", r.ID, err)
		}
		insights = append(insights, domain.Insight{
			ID:             r.ID,
			BookID:         r.BookID,
			Content:        r.Content,
			Tags:           r.Tags,
			DateAdded:      added,
			LastReviewed:   reviewed,
			NextReviewDate: due,
		})
	}
	return insights, nil
}

func encodeQuotes(quotes []domain.Quote) ([]byte, error) {
	records := make([]quoteRecord, 0, len(quotes))
	for _, q := range quotes {
		records = append(records, quoteRecord{
			ID:         q.ID,
			BookID:     q.BookID,
			Content:    q.Content,
			PageNumber: q.PageNumber,
			DateAdded:  formatTime(q.DateAdded),
			Tags:       q.Tags,
		})
	}
	return json.Marshal(records)
}

func decodeQuotes(data []byte) ([]domain.Quote, error) {
	var records []quoteRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal quotes: %w", err)
	}

	quotes := make([]domain.Quote, 0, len(records))
	for _, r := range records {
		added, err := parseTime(r.DateAdded)
		if err != nil {
			return nil, fmt.Errorf("quote %s: %w", r.ID, err)
		}
		quotes = append(quotes, domain.Quote{
			ID:         r.ID,
			BookID:     r.BookID,
			Content:    r.Content,
			PageNumber: r.PageNumber,
			DateAdded:  added,
			Tags:       r.Tags,
		})
	}
	return quotes, nil
}

// SaveBooks serializes the book collection and writes it under its key.
func SaveBooks(store kvstore.Store, books []domain.Book) error {
	data, err := encodeBooks(books)
	if err != nil {
		return fmt.Errorf("encode books: %w", err)
	}
	if err := store.Set(BooksKey, data); err != nil {
		return fmt.Errorf("save books: %w", err)
	}
	return nil
}

// SaveInsights serializes the insight collection and, as a side effect
// of the same trigger, the notification cache.
func SaveInsights(store kvstore.Store, insights, notifications []domain.Insight) error {
	data, err := encodeInsights(insights)
	if err != nil {
		return fmt.Errorf("encode insights: %w", err)
	}
	if err := store.Set(InsightsKey, data); err != nil {
		return fmt.Errorf("save insights: %w", err)
	}

	cache, err := encodeInsights(notifications)
	if err != nil {
		return fmt.Errorf("encode notifications: %w", err)
	}
	if err := store.Set(NotificationsKey, cache); err != nil {
		return fmt.Errorf("save notifications: %w", err)
	}
	return nil
}

// SaveQuotes serializes the quote collection and writes it under its key.
func SaveQuotes(store kvstore.Store, quotes []domain.Quote) error {
	data, err := encodeQuotes(quotes)
	if err != nil {
		return fmt.Errorf("encode quotes: %w", err)
	}
	if err := store.Set(QuotesKey, data); err != nil {
		return fmt.Errorf("save quotes: %w", err)
	}
	return nil
}

// Load reconstructs the three collections from the store. A missing
// key, an unreadable value, and a corrupt value are treated the same
// way: the store counts as uninitialized and the sample dataset is
// returned with seeded=true. The notification cache is ignored here;
// the caller recomputes the pending set from the insights.
func Load(store kvstore.Store, now time.Time) (books []domain.Book, insights []domain.Insight, quotes []domain.Quote, seeded bool) {
	booksData, booksErr := store.Get(BooksKey)
	insightsData, insightsErr := store.Get(InsightsKey)
	quotesData, quotesErr := store.Get(QuotesKey)
	if booksErr != nil || insightsErr != nil || quotesErr != nil {
		books, insights, quotes = Seed(now)
		return books, insights, quotes, true
	}

	books, err := decodeBooks(booksData)
	if err == nil {
		insights, err = decodeInsights(insightsData)
	}
	if err == nil {
		quotes, err = decodeQuotes(quotesData)
	}
	if err != nil {
		books, insights, quotes = Seed(now)
		return books, insights, quotes, true
	}
	return books, insights, quotes, false
}
