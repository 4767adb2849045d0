package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/conorfennell/insighttrack/internal/domain"
	"github.com/conorfennell/insighttrack/internal/tracker"
	"github.com/google/uuid"
)

type bookView struct {
	domain.Book
	InsightCount int
	QuoteCount   int
}

type booksPageView struct {
	Books        []bookView
	Tags         []string
	SelectedTag  string
	PendingCount int
}

type bookDetailView struct {
	Book     domain.Book
	Insights []domain.Insight
	Quotes   []domain.Quote
}

type reviewItem struct {
	domain.Insight
	BookTitle string
}

type reviewPageView struct {
	Items []reviewItem
}

// handleLogin is an auth stub: any submitted credentials are accepted
// and only the cookie's presence is ever checked afterwards.
func (s *Server) handleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.render(w, "login", nil)
		case http.MethodPost:
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    uuid.NewString(),
				Path:     "/",
				HttpOnly: true,
			})
			http.Redirect(w, r, "/", http.StatusSeeOther)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) handleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func (s *Server) booksPage(selectedTag string) booksPageView {
	view := booksPageView{SelectedTag: selectedTag}
	tagSeen := make(map[string]bool)

	for _, book := range s.tracker.Books() {
		for _, tag := range book.Tags {
			if !tagSeen[tag] {
				tagSeen[tag] = true
				view.Tags = append(view.Tags, tag)
			}
		}
		if selectedTag != "" && !hasTag(book.Tags, selectedTag) {
			continue
		}
		view.Books = append(view.Books, bookView{
			Book:         book,
			InsightCount: len(s.tracker.BookInsights(book.ID)),
			QuoteCount:   len(s.tracker.BookQuotes(book.ID)),
		})
	}
	view.PendingCount = len(s.reviewQueue())
	return view
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, want) {
			return true
		}
	}
	return false
}

func (s *Server) handleBooksPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.render(w, "books", s.booksPage(r.URL.Query().Get("tag")))
	}
}

func (s *Server) handlePostBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		title := r.PostFormValue("title")
		if title == "" {
			http.Error(w, "Title cannot be empty", http.StatusBadRequest)
			return
		}
		s.tracker.AddBook(domain.BookFields{
			Title:    title,
			Author:   r.PostFormValue("author"),
			CoverURL: r.PostFormValue("coverUrl"),
			Tags:     splitTags(r.PostFormValue("tags")),
		})
		s.render(w, "book_list", s.booksPage(""))
	}
}

// handleBook serves /books/{id}: GET renders the detail page, POST
// applies a partial edit, DELETE removes the book and cascades.
func (s *Server) handleBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/books/")

		switch r.Method {
		case http.MethodGet:
			book, ok := s.tracker.Book(id)
			if !ok {
				http.NotFound(w, r)
				return
			}
			s.render(w, "book_detail", bookDetailView{
				Book:     book,
				Insights: s.tracker.BookInsights(id),
				Quotes:   s.tracker.BookQuotes(id),
			})
		case http.MethodPost:
			s.tracker.EditBook(id, domain.BookFields{
				Title:    r.PostFormValue("title"),
				Author:   r.PostFormValue("author"),
				CoverURL: r.PostFormValue("coverUrl"),
				Tags:     splitTags(r.PostFormValue("tags")),
			})
			s.render(w, "book_list", s.booksPage(""))
		case http.MethodDelete:
			s.tracker.DeleteBook(id)
			s.render(w, "book_list", s.booksPage(""))
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) handlePostInsight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		bookID := r.PostFormValue("bookId")
		if _, ok := s.tracker.Book(bookID); !ok {
			http.Error(w, "Unknown book", http.StatusBadRequest)
			return
		}

		_, err := s.tracker.AddInsight(domain.InsightFields{
			BookID:  bookID,
			Content: r.PostFormValue("content"),
			Tags:    splitTags(r.PostFormValue("tags")),
		})
		if errors.Is(err, tracker.ErrDuplicateInsight) {
			// The one user-facing rejection in the system.
			http.Error(w, "Duplicate insight detected. Please review your existing insights.", http.StatusConflict)
			return
		}
		s.renderBookDetail(w, r, bookID)
	}
}

// handleInsight serves /insights/{id}: PUT replaces content and tags,
// DELETE removes the insight.
func (s *Server) handleInsight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/insights/")
		insight, ok := s.tracker.Insight(id)

		switch r.Method {
		case http.MethodPut:
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Bad form", http.StatusBadRequest)
				return
			}
			s.tracker.EditInsight(id, r.PostFormValue("content"), splitTags(r.PostFormValue("tags")))
		case http.MethodDelete:
			s.tracker.DeleteInsight(id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if !ok {
			// Unknown ids are a silent no-op; nothing to re-render.
			w.WriteHeader(http.StatusNoContent)
			return
		}
		s.renderBookDetail(w, r, insight.BookID)
	}
}

func (s *Server) handlePostQuote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		bookID := r.PostFormValue("bookId")
		if _, ok := s.tracker.Book(bookID); !ok {
			http.Error(w, "Unknown book", http.StatusBadRequest)
			return
		}
		page, _ := strconv.Atoi(r.PostFormValue("pageNumber"))
		s.tracker.AddQuote(domain.QuoteFields{
			BookID:     bookID,
			Content:    r.PostFormValue("content"),
			PageNumber: page,
			Tags:       splitTags(r.PostFormValue("tags")),
		})
		s.renderBookDetail(w, r, bookID)
	}
}

// handleQuote serves /quotes/{id}: PUT merges provided fields, DELETE
// removes the quote.
func (s *Server) handleQuote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/quotes/")
		quote, ok := s.tracker.Quote(id)

		switch r.Method {
		case http.MethodPut:
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Bad form", http.StatusBadRequest)
				return
			}
			page, _ := strconv.Atoi(r.PostFormValue("pageNumber"))
			s.tracker.EditQuote(id, domain.QuoteFields{
				Content:    r.PostFormValue("content"),
				PageNumber: page,
				Tags:       splitTags(r.PostFormValue("tags")),
			})
		case http.MethodDelete:
			s.tracker.DeleteQuote(id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		s.renderBookDetail(w, r, quote.BookID)
	}
}

// reviewQueue is the notification set filtered, at render time, to
// insights whose book still exists.
func (s *Server) reviewQueue() []reviewItem {
	var items []reviewItem
	for _, insight := range s.tracker.Notifications() {
		book, ok := s.tracker.Book(insight.BookID)
		if !ok {
			continue
		}
		items = append(items, reviewItem{Insight: insight, BookTitle: book.Title})
	}
	return items
}

func (s *Server) handleReviewPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.render(w, "review", reviewPageView{Items: s.reviewQueue()})
	}
}

func (s *Server) handlePostReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/review/")
		s.tracker.ReviewInsight(id)
		s.render(w, "review_queue", reviewPageView{Items: s.reviewQueue()})
	}
}

func (s *Server) renderBookDetail(w http.ResponseWriter, r *http.Request, bookID string) {
	book, ok := s.tracker.Book(bookID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.render(w, "book_detail", bookDetailView{
		Book:     book,
		Insights: s.tracker.BookInsights(bookID),
		Quotes:   s.tracker.BookQuotes(bookID),
	})
}

func splitTags(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}
