package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/conorfennell/insighttrack/internal/domain"
	"github.com/conorfennell/insighttrack/internal/kvstore"
	"github.com/conorfennell/insighttrack/internal/persist"
	"github.com/conorfennell/insighttrack/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *tracker.Tracker) {
	t.Helper()
	store := kvstore.NewMemory()
	require.NoError(t, persist.SaveBooks(store, nil))
	require.NoError(t, persist.SaveInsights(store, nil, nil))
	require.NoError(t, persist.SaveQuotes(store, nil))
	tr := tracker.New(store)
	return NewServer(tr), tr
}

func withSession(r *http.Request) *http.Request {
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: "anything"})
	return r
}

func postForm(s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.ServeHTTP(w, withSession(r))
	return w
}

func TestRedirectsToLoginWithoutSession(t *testing.T) {
	s, _ := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestLoginStubAcceptsAnything(t *testing.T) {
	s, _ := newTestServer(t)

	form := url.Values{"email": {"someone@example.com"}, "password": {"whatever"}}
	r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, sessionCookie, cookies[0].Name)
}

func TestBooksPage(t *testing.T) {
	s, tr := newTestServer(t)
	tr.AddBook(domain.BookFields{Title: "Deep Work", Author: "Cal Newport", Tags: []string{"focus"}})

	r := withSession(httptest.NewRequest(http.MethodGet, "/", nil))
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Deep Work")
	assert.Contains(t, w.Body.String(), "focus")
}

func TestBooksPageTagFilter(t *testing.T) {
	s, tr := newTestServer(t)
	tr.AddBook(domain.BookFields{Title: "Deep Work", Tags: []string{"focus"}})
	tr.AddBook(domain.BookFields{Title: "Clean Code", Tags: []string{"programming"}})

	r := withSession(httptest.NewRequest(http.MethodGet, "/?tag=focus", nil))
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)

	body := w.Body.String()
	assert.Contains(t, body, "Deep Work")
	assert.NotContains(t, body, "Clean Code")
}

func TestAddBookRequiresTitle(t *testing.T) {
	s, tr := newTestServer(t)

	w := postForm(s, "/books", url.Values{"author": {"Nobody"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, tr.Books())
}

func TestAddInsightDuplicateConflict(t *testing.T) {
	s, tr := newTestServer(t)
	book := tr.AddBook(domain.BookFields{Title: "Clean Code"})

	form := url.Values{
		"bookId":  {book.ID},
		"content": {"Functions should do one thing."},
		"tags":    {"a, b"},
	}
	w := postForm(s, "/insights", form)
	assert.Equal(t, http.StatusOK, w.Code)

	w = postForm(s, "/insights", form)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Duplicate insight detected")
	assert.Len(t, tr.Insights(), 1)
}

func TestReviewQueueSkipsDeletedBooks(t *testing.T) {
	s, tr := newTestServer(t)
	kept := tr.AddBook(domain.BookFields{Title: "Kept"})
	doomed := tr.AddBook(domain.BookFields{Title: "Doomed"})
	_, err := tr.AddInsight(domain.InsightFields{BookID: kept.ID, Content: "stays"})
	require.NoError(t, err)
	_, err = tr.AddInsight(domain.InsightFields{BookID: doomed.ID, Content: "goes"})
	require.NoError(t, err)

	tr.DeleteBook(doomed.ID)

	r := withSession(httptest.NewRequest(http.MethodGet, "/review", nil))
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)

	body := w.Body.String()
	assert.Contains(t, body, "stays")
	assert.NotContains(t, body, "goes")
}

func TestPostReviewEmptiesQueue(t *testing.T) {
	s, tr := newTestServer(t)
	book := tr.AddBook(domain.BookFields{Title: "Clean Code"})
	insight, err := tr.AddInsight(domain.InsightFields{BookID: book.ID, Content: "takeaway"})
	require.NoError(t, err)

	w := postForm(s, "/review/"+insight.ID, url.Values{})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Nothing to review")
	assert.Empty(t, tr.Notifications())
}

func TestDeleteUnknownInsightIsNoOp(t *testing.T) {
	s, _ := newTestServer(t)

	r := withSession(httptest.NewRequest(http.MethodDelete, "/insights/nope", nil))
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
