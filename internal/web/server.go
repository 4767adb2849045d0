// Package web serves the local HTMX UI over the tracker.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/conorfennell/insighttrack/internal/tracker"
)

//go:embed all:static
var staticFiles embed.FS

//go:embed all:templates
var templateFiles embed.FS

// sessionCookie names the stub session cookie. Login performs no real
// credential check; the cookie's presence is all the middleware looks at.
const sessionCookie = "insighttrack_session"

// Server holds the dependencies for the HTTP server.
type Server struct {
	tracker   *tracker.Tracker
	router    *http.ServeMux
	templates *template.Template
}

// NewServer creates and configures a new server over the tracker.
func NewServer(tr *tracker.Tracker) *Server {
	tpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	s := &Server{
		tracker:   tr,
		router:    http.NewServeMux(),
		templates: tpl,
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatalf("Failed to create sub-filesystem for static assets: %v", err)
	}
	s.router.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.router.HandleFunc("/login", s.handleLogin())
	s.router.HandleFunc("/logout", s.handleLogout())

	s.router.HandleFunc("/", s.requireSession(s.handleBooksPage()))
	s.router.HandleFunc("/books", s.requireSession(s.handlePostBook()))
	s.router.HandleFunc("/books/", s.requireSession(s.handleBook()))
	s.router.HandleFunc("/insights", s.requireSession(s.handlePostInsight()))
	s.router.HandleFunc("/insights/", s.requireSession(s.handleInsight()))
	s.router.HandleFunc("/quotes", s.requireSession(s.handlePostQuote()))
	s.router.HandleFunc("/quotes/", s.requireSession(s.handleQuote()))
	s.router.HandleFunc("/review", s.requireSession(s.handleReviewPage()))
	s.router.HandleFunc("/review/", s.requireSession(s.handlePostReview()))
}

// requireSession redirects to the login page when the stub session
// cookie is absent. It never validates the cookie's contents.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie(sessionCookie); err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}
