// Package importer reconciles markdown note files into the tracker:
// books are created on first sight, insights flow through the normal
// add path so duplicate detection and notification rules apply.
package importer

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/conorfennell/insighttrack/internal/domain"
	"github.com/conorfennell/insighttrack/internal/gitsource"
	"github.com/conorfennell/insighttrack/internal/mdimport"
	"github.com/conorfennell/insighttrack/internal/persist"
	"github.com/conorfennell/insighttrack/internal/tracker"
)

// Result summarizes one import run.
type Result struct {
	Files      int
	BooksAdded int
	Insights   int
	Duplicates int
	Errors     []error
}

// ImportDir walks dir for .md files and feeds every parsed note into
// the tracker. Parse failures are collected per file; they do not stop
// the run.
func ImportDir(tr *tracker.Tracker, dir string) (*Result, error) {
	result := &Result{}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		result.Files++
		notes, parseErr := mdimport.ParseFile(path)
		if parseErr != nil {
			result.Errors = append(result.Errors, fmt.Errorf("parsing %s: %w", path, parseErr))
			return nil
		}
		for _, note := range notes {
			importNote(tr, note, result)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	slog.Info("import complete",
		"dir", dir,
		"files", result.Files,
		"books_added", result.BooksAdded,
		"insights", result.Insights,
		"duplicates", result.Duplicates,
		"errors", len(result.Errors),
	)
	return result, nil
}

// ImportGit clones or updates the repository at repoURL under reposDir
// and imports its note files.
func ImportGit(tr *tracker.Tracker, repoURL, reposDir string) (*Result, error) {
	localPath, err := gitsource.LocalPath(reposDir, repoURL)
	if err != nil {
		return nil, err
	}
	if err := gitsource.CloneOrPull(repoURL, localPath); err != nil {
		return nil, err
	}
	return ImportDir(tr, localPath)
}

func importNote(tr *tracker.Tracker, note mdimport.Note, result *Result) {
	book, ok := findBook(tr, note.BookTitle, note.BookAuthor)
	if !ok {
		book = tr.AddBook(domain.BookFields{
			Title:    note.BookTitle,
			Author:   note.BookAuthor,
			CoverURL: persist.PlaceholderCover,
		})
		result.BooksAdded++
	}

	_, err := tr.AddInsight(domain.InsightFields{
		BookID:  book.ID,
		Content: note.Content,
		Tags:    note.Tags,
	})
	if errors.Is(err, tracker.ErrDuplicateInsight) {
		result.Duplicates++
		return
	}
	if err != nil {
		result.Errors = append(result.Errors, err)
		return
	}
	result.Insights++
}

// findBook matches on title, and on author when the note names one, so
// repeated imports land on the same book.
func findBook(tr *tracker.Tracker, title, author string) (domain.Book, bool) {
	for _, b := range tr.Books() {
		if !strings.EqualFold(b.Title, title) {
			continue
		}
		if author != "" && !strings.EqualFold(b.Author, author) {
			continue
		}
		return b, true
	}
	return domain.Book{}, false
}
