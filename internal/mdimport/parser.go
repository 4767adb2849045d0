// Package mdimport parses plain-text note files into book insights.
//
// A note file is a sequence of blocks separated by "---" lines:
//
//	Book: Clean Code
//	Author: Robert C. Martin
//	Insight: Functions should be small
//	and focused on doing one thing.
//	Tags: programming, best practices
//	---
//	Insight: Names should reveal intent.
//
// Book and Author lines are sticky: once seen, they apply to every
// following insight until the next Book line.
package mdimport

import (
	"bufio"
	"io"
	"os"
	"strings"
)

const (
	bookPrefix    = "Book:"
	authorPrefix  = "Author:"
	insightPrefix = "Insight:"
	tagsPrefix    = "Tags:"
)

type state int

const (
	seeking state = iota
	readingInsight
)

// Note is one parsed insight together with the book it belongs to.
type Note struct {
	BookTitle  string
	BookAuthor string
	Content    string
	Tags       []string
}

// ParseFile reads a file from the given path and extracts all notes.
func ParseFile(path string) ([]Note, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads from an io.Reader and extracts all notes.
func Parse(r io.Reader) ([]Note, error) {
	scanner := bufio.NewScanner(r)
	var notes []Note
	var currentBook, currentAuthor string
	var currentTags []string
	var currentBlock []string
	currentState := seeking

	finishNote := func() {
		if currentState == readingInsight {
			content := strings.TrimSpace(strings.Join(currentBlock, "\n"))
			if content != "" && currentBook != "" {
				notes = append(notes, Note{
					BookTitle:  currentBook,
					BookAuthor: currentAuthor,
					Content:    content,
					Tags:       currentTags,
				})
			}
		}
		currentBlock = nil
		currentTags = nil
		currentState = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "---":
			finishNote()
		case strings.HasPrefix(line, bookPrefix):
			finishNote()
			currentBook = strings.TrimSpace(line[len(bookPrefix):])
			currentAuthor = ""
		case strings.HasPrefix(line, authorPrefix):
			currentAuthor = strings.TrimSpace(line[len(authorPrefix):])
		case strings.HasPrefix(line, insightPrefix):
			finishNote()
			currentState = readingInsight
			currentBlock = append(currentBlock, strings.TrimSpace(line[len(insightPrefix):]))
		case strings.HasPrefix(line, tagsPrefix):
			currentTags = splitTags(line[len(tagsPrefix):])
		case currentState == readingInsight:
			currentBlock = append(currentBlock, line)
		}
	}

	finishNote() // Finish the very last note in the file

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return notes, nil
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
