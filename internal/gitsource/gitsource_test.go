package gitsource

import (
	"path/filepath"
	"testing"
)

func TestLocalPath(t *testing.T) {
	testCases := []struct {
		name     string
		url      string
		expected string
		wantErr  bool
	}{
		{
			name:     "https URL",
			url:      "https://github.com/someone/reading-notes.git",
			expected: filepath.Join("repos", "github.com", "someone", "reading-notes"),
		},
		{
			name:     "scp-style URL",
			url:      "git@github.com:someone/reading-notes.git",
			expected: filepath.Join("repos", "github.com", "someone", "reading-notes"),
		},
		{
			name:    "unparseable URL",
			url:     "not-a-repo",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LocalPath("repos", tc.url)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Expected an error for %q, got path %q", tc.url, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("LocalPath returned unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}
