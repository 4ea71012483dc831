package storage

import (
	"errors"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

var (
	// ErrNoImages is returned when searching a session nothing was saved to yet
	ErrNoImages = errors.New("no images in this session")

	// ErrNoMatches is returned when no stored path matches the query
	ErrNoMatches = errors.New("no matches found")
)

// Matcher reports whether a stored path matches a query
type Matcher func(query, path string) bool

// Substring matches when query is a case-insensitive substring of path
func Substring(query, path string) bool {
	return strings.Contains(strings.ToLower(path), strings.ToLower(query))
}

// Fuzzy matches when the characters of query appear in order in path, ignoring case
func Fuzzy(query, path string) bool {
	return fuzzy.MatchFold(query, path)
}

// Match is a stored path together with its position in a search result
type Match struct {
	Index int
	Path  string
}

// Session holds the paths of images saved during one run, in fetch order.
// It only ever grows.
type Session struct {
	paths []string
	mu    sync.RWMutex
}

func New() *Session {
	return &Session{}
}

// Add records a saved image. Callers add a path only after the file is on disk.
func (s *Session) Add(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, path)
}

func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.paths)
}

// All returns a copy of the stored paths in insertion order
func (s *Session) All() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]string, len(s.paths))
	copy(result, s.paths)
	return result
}

// Search returns the stored paths accepted by match, in insertion order.
// A nil match means Substring.
func (s *Session) Search(query string, match Matcher) ([]Match, error) {
	if match == nil {
		match = Substring
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.paths) == 0 {
		return nil, ErrNoImages
	}

	var matches []Match
	for _, path := range s.paths {
		if match(query, path) {
			matches = append(matches, Match{Index: len(matches), Path: path})
		}
	}

	if len(matches) == 0 {
		return nil, ErrNoMatches
	}
	return matches, nil
}
