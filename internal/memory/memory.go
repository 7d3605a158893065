// Package memory keeps the chapter titles and subheadings produced across
// runs that share the same backing file.
//
// The store is populated after every planned book but is not consulted when
// new plans are generated.
package memory

import (
	"context"
	"fmt"
	"strings"
)

// Store is the process-wide record of seen titles and subheadings. It has a
// single writer and no locking.
type Store struct {
	Titles      []string `json:"titles"`
	Subheadings []string `json:"subheadings"`

	seenTitles map[string]struct{}
	seenSubs   map[string]struct{}
}

func New() *Store {
	return &Store{Titles: []string{}, Subheadings: []string{}}
}

// Record adds a chapter title and its subheadings, ignoring entries already
// present.
func (s *Store) Record(title string, subheadings []string) {
	s.index()
	if t := strings.TrimSpace(title); t != "" {
		if _, ok := s.seenTitles[t]; !ok {
			s.seenTitles[t] = struct{}{}
			s.Titles = append(s.Titles, t)
		}
	}
	for _, sh := range subheadings {
		sh = strings.TrimSpace(sh)
		if sh == "" {
			continue
		}
		if _, ok := s.seenSubs[sh]; ok {
			continue
		}
		s.seenSubs[sh] = struct{}{}
		s.Subheadings = append(s.Subheadings, sh)
	}
}

func (s *Store) index() {
	if s.seenTitles != nil {
		return
	}
	s.seenTitles = make(map[string]struct{}, len(s.Titles))
	for _, t := range s.Titles {
		s.seenTitles[t] = struct{}{}
	}
	s.seenSubs = make(map[string]struct{}, len(s.Subheadings))
	for _, sh := range s.Subheadings {
		s.seenSubs[sh] = struct{}{}
	}
}

// Backend loads and saves a Store.
type Backend interface {
	Load(ctx context.Context) (*Store, error)
	Save(ctx context.Context, s *Store) error
}

// Open returns the backend named kind ("json" or "sqlite") at path.
func Open(kind, path string) (Backend, error) {
	switch strings.ToLower(kind) {
	case "", "json":
		return &JSONFile{Path: path}, nil
	case "sqlite":
		return &SQLite{Path: path}, nil
	default:
		return nil, fmt.Errorf("unknown memory backend %q", kind)
	}
}
