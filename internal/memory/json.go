package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/renameio/v2"
)

// JSONFile stores memory as {"titles": [...], "subheadings": [...]}.
type JSONFile struct {
	Path string
}

func (f *JSONFile) Load(ctx context.Context) (*Store, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read memory file: %w", err)
	}
	s := New()
	if err := json.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("parse memory file %s: %w", f.Path, err)
	}
	if s.Titles == nil {
		s.Titles = []string{}
	}
	if s.Subheadings == nil {
		s.Subheadings = []string{}
	}
	return s, nil
}

func (f *JSONFile) Save(ctx context.Context, s *Store) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(f.Path, b, 0o644); err != nil {
		return fmt.Errorf("write memory file: %w", err)
	}
	return nil
}
