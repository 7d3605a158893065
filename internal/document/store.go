package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// Format names an output rendering.
type Format string

const (
	PDF      Format = "pdf"
	Markdown Format = "md"
)

var renderers = map[Format]func(io.Writer, *Document) error{
	PDF:      RenderPDF,
	Markdown: RenderMarkdown,
}

// FileStore checkpoints documents into Dir, one file per title and format.
// Each write is staged and renamed into place, so a reader sees either the
// previous checkpoint or the new one.
type FileStore struct {
	Dir     string
	Formats []Format
}

func NewFileStore(dir string, formats ...Format) *FileStore {
	if len(formats) == 0 {
		formats = []Format{PDF, Markdown}
	}
	return &FileStore{Dir: dir, Formats: formats}
}

// Path is where the given format of title is written.
func (s *FileStore) Path(title string, f Format) string {
	return filepath.Join(s.Dir, FileName(title)+"."+string(f))
}

func (s *FileStore) Checkpoint(ctx context.Context, d *Document) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, f := range s.Formats {
		render, ok := renderers[f]
		if !ok {
			return fmt.Errorf("unknown format %q", f)
		}
		var buf bytes.Buffer
		if err := render(&buf, d); err != nil {
			return err
		}
		if err := renameio.WriteFile(s.Path(d.Title, f), buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s checkpoint: %w", f, err)
		}
	}
	return nil
}
