package table

import (
	"context"
	"fmt"

	"github.com/thywilljoshua/bookmaker/internal/book"
	"github.com/thywilljoshua/bookmaker/internal/logger"
)

const (
	colSpecTitle     = "Book Title"
	colSpecChapters  = "Chapters_required"
	colSpecStructure = "Chapter_Structure"
	colAuthor        = "Author Name"
)

// ReadSpecs loads the input table. Rows without a title or with a
// non-positive chapter count are skipped with a warning.
func ReadSpecs(ctx context.Context, path string) ([]book.Spec, error) {
	recs, err := readRecords(path, colSpecTitle, colSpecChapters, colSpecStructure)
	if err != nil {
		return nil, err
	}

	specs := make([]book.Spec, 0, len(recs))
	for _, r := range recs {
		title := r.get(colSpecTitle)
		if title == "" {
			logger.Warn(ctx, "input row without title", "line", r.line)
			continue
		}
		n, err := parseCount(r.get(colSpecChapters))
		if err != nil || n <= 0 {
			logger.Warn(ctx, "invalid chapter count", "line", r.line, "title", title, "value", r.get(colSpecChapters))
			continue
		}
		specs = append(specs, book.Spec{
			Title:     title,
			Chapters:  n,
			Structure: r.get(colSpecStructure),
			Author:    r.get(colAuthor),
		})
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("%s: no usable book rows", path)
	}
	return specs, nil
}

// WriteSpecs writes an input table; used to seed runs and in tests.
func WriteSpecs(path string, specs []book.Spec) error {
	rows := make([][]any, 0, len(specs))
	for _, s := range specs {
		rows = append(rows, []any{s.Title, s.Chapters, s.Structure, s.Author})
	}
	return writeSheet(path, []string{colSpecTitle, colSpecChapters, colSpecStructure, colAuthor}, rows)
}
