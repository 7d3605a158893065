package table

import "github.com/thywilljoshua/bookmaker/internal/book"

const (
	colPrologue      = "Prologue"
	colChapter       = "Chapter"
	colChapterPrompt = "Chapter Prompt"
)

// ReadNarrative loads the fiction-variant table.
func ReadNarrative(path string) ([]book.NarrativeRow, error) {
	recs, err := readRecords(path, colSpecTitle, colChapter, colChapterPrompt)
	if err != nil {
		return nil, err
	}
	rows := make([]book.NarrativeRow, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, book.NarrativeRow{
			BookTitle: r.get(colSpecTitle),
			Author:    r.get(colAuthor),
			Prologue:  r.get(colPrologue),
			Chapter:   r.get(colChapter),
			Prompt:    r.get(colChapterPrompt),
		})
	}
	return rows, nil
}

// WriteNarrative writes a fiction-variant table.
func WriteNarrative(path string, rows []book.NarrativeRow) error {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, []any{r.BookTitle, r.Author, r.Prologue, r.Chapter, r.Prompt})
	}
	return writeSheet(path, []string{colSpecTitle, colAuthor, colPrologue, colChapter, colChapterPrompt}, out)
}

// AuthorEntry is one line of the book/author summary table.
type AuthorEntry struct {
	Title  string
	Author string
}

// WriteAuthorList writes the summary of books produced by a narrative run.
func WriteAuthorList(path string, entries []AuthorEntry) error {
	out := make([][]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, []any{e.Title, e.Author})
	}
	return writeSheet(path, []string{colSpecTitle, colAuthor}, out)
}

// ReadAuthorList loads a summary written by WriteAuthorList.
func ReadAuthorList(path string) ([]AuthorEntry, error) {
	recs, err := readRecords(path, colSpecTitle)
	if err != nil {
		return nil, err
	}
	out := make([]AuthorEntry, 0, len(recs))
	for _, r := range recs {
		out = append(out, AuthorEntry{Title: r.get(colSpecTitle), Author: r.get(colAuthor)})
	}
	return out, nil
}
