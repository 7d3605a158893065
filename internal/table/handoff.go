package table

import (
	"fmt"

	"github.com/thywilljoshua/bookmaker/internal/book"
)

const (
	colBookTitle    = "Book_Title"
	colAuthorName   = "Author_Name"
	colIntroPrompt  = "Intro_Prompt"
	colChapterTitle = "Chapter_Title"
	colChapterIntro = "Chapter_Intro"
	colGenre        = "Genre"
	colAudience     = "Target_Audience"
	colTone         = "Tone"
	colStyle        = "Style"
	colPacing       = "Pacing"
	colLanguage     = "Language"
	colReadability  = "Readability"
	colWordGoal     = "Word_Goal"
)

func subheadingCol(i int) string { return fmt.Sprintf("Subheading_%d", i) }

func subheadingPromptCol(i int) string { return fmt.Sprintf("Subheading_%d_Prompt", i) }

// HandoffHeader is the column order of the hand-off table.
func HandoffHeader() []string {
	h := []string{colBookTitle, colAuthorName, colIntroPrompt, colChapterTitle, colChapterIntro}
	for i := 1; i <= book.MaxSubheadings; i++ {
		h = append(h, subheadingCol(i), subheadingPromptCol(i))
	}
	return append(h, colGenre, colAudience, colTone, colStyle, colPacing, colLanguage, colReadability, colWordGoal)
}

// WriteHandoff writes one row per chapter. Unused subheading slots are left
// empty.
func WriteHandoff(path string, rows []book.HandoffRow) error {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		line := []any{r.BookTitle, r.Author, r.IntroPrompt, r.ChapterTitle, r.ChapterIntro}
		for i := 0; i < book.MaxSubheadings; i++ {
			var label, prompt string
			if i < len(r.Subsections) {
				label, prompt = r.Subsections[i].Label, r.Subsections[i].Prompt
			}
			line = append(line, label, prompt)
		}
		m := r.Metadata
		line = append(line, m.Genre, m.Audience, m.Tone, m.Style, m.Pacing, m.Language, m.Readability, m.WordGoal)
		out = append(out, line)
	}
	return writeSheet(path, HandoffHeader(), out)
}

// ReadHandoff loads the hand-off table. Rows are returned as-is; filtering of
// unusable rows happens when manuscripts are built.
func ReadHandoff(path string) ([]book.HandoffRow, error) {
	recs, err := readRecords(path, colBookTitle, colChapterTitle, colChapterIntro)
	if err != nil {
		return nil, err
	}

	rows := make([]book.HandoffRow, 0, len(recs))
	for _, r := range recs {
		row := book.HandoffRow{
			BookTitle:    r.get(colBookTitle),
			Author:       r.get(colAuthorName),
			IntroPrompt:  r.get(colIntroPrompt),
			ChapterTitle: r.get(colChapterTitle),
			ChapterIntro: r.get(colChapterIntro),
			Metadata: book.Metadata{
				Genre:       r.get(colGenre),
				Audience:    r.get(colAudience),
				Tone:        r.get(colTone),
				Style:       r.get(colStyle),
				Pacing:      r.get(colPacing),
				Language:    r.get(colLanguage),
				Readability: r.get(colReadability),
			},
		}
		if goal := r.get(colWordGoal); goal != "" {
			if n, err := parseCount(goal); err == nil {
				row.Metadata.WordGoal = n
			}
		}
		for i := 1; i <= book.MaxSubheadings; i++ {
			if !r.has(subheadingCol(i)) {
				continue
			}
			row.Subsections = append(row.Subsections, book.Subsection{
				Label:  r.get(subheadingCol(i)),
				Prompt: r.get(subheadingPromptCol(i)),
			})
		}
		rows = append(rows, row)
	}
	return rows, nil
}
