package table

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/thywilljoshua/bookmaker/internal/book"
)

// writeRaw builds a workbook cell by cell, the way a person would fill one in.
func writeRaw(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestReadSpecs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book_input.xlsx")
	writeRaw(t, path, [][]any{
		{"Book Title", "Chapters_required", "Chapter_Structure"},
		{"Habits", 2, "problem-solution"},
		{"Sleep", "3.0", "chronological"},
		{"", 4, "ignored"},
		{"Broken", "many", "x"},
		{"Zero", 0, "x"},
	})

	specs, err := ReadSpecs(context.Background(), path)

	require.NoError(t, err)
	want := []book.Spec{
		{Title: "Habits", Chapters: 2, Structure: "problem-solution"},
		{Title: "Sleep", Chapters: 3, Structure: "chronological"},
	}
	if diff := cmp.Diff(want, specs); diff != "" {
		t.Errorf("specs mismatch (-want +got):\n%s", diff)
	}
}

func TestReadSpecsMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.xlsx")
	writeRaw(t, path, [][]any{{"Book Title", "Chapters_required"}, {"Habits", 2}})

	_, err := ReadSpecs(context.Background(), path)
	assert.ErrorContains(t, err, "Chapter_Structure")
}

func TestReadSpecsMissingFile(t *testing.T) {
	_, err := ReadSpecs(context.Background(), filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}

func TestHandoffRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Book_Generated_Content.xlsx")
	meta := book.Metadata{Genre: "Self-Help", Audience: "Adults", Tone: "t", Style: "s",
		Pacing: "p", Language: "English", Readability: "r", WordGoal: 2000}
	rows := []book.HandoffRow{
		{
			BookTitle: "Habits", Author: "Ada", IntroPrompt: "intro", ChapterTitle: "Chapter 1: Start",
			ChapterIntro: "ci", Metadata: meta,
			Subsections: []book.Subsection{{Label: "A", Prompt: "pa"}, {Label: "B", Prompt: "pb"}, {Label: "C", Prompt: "pc"}},
		},
	}

	require.NoError(t, WriteHandoff(path, rows))
	got, err := ReadHandoff(path)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, meta, got[0].Metadata)
	assert.Equal(t, "intro", got[0].IntroPrompt)
	// every slot column exists, the unused fourth comes back blank
	require.Len(t, got[0].Subsections, book.MaxSubheadings)
	assert.Equal(t, book.Subsection{Label: "C", Prompt: "pc"}, got[0].Subsections[2])
	assert.Equal(t, book.Subsection{}, got[0].Subsections[3])
}

func TestHandoffHeader(t *testing.T) {
	h := HandoffHeader()
	assert.Equal(t, "Book_Title", h[0])
	assert.Contains(t, h, "Subheading_4_Prompt")
	assert.Equal(t, "Word_Goal", h[len(h)-1])
	assert.Len(t, h, 5+2*book.MaxSubheadings+8)
}

func TestReadNarrative(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kids_fiction_output.xlsx")
	writeRaw(t, path, [][]any{
		{"Book Title", "Author Name", "Prologue", "Chapter", "Chapter Prompt"},
		{"Moon Fox", "Ada", "open", "Chapter 1", "p1"},
		{"Moon Fox", "Ada", "", "Epilogue", "p2"},
	})

	rows, err := ReadNarrative(path)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, book.NarrativeRow{BookTitle: "Moon Fox", Author: "Ada", Prologue: "open", Chapter: "Chapter 1", Prompt: "p1"}, rows[0])
	assert.Empty(t, rows[1].Prologue)
}

func TestAuthorList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Kids_Book_Author_List.xlsx")
	entries := []AuthorEntry{{Title: "Moon Fox", Author: "Ada"}, {Title: "Sun Owl", Author: ""}}

	require.NoError(t, WriteAuthorList(path, entries))
	got, err := ReadAuthorList(path)

	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestParseCount(t *testing.T) {
	for in, want := range map[string]int{"3": 3, " 4 ": 4, "5.0": 5} {
		n, err := parseCount(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, n, in)
	}
	_, err := parseCount("three")
	assert.Error(t, err)
}
