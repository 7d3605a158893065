package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thywilljoshua/bookmaker/internal/book"
	"github.com/thywilljoshua/bookmaker/internal/config"
	"github.com/thywilljoshua/bookmaker/internal/document"
	"github.com/thywilljoshua/bookmaker/internal/table"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := execute(t.Context(), args, &out, &errOut)
	return out.String(), err
}

func TestCommandsRegistered(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"prompts", "assemble", "fiction", "preview", "inspect"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("metrics-file"))
}

func TestPromptsNeedsCredential(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "book_input.xlsx")
	require.NoError(t, table.WriteSpecs(in, []book.Spec{{Title: "Habits", Chapters: 2, Structure: "x"}}))

	_, err := run(t, "prompts", "--provider", "off", "--input", in, "--output", filepath.Join(dir, "out.xlsx"))

	assert.ErrorIs(t, err, config.ErrMissingCredential)
	_, statErr := os.Stat(filepath.Join(dir, "out.xlsx"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLogFileClosedAfterFailedRun(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "run.log")

	_, err := run(t, "assemble", "--provider", "off", "--log-file", logFile, "--input", filepath.Join(dir, "missing.xlsx"))
	require.Error(t, err)

	// records after the run no longer reach the released file
	slog.Info("written after the run")
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "written after the run")
}

func TestAssembleWithoutProvider(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "handoff.xlsx")
	require.NoError(t, table.WriteHandoff(in, []book.HandoffRow{
		{BookTitle: "Habits", IntroPrompt: "intro", ChapterTitle: "Chapter 1: Start", ChapterIntro: "ci",
			Subsections: []book.Subsection{{Label: "Cue", Prompt: "p"}}},
		{BookTitle: "Habits", ChapterTitle: "Chapter 2: Keep", ChapterIntro: "ci2"},
	}))
	outDir := filepath.Join(dir, "books")
	metricsFile := filepath.Join(dir, "run.prom")

	out, err := run(t, "assemble", "--provider", "off", "--input", in, "--out", outDir, "--metrics-file", metricsFile)

	require.NoError(t, err)
	assert.Contains(t, out, "Habits: 2 chapters")

	md, err := os.ReadFile(filepath.Join(outDir, "Habits.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "## Chapter 2: Keep")
	// every generation failed, so the introduction was never emitted
	assert.NotContains(t, string(md), "Introduction")

	n, err := document.PageCount(filepath.Join(outDir, "Habits.pdf"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `bookmaker_generation_calls_total{outcome="failed"} 4`)
}

func TestFictionWritesAuthorList(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "kids_fiction_output.xlsx")
	require.NoError(t, table.WriteNarrative(in, []book.NarrativeRow{
		{BookTitle: "Moon Fox", Author: "Ada", Prologue: "p", Chapter: "Chapter 1", Prompt: "c1"},
		{BookTitle: "Moon Fox", Author: "Ada", Chapter: "Epilogue", Prompt: "e"},
		{BookTitle: "Sun Owl", Author: "Grace", Chapter: "Chapter 1", Prompt: "c1"},
	}))
	authors := filepath.Join(dir, "authors.xlsx")

	out, err := run(t, "fiction", "--provider", "off", "--input", in, "--out", filepath.Join(dir, "kids"), "--authors", authors)

	require.NoError(t, err)
	assert.Contains(t, out, "Book list written")
	entries, err := table.ReadAuthorList(authors)
	require.NoError(t, err)
	assert.Equal(t, []table.AuthorEntry{{Title: "Moon Fox", Author: "Ada"}, {Title: "Sun Owl", Author: "Grace"}}, entries)

	md, err := os.ReadFile(filepath.Join(dir, "kids", "Moon Fox.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "## Copyright")
	assert.Contains(t, string(md), "## Epilogue")
}

func TestInspectAndPreview(t *testing.T) {
	dir := t.TempDir()
	store := document.NewFileStore(dir)
	d := document.New("Habits")
	d.CenteredHeading("Habits", 0, 20).PageBreak().Heading("Chapter 1: Start", 1).Paragraph("Small steps.")
	require.NoError(t, store.Checkpoint(t.Context(), d))

	out, err := run(t, "inspect", store.Path("Habits", document.PDF))
	require.NoError(t, err)
	assert.Contains(t, out, ": 2 pages")

	out, err = run(t, "preview", store.Path("Habits", document.Markdown))
	require.NoError(t, err)
	assert.Contains(t, out, "Small steps.")
	assert.NotContains(t, out, "title:")
}

func TestUnknownFormat(t *testing.T) {
	_, err := parseFormats([]string{"pdf", "docx"})
	assert.Error(t, err)

	f, err := parseFormats([]string{" PDF ", "md", ""})
	require.NoError(t, err)
	assert.Equal(t, []document.Format{document.PDF, document.Markdown}, f)
}

func TestStripFrontMatter(t *testing.T) {
	assert.Equal(t, "# Habits\n", stripFrontMatter("---\ntitle: \"Habits\"\n---\n\n# Habits\n"))
	assert.Equal(t, "# Plain\n", stripFrontMatter("# Plain\n"))
}
