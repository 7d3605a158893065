package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordKeepsSetSemantics(t *testing.T) {
	s := New()
	s.Record("The Power of Small Wins", []string{"Start Small", "Track It", "Start Small", " "})
	s.Record("The Power of Small Wins", []string{"Celebrate"})

	assert.Equal(t, []string{"The Power of Small Wins"}, s.Titles)
	assert.Equal(t, []string{"Start Small", "Track It", "Celebrate"}, s.Subheadings)
}

func TestJSONFileMissingIsEmpty(t *testing.T) {
	f := &JSONFile{Path: filepath.Join(t.TempDir(), "chapter_memory.json")}

	s, err := f.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, s.Titles)
	assert.Empty(t, s.Subheadings)
	assert.NotNil(t, s.Titles)
}

func TestJSONFileSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chapter_memory.json")
	f := &JSONFile{Path: path}
	s := New()
	s.Record("Roots", []string{"Soil", "Water"})

	require.NoError(t, f.Save(context.Background(), s))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"titles":["Roots"],"subheadings":["Soil","Water"]}`, string(raw))

	loaded, err := f.Load(context.Background())
	require.NoError(t, err)
	if diff := cmp.Diff(s.Subheadings, loaded.Subheadings); diff != "" {
		t.Errorf("subheadings mismatch (-want +got):\n%s", diff)
	}

	// records against a loaded store still dedupe
	loaded.Record("Roots", []string{"Soil", "Light"})
	assert.Equal(t, []string{"Soil", "Water", "Light"}, loaded.Subheadings)
}

func TestJSONFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chapter_memory.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := (&JSONFile{Path: path}).Load(context.Background())
	assert.Error(t, err)
}

func TestSQLiteSaveLoad(t *testing.T) {
	b := &SQLite{Path: filepath.Join(t.TempDir(), "memory.db")}
	ctx := context.Background()

	empty, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Titles)

	s := New()
	s.Record("Roots", []string{"Soil", "Water"})
	s.Record("Branches", []string{"Light"})
	require.NoError(t, b.Save(ctx, s))
	require.NoError(t, b.Save(ctx, s))

	loaded, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Roots", "Branches"}, loaded.Titles)
	assert.Equal(t, []string{"Soil", "Water", "Light"}, loaded.Subheadings)
}

func TestOpen(t *testing.T) {
	b, err := Open("", "m.json")
	require.NoError(t, err)
	assert.IsType(t, &JSONFile{}, b)

	b, err = Open("SQLite", "m.db")
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, b)

	_, err = Open("redis", "x")
	assert.Error(t, err)
}
