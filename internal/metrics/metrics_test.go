package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	r := New()
	r.Generation("ok")
	r.Generation("ok")
	r.Generation("failed")
	r.Checkpoint(nil)
	r.Checkpoint(errors.New("disk full"))
	r.Chapter("prompts")
	r.Shortfall()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.generations.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.generations.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.checkpoints.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.checkpoints.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.chapters.WithLabelValues("prompts")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.shortfalls))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.Generation("ok")
	r.Extraction("invalid")
	r.Checkpoint(nil)
	r.Chapter("assemble")
	r.Shortfall()
	assert.NoError(t, r.WriteFile(filepath.Join(t.TempDir(), "m.prom")))
}

func TestWriteFile(t *testing.T) {
	r := New()
	r.Extraction("fenced_valid")
	path := filepath.Join(t.TempDir(), "bookmaker.prom")

	require.NoError(t, r.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `bookmaker_json_extractions_total{outcome="fenced_valid"} 1`)
}

func TestShortfallsCountEachShortChapter(t *testing.T) {
	r := New()
	r.Shortfall()
	r.Shortfall()
	path := filepath.Join(t.TempDir(), "bookmaker.prom")

	require.NoError(t, r.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# HELP bookmaker_shortfalls_total Chapter or subheading shortfalls against the requested plan.")
	assert.Contains(t, string(data), "bookmaker_shortfalls_total 2")
}
