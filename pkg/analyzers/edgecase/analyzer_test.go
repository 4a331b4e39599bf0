package edgecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optqo/reposcope/pkg/analyzers/edgecase"
	"github.com/optqo/reposcope/pkg/task"
)

func writeFile(t *testing.T, root, rel string, content []byte) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
}

func analyze(t *testing.T, root string) *task.EdgeCasePayload {
	t.Helper()

	payload, err := edgecase.New().Analyze(context.Background(), root, task.Options{})
	require.NoError(t, err)

	edge, ok := payload.(*task.EdgeCasePayload)
	require.True(t, ok)

	return edge
}

func TestDescriptor(t *testing.T) {
	t.Parallel()

	descriptor := edgecase.New().Descriptor()
	assert.Equal(t, task.IDEdgeCase, descriptor.ID)
	assert.Equal(t, task.PhaseParallel, descriptor.Phase)
}

func TestAnalyze_EmptyTreeIsNeutral(t *testing.T) {
	t.Parallel()

	payload := analyze(t, t.TempDir())

	assert.Equal(t, 50.0, payload.RobustnessScore)
	assert.Zero(t, payload.EmptyFiles)
	assert.Zero(t, payload.UnreadableEntries)
}

func TestAnalyze_CleanTreeScoresHigh(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "main.go", []byte("package main\n"))
	writeFile(t, root, "util.go", []byte("package main\n"))

	payload := analyze(t, root)

	assert.Equal(t, 100.0, payload.RobustnessScore)
}

func TestAnalyze_CountsHazards(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "ok.go", []byte("package main\n"))
	writeFile(t, root, "empty.go", nil)
	writeFile(t, root, "mystery.xyzzy", []byte("???\n"))
	writeFile(t, root, "blob.go", []byte{0x00, 0x01, 0xff, 0x00, 0x02})

	payload := analyze(t, root)

	assert.Equal(t, 1, payload.EmptyFiles)
	assert.Equal(t, 1, payload.UnknownExtensions)
	assert.Equal(t, 1, payload.NonTextSamples)
	assert.Less(t, payload.RobustnessScore, 100.0)
	assert.NotEmpty(t, payload.KeyFindings)
}

func TestAnalyze_HazardsNeverFailTheTask(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "empty1.sas", nil)
	writeFile(t, root, "empty2.sas", nil)
	writeFile(t, root, "junk.bin", []byte{0x00})

	payload := analyze(t, root)

	assert.GreaterOrEqual(t, payload.RobustnessScore, 0.0)
	assert.Equal(t, 2, payload.EmptyFiles)
}

func TestAnalyze_DeepPathsAtBound(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "a/b/deep.go", []byte("package deep\n"))
	writeFile(t, root, "top.go", []byte("package top\n"))

	opts := task.Options{"max_depth": 3}

	payload, err := edgecase.New().Analyze(context.Background(), root, opts)
	require.NoError(t, err)

	edge, ok := payload.(*task.EdgeCasePayload)
	require.True(t, ok)
	assert.Equal(t, 1, edge.DeepPaths)
}
