package structure_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optqo/reposcope/pkg/analyzers/structure"
	"github.com/optqo/reposcope/pkg/task"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func analyze(t *testing.T, root string) *task.StructurePayload {
	t.Helper()

	payload, err := structure.New().Analyze(context.Background(), root, task.Options{})
	require.NoError(t, err)

	str, ok := payload.(*task.StructurePayload)
	require.True(t, ok)

	return str
}

func TestDescriptor(t *testing.T) {
	t.Parallel()

	descriptor := structure.New().Descriptor()
	assert.Equal(t, task.IDStructure, descriptor.ID)
	assert.Equal(t, task.PhaseParallel, descriptor.Phase)
}

func TestAnalyze_CountsShape(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "cmd/app/main.go", "package main\n")
	writeFile(t, root, "pkg/core/engine.go", "package core\n")
	writeFile(t, root, "pkg/core/engine_test.go", "package core\n")

	payload := analyze(t, root)

	assert.Equal(t, 3, payload.TotalFiles)
	assert.Equal(t, 4, payload.TotalDirs)
	assert.Positive(t, payload.TotalBytes)
	assert.Equal(t, 3, payload.MaxDepth)
}

func TestAnalyze_EmptyTreeIsNeutral(t *testing.T) {
	t.Parallel()

	payload := analyze(t, t.TempDir())

	assert.Equal(t, 0, payload.TotalFiles)
	assert.Equal(t, 50.0, payload.OrganizationScore)
	assert.Equal(t, 50.0, payload.ComplexityScore)
	assert.Empty(t, payload.LargestFiles)
}

func TestAnalyze_TestsAndDocsRaiseOrganization(t *testing.T) {
	t.Parallel()

	flat := t.TempDir()
	for i := 0; i < 10; i++ {
		writeFile(t, flat, fmt.Sprintf("file%d.go", i), "package flat\n")
	}

	organized := t.TempDir()
	writeFile(t, organized, "pkg/core/core.go", "package core\n")
	writeFile(t, organized, "tests/core_test.go", "package tests\n")
	writeFile(t, organized, "docs/guide.md", "# guide\n")

	assert.Greater(t, analyze(t, organized).OrganizationScore, analyze(t, flat).OrganizationScore)
}

func TestAnalyze_LargestFilesTopFiveSorted(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for i := 1; i <= 8; i++ {
		writeFile(t, root, fmt.Sprintf("src/f%d.go", i), strings.Repeat("x", i*10))
	}

	payload := analyze(t, root)

	require.Len(t, payload.LargestFiles, 5)
	assert.Equal(t, "src/f8.go", payload.LargestFiles[0].Path)
	assert.Equal(t, int64(80), payload.LargestFiles[0].Bytes)

	for i := 1; i < len(payload.LargestFiles); i++ {
		assert.GreaterOrEqual(t, payload.LargestFiles[i-1].Bytes, payload.LargestFiles[i].Bytes)
	}
}

func TestAnalyze_ComplexityGrowsWithSize(t *testing.T) {
	t.Parallel()

	small := t.TempDir()
	writeFile(t, small, "one.go", "package one\n")

	large := t.TempDir()
	for i := 0; i < 60; i++ {
		writeFile(t, large, fmt.Sprintf("a/b/c/d/e/pkg%d/file.go", i), "package p\n")
	}

	assert.Greater(t, analyze(t, large).ComplexityScore, analyze(t, small).ComplexityScore)
}
