package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optqo/reposcope/cmd/reposcope/commands"
	"github.com/optqo/reposcope/pkg/report"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestAnalyzeCommand_JSONReport(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "etl/load.py", "def load():\n    pass\n")
	writeFile(t, root, "etl/query.sql", "SELECT 1;\n")
	writeFile(t, root, "README.md", "# demo\n")

	cmd := commands.NewAnalyzeCommand()

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{root, "--bundle", "full", "--format", "json"})

	require.NoError(t, cmd.Execute())

	var data report.Data
	require.NoError(t, json.Unmarshal(out.Bytes(), &data))

	assert.Equal(t, "Python", data.PrimaryTechnology)
	assert.NotEmpty(t, data.AnalysisID)
	assert.Len(t, data.TaskOutcomes, 6)
	assert.Zero(t, data.FailedTasks)
	assert.NotEmpty(t, data.Maintainability)
}

func TestAnalyzeCommand_UnknownBundle(t *testing.T) {
	cmd := commands.NewAnalyzeCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{t.TempDir(), "--bundle", "galactic"})

	require.Error(t, cmd.Execute())
}

func TestAnalyzeCommand_InvalidRoot(t *testing.T) {
	cmd := commands.NewAnalyzeCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing"), "--bundle", "basic"})

	require.Error(t, cmd.Execute())
}

func TestAnalyzeCommand_ExplicitTasksOverrideBundle(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")

	cmd := commands.NewAnalyzeCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{root, "--tasks", "technology", "--format", "json"})

	require.NoError(t, cmd.Execute())

	var data report.Data
	require.NoError(t, json.Unmarshal(out.Bytes(), &data))
	assert.Len(t, data.TaskOutcomes, 1)
	assert.Equal(t, "technology", data.TaskOutcomes[0].TaskID)
}

func TestTasksCommand_ListsTasksAndBundles(t *testing.T) {
	cmd := commands.NewTasksCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())

	listing := out.String()
	assert.Contains(t, listing, "technology")
	assert.Contains(t, listing, "integration")
	assert.Contains(t, listing, "basic")
	assert.Contains(t, listing, "full")
}
