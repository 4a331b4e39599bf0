package terminal_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optqo/reposcope/pkg/report"
	"github.com/optqo/reposcope/pkg/report/terminal"
	"github.com/optqo/reposcope/pkg/task"
)

func TestRender_CoversEverySection(t *testing.T) {
	t.Parallel()

	data := &report.Data{
		ProjectName:       "demo",
		AnalysisID:        "run-1",
		GeneratedAt:       time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
		PrimaryTechnology: "Python",
		ProjectType:       "Data Analytics",
		TechnologyStack: []task.TechnologyEntry{
			{Language: "Python", FileCount: 10, Bytes: 2048, Share: 100},
		},
		Frameworks:          []string{"Python (pip)"},
		OverallQuality:      66,
		Maintainability:     "Good",
		InvestmentPriority:  "Medium",
		ArchitecturePattern: "Pipeline Architecture",
		DataFlowStages:      []string{"Input/Ingestion", "Processing"},
		ComplexityTier:      "Low",
		KeyFindings:         []string{"ten python files"},
		Recommendations: []task.Recommendation{
			{Priority: task.PriorityHigh, Title: "Add tests", Impact: "confidence", Effort: "1 week"},
		},
		TaskOutcomes: []report.TaskOutcome{
			{TaskID: task.IDQuality, Status: report.StatusFailed, Error: "boom"},
		},
		FailedTasks: 1,
	}

	var out bytes.Buffer
	require.NoError(t, terminal.New(&out).Render(data))

	rendered := out.String()
	assert.Contains(t, rendered, "demo")
	assert.Contains(t, rendered, "Python")
	assert.Contains(t, rendered, "Pipeline Architecture")
	assert.Contains(t, rendered, "ten python files")
	assert.Contains(t, rendered, "Add tests")
	assert.Contains(t, rendered, "task quality failed: boom")
}

func TestRender_EmptyReportDoesNotPanic(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, terminal.New(&out).Render(&report.Data{}))
	assert.NotEmpty(t, out.String())
}
