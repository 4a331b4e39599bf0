// Package terminal renders an analysis report for the console.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/optqo/reposcope/pkg/report"
	"github.com/optqo/reposcope/pkg/task"
)

// stackRowsShown caps the technology table to the dominant languages.
const stackRowsShown = 8

// Renderer writes reports to a console writer.
type Renderer struct {
	out io.Writer
}

// New creates a terminal renderer.
func New(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Render writes the full report.
func (r *Renderer) Render(data *report.Data) error {
	r.header(data)
	r.technology(data)
	r.quality(data)
	r.architecture(data)
	r.structure(data)
	r.commentary(data)
	r.outcomes(data)

	return nil
}

func (r *Renderer) header(data *report.Data) {
	title := color.New(color.FgCyan, color.Bold)
	title.Fprintf(r.out, "\n  %s\n", data.ProjectName)
	fmt.Fprintf(r.out, "  analysis %s, generated %s, %.1fs\n\n",
		data.AnalysisID, data.GeneratedAt.Format("2006-01-02 15:04:05 MST"), data.Elapsed)
}

func (r *Renderer) technology(data *report.Data) {
	fmt.Fprintf(r.out, "  Technology: %s (%s)\n", data.PrimaryTechnology, data.ProjectType)

	if len(data.Frameworks) > 0 {
		fmt.Fprintf(r.out, "  Tooling:    %s\n", strings.Join(data.Frameworks, ", "))
	}

	if len(data.TechnologyStack) == 0 {
		fmt.Fprintln(r.out)

		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(r.out)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Language", "Files", "Size", "Share"})

	rows := data.TechnologyStack
	if len(rows) > stackRowsShown {
		rows = rows[:stackRowsShown]
	}

	for _, entry := range rows {
		tw.AppendRow(table.Row{
			entry.Language,
			entry.FileCount,
			humanize.Bytes(uint64(entry.Bytes)),
			fmt.Sprintf("%.1f%%", entry.Share),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	tw.Render()
	fmt.Fprintln(r.out)
}

func (r *Renderer) quality(data *report.Data) {
	fmt.Fprintf(r.out, "  Quality: %s  maintainability %s, investment priority %s\n",
		scoreColor(data.OverallQuality).Sprintf("%.1f", data.OverallQuality),
		data.Maintainability, data.InvestmentPriority)

	tw := table.NewWriter()
	tw.SetOutputMirror(r.out)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Metric", "Score"})

	scores := data.QualityScores
	for _, row := range []struct {
		name  string
		value float64
	}{
		{"Functionality", scores.Functionality},
		{"Organization", scores.Organization},
		{"Documentation", scores.Documentation},
		{"Best practices", scores.BestPractices},
		{"Error handling", scores.ErrorHandling},
		{"Performance", scores.Performance},
	} {
		tw.AppendRow(table.Row{row.name, scoreColor(row.value).Sprintf("%.1f", row.value)})
	}

	tw.Render()
	fmt.Fprintln(r.out)
}

func (r *Renderer) architecture(data *report.Data) {
	fmt.Fprintf(r.out, "  Architecture: %s (confidence %.0f%%)\n",
		data.ArchitecturePattern, data.ArchitectureConfidence)

	if len(data.DataFlowStages) > 0 {
		fmt.Fprintf(r.out, "  Data flow:    %s\n", strings.Join(data.DataFlowStages, " -> "))
	}

	if len(data.IntegrationPoints) > 0 {
		fmt.Fprintf(r.out, "  Boundaries:   %s\n", strings.Join(data.IntegrationPoints, ", "))
	}

	fmt.Fprintln(r.out)
}

func (r *Renderer) structure(data *report.Data) {
	fmt.Fprintf(r.out, "  Structure: %d files, %d directories, %s, complexity %s (%.1f)\n",
		data.TotalFiles, data.TotalDirs,
		humanize.Bytes(uint64(data.TotalBytes)),
		data.ComplexityTier, data.ComplexityScore)
	fmt.Fprintf(r.out, "  Robustness %.1f, cohesion %.1f across %d languages\n\n",
		data.RobustnessScore, data.CohesionScore, len(data.Languages))
}

func (r *Renderer) commentary(data *report.Data) {
	if len(data.KeyFindings) > 0 {
		color.New(color.Bold).Fprintln(r.out, "  Key findings")

		for _, finding := range data.KeyFindings {
			fmt.Fprintf(r.out, "   - %s\n", finding)
		}

		fmt.Fprintln(r.out)
	}

	if len(data.Recommendations) > 0 {
		color.New(color.Bold).Fprintln(r.out, "  Recommendations")

		for _, rec := range data.Recommendations {
			fmt.Fprintf(r.out, "   %s %s (%s, %s)\n",
				priorityTag(rec.Priority), rec.Title, rec.Impact, rec.Effort)
		}

		fmt.Fprintln(r.out)
	}
}

func (r *Renderer) outcomes(data *report.Data) {
	if data.FailedTasks == 0 {
		return
	}

	warn := color.New(color.FgYellow)

	for _, outcome := range data.TaskOutcomes {
		if outcome.Status == report.StatusFailed {
			warn.Fprintf(r.out, "  ! task %s failed: %s\n", outcome.TaskID, outcome.Error)
		}
	}

	fmt.Fprintln(r.out)
}

func scoreColor(score float64) *color.Color {
	switch {
	case score >= 70:
		return color.New(color.FgGreen)
	case score >= 50:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func priorityTag(priority task.RecommendationPriority) string {
	switch priority {
	case task.PriorityHigh:
		return color.New(color.FgRed, color.Bold).Sprint("[high]")
	case task.PriorityMedium:
		return color.New(color.FgYellow).Sprint("[med]")
	default:
		return color.New(color.FgHiBlack).Sprint("[low]")
	}
}
