// Package htmlreport emits the analysis report as a self-contained
// HTML dashboard.
package htmlreport

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/optqo/reposcope/pkg/report"
)

// pieLanguagesShown caps the language share chart to the dominant
// languages; the remainder folds into one slice.
const pieLanguagesShown = 9

// Emitter renders report dashboards.
type Emitter struct{}

// New creates an HTML emitter.
func New() *Emitter {
	return &Emitter{}
}

// Emit writes the dashboard for one report.
func (e *Emitter) Emit(w io.Writer, data *report.Data) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("%s analysis", data.ProjectName)

	page.AddCharts(
		qualityChart(data),
		languageChart(data),
		outcomeChart(data),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}

	return nil
}

func qualityChart(data *report.Data) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Quality sub-metrics",
			Subtitle: fmt.Sprintf("overall %.1f, maintainability %s",
				data.OverallQuality, data.Maintainability),
		}),
		charts.WithYAxisOpts(opts.YAxis{Max: 100}),
	)

	scores := data.QualityScores
	bar.SetXAxis([]string{
		"Functionality", "Organization", "Documentation",
		"Best practices", "Error handling", "Performance",
	}).AddSeries("score", []opts.BarData{
		{Value: scores.Functionality},
		{Value: scores.Organization},
		{Value: scores.Documentation},
		{Value: scores.BestPractices},
		{Value: scores.ErrorHandling},
		{Value: scores.Performance},
	})

	return bar
}

func languageChart(data *report.Data) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    "Language share by bytes",
		Subtitle: fmt.Sprintf("primary technology %s", data.PrimaryTechnology),
	}))

	items := make([]opts.PieData, 0, pieLanguagesShown+1)
	var restBytes int64

	for i, entry := range data.TechnologyStack {
		if i < pieLanguagesShown {
			items = append(items, opts.PieData{Name: entry.Language, Value: entry.Bytes})

			continue
		}

		restBytes += entry.Bytes
	}

	if restBytes > 0 {
		items = append(items, opts.PieData{Name: "other", Value: restBytes})
	}

	pie.AddSeries("bytes", items)

	return pie
}

func outcomeChart(data *report.Data) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    "Task wall time",
		Subtitle: fmt.Sprintf("%d of %d tasks failed", data.FailedTasks, len(data.TaskOutcomes)),
	}))

	labels := make([]string, 0, len(data.TaskOutcomes))
	values := make([]opts.BarData, 0, len(data.TaskOutcomes))

	for _, outcome := range data.TaskOutcomes {
		labels = append(labels, outcome.TaskID)
		values = append(values, opts.BarData{Value: outcome.Elapsed.Seconds()})
	}

	bar.SetXAxis(labels).AddSeries("seconds", values)

	return bar
}
