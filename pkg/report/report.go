// Package report defines the synthesized analysis report: a flat,
// fully-populated structure every emitter renders from. No field is
// ever absent; failed or unscheduled tasks contribute documented
// defaults instead of holes.
package report

import (
	"time"

	"github.com/optqo/reposcope/pkg/task"
)

// TaskOutcome records how one scheduled task settled.
type TaskOutcome struct {
	TaskID  string        `json:"task_id" yaml:"task_id"`
	Status  string        `json:"status" yaml:"status"` // "completed" or "failed"
	Error   string        `json:"error,omitempty" yaml:"error"`
	Elapsed time.Duration `json:"elapsed_ns" yaml:"elapsed_ns"`
}

// Task outcome status values.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Data is the complete synthesized report. Every field is populated on
// every run; consumers never need nil checks.
type Data struct {
	ProjectName string    `json:"project_name" yaml:"project_name"`
	AnalysisID  string    `json:"analysis_id" yaml:"analysis_id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Elapsed     float64   `json:"elapsed_seconds" yaml:"elapsed_seconds"`

	PrimaryTechnology string                 `json:"primary_technology" yaml:"primary_technology"`
	TechnologyStack   []task.TechnologyEntry `json:"technology_stack" yaml:"technology_stack"`
	Frameworks        []string               `json:"frameworks" yaml:"frameworks"`
	ProjectType       string                 `json:"project_type" yaml:"project_type"`

	OverallQuality  float64            `json:"overall_quality" yaml:"overall_quality"`
	QualityScores   task.QualityScores `json:"quality_scores" yaml:"quality_scores"`
	Maintainability string             `json:"maintainability" yaml:"maintainability"`

	ArchitecturePattern    string   `json:"architecture_pattern" yaml:"architecture_pattern"`
	ArchitectureConfidence float64  `json:"architecture_confidence" yaml:"architecture_confidence"`
	DataFlowStages         []string `json:"data_flow_stages" yaml:"data_flow_stages"`
	IntegrationPoints      []string `json:"integration_points" yaml:"integration_points"`

	TotalFiles      int             `json:"total_files" yaml:"total_files"`
	TotalDirs       int             `json:"total_dirs" yaml:"total_dirs"`
	TotalBytes      int64           `json:"total_bytes" yaml:"total_bytes"`
	ComplexityScore float64         `json:"complexity_score" yaml:"complexity_score"`
	ComplexityTier  string          `json:"complexity_tier" yaml:"complexity_tier"`
	LargestFiles    []task.FileStat `json:"largest_files" yaml:"largest_files"`

	Languages     []string `json:"languages" yaml:"languages"`
	CohesionScore float64  `json:"cohesion_score" yaml:"cohesion_score"`

	RobustnessScore float64 `json:"robustness_score" yaml:"robustness_score"`

	KeyFindings     []string              `json:"key_findings" yaml:"key_findings"`
	Insights        []string              `json:"insights" yaml:"insights"`
	Recommendations []task.Recommendation `json:"recommendations" yaml:"recommendations"`

	InvestmentPriority string `json:"investment_priority" yaml:"investment_priority"`

	TaskOutcomes []TaskOutcome `json:"task_outcomes" yaml:"task_outcomes"`
	FailedTasks  int           `json:"failed_tasks" yaml:"failed_tasks"`
}
