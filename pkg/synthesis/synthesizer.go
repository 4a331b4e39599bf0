// Package synthesis folds settled task results into one complete
// report. Synthesize is a pure function of its inputs: no clocks, no
// I/O, no randomness. Every report field is populated on every call;
// missing or failed tasks contribute documented defaults.
package synthesis

import (
	"sort"
	"time"

	"github.com/optqo/reposcope/pkg/report"
	"github.com/optqo/reposcope/pkg/task"
)

// Meta carries the run identity the caller owns. Keeping clock and
// identifier generation outside the synthesizer keeps it idempotent.
type Meta struct {
	ProjectName string
	AnalysisID  string
	GeneratedAt time.Time
	Elapsed     time.Duration
}

// Synthesizer builds reports from result stores under one weight set.
type Synthesizer struct {
	weights Weights
}

// New creates a synthesizer. Invalid weights fall back to the defaults.
func New(weights Weights) *Synthesizer {
	if err := weights.Validate(); err != nil {
		weights = DefaultWeights()
	}

	return &Synthesizer{weights: weights}
}

// Synthesize builds the report for the scheduled task identifiers from
// their settled results. Identifiers with no store entry, or with a
// failure entry, contribute their defaults. Calling twice with the same
// inputs yields identical reports.
func (s *Synthesizer) Synthesize(store *task.Store, scheduled []string, meta Meta) *report.Data {
	data := s.emptyReport(meta)

	for _, id := range scheduled {
		result, ok := store.Get(id)

		outcome := report.TaskOutcome{TaskID: id, Status: report.StatusFailed}

		switch {
		case !ok:
			outcome.Error = "no result recorded"
			data.FailedTasks++
		case result.Failure():
			outcome.Error = result.Err.Error()
			outcome.Elapsed = result.Elapsed
			data.FailedTasks++
		default:
			outcome.Status = report.StatusCompleted
			outcome.Elapsed = result.Elapsed
			s.fold(data, result.Payload)
		}

		data.TaskOutcomes = append(data.TaskOutcomes, outcome)
	}

	data.Maintainability = MaintainabilityTier(data.OverallQuality)
	data.ComplexityTier = ComplexityTier(data.ComplexityScore)
	data.InvestmentPriority = InvestmentPriority(data.OverallQuality)
	data.Recommendations = rankRecommendations(data.Recommendations)

	return data
}

// emptyReport is the all-defaults report: what a run with zero
// successful tasks produces.
func (s *Synthesizer) emptyReport(meta Meta) *report.Data {
	return &report.Data{
		ProjectName: meta.ProjectName,
		AnalysisID:  meta.AnalysisID,
		GeneratedAt: meta.GeneratedAt,
		Elapsed:     meta.Elapsed.Seconds(),

		PrimaryTechnology: DefaultTechnology,
		TechnologyStack:   []task.TechnologyEntry{},
		Frameworks:        []string{},
		ProjectType:       DefaultProjectType,

		OverallQuality: DefaultScore,
		QualityScores:  neutralQualityScores(),

		ArchitecturePattern:    DefaultArchitecture,
		ArchitectureConfidence: DefaultScore,
		DataFlowStages:         []string{},
		IntegrationPoints:      []string{},

		ComplexityScore: DefaultScore,
		LargestFiles:    []task.FileStat{},

		Languages:     []string{},
		CohesionScore: DefaultScore,

		RobustnessScore: DefaultScore,

		KeyFindings:     []string{},
		Insights:        []string{},
		Recommendations: []task.Recommendation{},
		TaskOutcomes:    []report.TaskOutcome{},
	}
}

// fold merges one successful payload into the report. The commentary
// block merges for every payload type; typed fields overwrite defaults
// per concrete type.
func (s *Synthesizer) fold(data *report.Data, payload task.Payload) {
	commentary := payload.Common()
	data.KeyFindings = append(data.KeyFindings, commentary.KeyFindings...)
	data.Insights = append(data.Insights, commentary.Insights...)
	data.Recommendations = append(data.Recommendations, commentary.Recommendations...)

	switch p := payload.(type) {
	case *task.TechnologyPayload:
		data.PrimaryTechnology = p.PrimaryTechnology
		data.TechnologyStack = p.Stack
		data.Frameworks = p.Frameworks
		data.ProjectType = p.ProjectType

	case *task.QualityPayload:
		data.QualityScores = p.Scores
		data.OverallQuality = s.weights.Overall(p.Scores)

	case *task.ArchitecturePayload:
		data.ArchitecturePattern = p.Pattern
		data.ArchitectureConfidence = p.Confidence
		data.DataFlowStages = p.DataFlowStages
		data.IntegrationPoints = p.IntegrationPoints
		data.Insights = append(data.Insights, p.Strengths...)
		data.Insights = append(data.Insights, p.Concerns...)

	case *task.StructurePayload:
		data.TotalFiles = p.TotalFiles
		data.TotalDirs = p.TotalDirs
		data.TotalBytes = p.TotalBytes
		data.ComplexityScore = p.ComplexityScore
		data.LargestFiles = p.LargestFiles

	case *task.IntegrationPayload:
		data.Languages = p.Languages
		data.CohesionScore = p.CohesionScore

	case *task.EdgeCasePayload:
		data.RobustnessScore = p.RobustnessScore
	}
}

// priorityRank orders recommendation priorities highest first.
var priorityRank = map[task.RecommendationPriority]int{
	task.PriorityHigh:   0,
	task.PriorityMedium: 1,
	task.PriorityLow:    2,
}

// rankRecommendations sorts high to low, preserving contribution order
// within a priority, and truncates to the report cap.
func rankRecommendations(recommendations []task.Recommendation) []task.Recommendation {
	sort.SliceStable(recommendations, func(i, j int) bool {
		return priorityRank[recommendations[i].Priority] < priorityRank[recommendations[j].Priority]
	})

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}

	return recommendations
}
