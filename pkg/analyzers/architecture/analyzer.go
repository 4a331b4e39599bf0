// Package architecture implements the architecture analysis task. It
// scores directory and file naming signals against known architectural
// patterns and reconstructs the likely data flow through the tree.
package architecture

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/optqo/reposcope/pkg/analyzers/common"
	"github.com/optqo/reposcope/pkg/fswalk"
	"github.com/optqo/reposcope/pkg/task"
)

// CustomArchitecture is the neutral pattern label applied when no
// signal reaches the evidence floor.
const CustomArchitecture = "Custom Architecture"

// Confidence model: each marker hit adds evidence toward its pattern;
// confidence saturates well before certainty.
const (
	neutralConfidence    = 50.0
	baseConfidence       = 55.0
	confidencePerMarker  = 8.0
	maxConfidence        = 95.0
	minPatternEvidence   = 2
	integrationPointsCap = 8
)

// patternMarkers maps architectural pattern labels to the directory
// and file name fragments that indicate them.
var patternMarkers = map[string][]string{
	"Layered Architecture": {
		"controller", "service", "repository", "model", "view",
		"handler", "dao", "dto", "presentation", "domain",
	},
	"Service-Oriented": {
		"api", "endpoint", "client", "server", "grpc", "rest",
		"proto", "rpc", "gateway",
	},
	"Pipeline Architecture": {
		"pipeline", "etl", "extract", "transform", "load", "ingest",
		"stage", "step", "batch", "stream",
	},
	"Modular Monolith": {
		"module", "package", "component", "plugin", "internal",
	},
}

// dataFlowMarkers map stage labels to name fragments, in flow order.
var dataFlowMarkers = []struct {
	stage   string
	markers []string
}{
	{"Input/Ingestion", []string{"input", "ingest", "import", "reader", "extract", "fetch"}},
	{"Validation", []string{"valid", "check", "verify", "sanitize"}},
	{"Processing", []string{"process", "transform", "compute", "engine", "core"}},
	{"Storage", []string{"store", "db", "database", "repository", "cache", "persist"}},
	{"Output/Export", []string{"output", "export", "report", "render", "writer", "emit"}},
}

// integrationMarkers map external-boundary labels to name fragments.
var integrationMarkers = map[string][]string{
	"Database":          {"db", "sql", "database", "migration", "schema"},
	"HTTP API":          {"api", "http", "rest", "endpoint", "route"},
	"Message queue":     {"queue", "kafka", "rabbit", "pubsub", "broker"},
	"File exchange":     {"csv", "xlsx", "ftp", "upload", "download"},
	"External services": {"client", "sdk", "webhook", "oauth"},
}

// Analyzer is the architecture analysis task. It runs after the
// parallel tasks so its commentary can assume a populated result set.
type Analyzer struct{}

// New creates an architecture analysis task.
func New() task.Task {
	return &Analyzer{}
}

// Descriptor returns the task metadata.
func (a *Analyzer) Descriptor() task.Descriptor {
	return task.Descriptor{
		ID:          task.IDArchitecture,
		Description: "Infer the architectural pattern and data flow from naming signals.",
		Phase:       task.PhaseSequential,
	}
}

// Analyze scans the tree and infers its architecture.
func (a *Analyzer) Analyze(ctx context.Context, root string, opts task.Options) (task.Payload, error) {
	catalog, err := fswalk.Scan(ctx, root, common.ScanLimits(opts))
	if err != nil {
		return nil, fmt.Errorf("architecture scan: %w", err)
	}

	paths := loweredPaths(catalog)
	pattern, confidence, hits := detectPattern(paths)

	payload := &task.ArchitecturePayload{
		Pattern:           pattern,
		Confidence:        confidence,
		DataFlowStages:    detectDataFlow(paths),
		IntegrationPoints: detectIntegrationPoints(paths),
	}
	payload.Strengths, payload.Concerns = assess(catalog, payload, hits)
	payload.Commentary = buildCommentary(payload)

	return payload, nil
}

func loweredPaths(catalog *fswalk.Catalog) []string {
	paths := make([]string, 0, len(catalog.Files))
	for _, file := range catalog.Files {
		paths = append(paths, strings.ToLower(file.Path))
	}

	return paths
}

// detectPattern scores every pattern and keeps the strongest. Ties
// break alphabetically so repeated runs agree.
func detectPattern(paths []string) (string, float64, int) {
	scores := make(map[string]int)

	for label, markers := range patternMarkers {
		for _, path := range paths {
			for _, marker := range markers {
				if containsSegment(path, marker) {
					scores[label]++
				}
			}
		}
	}

	labels := make([]string, 0, len(scores))
	for label := range scores {
		labels = append(labels, label)
	}

	sort.Strings(labels)

	best := ""
	bestScore := minPatternEvidence - 1

	for _, label := range labels {
		if scores[label] > bestScore {
			best = label
			bestScore = scores[label]
		}
	}

	if best == "" {
		return CustomArchitecture, neutralConfidence, 0
	}

	confidence := baseConfidence + confidencePerMarker*float64(bestScore-minPatternEvidence)
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	return best, confidence, bestScore
}

// detectDataFlow returns the recognized stages in canonical flow order.
func detectDataFlow(paths []string) []string {
	stages := make([]string, 0, len(dataFlowMarkers))

	for _, flow := range dataFlowMarkers {
		for _, path := range paths {
			if containsAnySegment(path, flow.markers) {
				stages = append(stages, flow.stage)

				break
			}
		}
	}

	return stages
}

func detectIntegrationPoints(paths []string) []string {
	points := make([]string, 0, len(integrationMarkers))

	for label, markers := range integrationMarkers {
		for _, path := range paths {
			if containsAnySegment(path, markers) {
				points = append(points, label)

				break
			}
		}
	}

	sort.Strings(points)

	if len(points) > integrationPointsCap {
		points = points[:integrationPointsCap]
	}

	return points
}

// containsSegment matches a marker against whole path segments and
// name fragments split on common separators, so "db" does not fire on
// "dbg" style substrings.
func containsSegment(path, marker string) bool {
	for _, segment := range strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '.' || r == '_' || r == '-'
	}) {
		if segment == marker {
			return true
		}
	}

	return false
}

func containsAnySegment(path string, markers []string) bool {
	for _, marker := range markers {
		if containsSegment(path, marker) {
			return true
		}
	}

	return false
}

func assess(catalog *fswalk.Catalog, payload *task.ArchitecturePayload, hits int) ([]string, []string) {
	strengths := []string{}
	concerns := []string{}

	if payload.Pattern != CustomArchitecture {
		strengths = append(strengths,
			fmt.Sprintf("Tree layout matches %s conventions (%d naming signals)", payload.Pattern, hits))
	} else {
		concerns = append(concerns,
			"No recognized architectural convention; layout knowledge lives with the original authors")
	}

	if len(payload.DataFlowStages) >= 3 {
		strengths = append(strengths,
			fmt.Sprintf("Data flow is traceable through %d stages", len(payload.DataFlowStages)))
	}

	if len(payload.IntegrationPoints) == 0 && len(catalog.Files) > 0 {
		concerns = append(concerns,
			"No external integration boundaries detected; the system may be self-contained or boundaries are implicit")
	}

	if catalog.Dirs <= 1 && len(catalog.Files) > 10 {
		concerns = append(concerns, "All files share a single directory; responsibilities are not separated")
	}

	return strengths, concerns
}

func buildCommentary(payload *task.ArchitecturePayload) task.Commentary {
	commentary := task.Commentary{
		KeyFindings:     []string{},
		Insights:        []string{},
		Recommendations: []task.Recommendation{},
	}

	commentary.KeyFindings = append(commentary.KeyFindings,
		fmt.Sprintf("Detected pattern: %s (confidence %.0f%%)", payload.Pattern, payload.Confidence))

	if len(payload.DataFlowStages) > 0 {
		commentary.Insights = append(commentary.Insights,
			fmt.Sprintf("Data flow: %s", strings.Join(payload.DataFlowStages, " -> ")))
	}

	if len(payload.IntegrationPoints) > 0 {
		commentary.Insights = append(commentary.Insights,
			fmt.Sprintf("Integration boundaries: %s", strings.Join(payload.IntegrationPoints, ", ")))
	}

	if payload.Pattern == CustomArchitecture {
		commentary.Recommendations = append(commentary.Recommendations, task.Recommendation{
			Priority: task.PriorityMedium,
			Title:    "Document the architectural intent",
			Impact:   "An explicit architecture record keeps future changes coherent",
			Effort:   "1 week",
		})
	}

	return commentary
}
