// Package edgecase implements the edge-case/robustness validation
// task. It probes the tree for the inputs that tend to break tooling:
// empty files, huge files, unknown extensions, unreadable entries, and
// binary content where text was expected. What it finds is its output,
// never its failure.
package edgecase

import (
	"context"
	"fmt"

	"github.com/optqo/reposcope/pkg/analyzers/common"
	"github.com/optqo/reposcope/pkg/fswalk"
	"github.com/optqo/reposcope/pkg/task"
)

// hugeFileBytes marks files large enough to strain text tooling.
const hugeFileBytes = int64(5 << 20)

// Robustness penalties. Each probe converts its hit ratio into a
// bounded deduction from a perfect score.
const (
	perfectScore = 100.0

	emptyFilePenaltyCap   = 15.0
	hugeFilePenaltyCap    = 20.0
	unknownExtPenaltyCap  = 20.0
	unreadablePenaltyCap  = 25.0
	nonTextPenaltyCap     = 10.0
	deepPathPenaltyCap    = 10.0
	ratioFullPenaltyPoint = 0.25
)

// binaryProbeLimit caps how many sampled files are content-probed.
const binaryProbeLimit = 50

// Analyzer is the edge-case/robustness validation task.
type Analyzer struct{}

// New creates an edge-case validation task.
func New() task.Task {
	return &Analyzer{}
}

// Descriptor returns the task metadata.
func (a *Analyzer) Descriptor() task.Descriptor {
	return task.Descriptor{
		ID:          task.IDEdgeCase,
		Description: "Probe the tree for inputs that break tooling and score robustness.",
		Phase:       task.PhaseParallel,
	}
}

// Analyze scans the tree and scores its robustness.
func (a *Analyzer) Analyze(ctx context.Context, root string, opts task.Options) (task.Payload, error) {
	limits := common.ScanLimits(opts)

	catalog, err := fswalk.Scan(ctx, root, limits)
	if err != nil {
		return nil, fmt.Errorf("edgecase scan: %w", err)
	}

	payload := probe(ctx, catalog, limits)
	payload.Commentary = buildCommentary(payload)

	return payload, nil
}

func probe(ctx context.Context, catalog *fswalk.Catalog, limits fswalk.Limits) *task.EdgeCasePayload {
	payload := &task.EdgeCasePayload{
		UnreadableEntries: catalog.Unreadable,
	}

	for _, file := range catalog.Files {
		if file.Bytes == 0 {
			payload.EmptyFiles++
		}

		if file.Bytes > hugeFileBytes {
			payload.HugeFiles++
		}

		if file.Language == fswalk.LanguageUnknown {
			payload.UnknownExtensions++
		}

		if file.Depth >= limits.MaxDepth {
			payload.DeepPaths++
		}
	}

	probed := 0

	for _, file := range catalog.SampleSet() {
		if ctx.Err() != nil || probed >= binaryProbeLimit {
			break
		}

		if fswalk.IsDocumentation(file.Language) || file.Bytes == 0 {
			continue
		}

		probed++

		if _, ok := catalog.ReadSample(file); !ok {
			payload.NonTextSamples++
		}
	}

	payload.RobustnessScore = robustness(payload, len(catalog.Files))

	return payload
}

// robustness starts from a perfect score and deducts per probe. A tree
// with no files has nothing to break and scores neutral.
func robustness(payload *task.EdgeCasePayload, totalFiles int) float64 {
	if totalFiles == 0 {
		return common.NeutralScore
	}

	ratio := func(count int) float64 {
		return common.Saturate(float64(count)/float64(totalFiles), ratioFullPenaltyPoint)
	}

	score := perfectScore
	score -= emptyFilePenaltyCap * ratio(payload.EmptyFiles)
	score -= hugeFilePenaltyCap * ratio(payload.HugeFiles)
	score -= unknownExtPenaltyCap * ratio(payload.UnknownExtensions)
	score -= unreadablePenaltyCap * ratio(payload.UnreadableEntries)
	score -= nonTextPenaltyCap * ratio(payload.NonTextSamples)
	score -= deepPathPenaltyCap * ratio(payload.DeepPaths)

	return common.Clamp(score)
}

func buildCommentary(payload *task.EdgeCasePayload) task.Commentary {
	commentary := task.Commentary{
		KeyFindings:     []string{},
		Insights:        []string{},
		Recommendations: []task.Recommendation{},
	}

	type finding struct {
		count  int
		format string
	}

	findings := []finding{
		{payload.EmptyFiles, "%d empty files"},
		{payload.HugeFiles, "%d files exceed 5 MiB"},
		{payload.UnknownExtensions, "%d files with unrecognized extensions"},
		{payload.UnreadableEntries, "%d entries could not be read"},
		{payload.NonTextSamples, "%d expected-text files hold binary content"},
		{payload.DeepPaths, "%d paths sit at the traversal depth bound"},
	}

	for _, f := range findings {
		if f.count > 0 {
			commentary.KeyFindings = append(commentary.KeyFindings, fmt.Sprintf(f.format, f.count))
		}
	}

	if len(commentary.KeyFindings) == 0 {
		commentary.Insights = append(commentary.Insights,
			"No structural hazards detected; the tree is safe for automated tooling")
	}

	if payload.UnreadableEntries > 0 {
		commentary.Recommendations = append(commentary.Recommendations, task.Recommendation{
			Priority: task.PriorityMedium,
			Title:    "Fix permissions on unreadable entries",
			Impact:   "Unreadable paths silently degrade every automated analysis",
			Effort:   "hours",
		})
	}

	if payload.HugeFiles > 0 {
		commentary.Recommendations = append(commentary.Recommendations, task.Recommendation{
			Priority: task.PriorityLow,
			Title:    "Move oversized artifacts out of the source tree",
			Impact:   "Keeps clones and scans fast",
			Effort:   "hours",
		})
	}

	return commentary
}
