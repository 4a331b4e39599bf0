// Package integration implements the multi-language integration task.
// It pairs every code language found in the tree, scores each pair
// against an interoperability affinity table, and reports how cohesive
// the polyglot mix is.
package integration

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/optqo/reposcope/pkg/analyzers/common"
	"github.com/optqo/reposcope/pkg/fswalk"
	"github.com/optqo/reposcope/pkg/task"
)

// singleLanguageCohesion applies when the tree holds at most one code
// language; a monoglot tree has no integration problem to have.
const singleLanguageCohesion = 90.0

// lowAffinityThreshold marks a pair worth calling out.
const lowAffinityThreshold = 60.0

// interopMarkers map interop-signal labels to file name fragments that
// indicate a deliberate language boundary.
var interopMarkers = map[string][]string{
	"Foreign function interface": {"ffi", "cgo", "ctypes", "jni", "bindings"},
	"Subprocess orchestration":   {"run.sh", "run.bat", "invoke", "wrapper"},
	"Shared data files":          {".csv", ".json", ".parquet", ".xlsx"},
	"Generated code":             {".pb.go", "_pb2.py", ".gen.", "generated"},
	"Embedded SQL":               {".sql"},
}

// Analyzer is the multi-language integration task. It runs in the
// sequential phase alongside architecture analysis.
type Analyzer struct{}

// New creates a multi-language integration task.
func New() task.Task {
	return &Analyzer{}
}

// Descriptor returns the task metadata.
func (a *Analyzer) Descriptor() task.Descriptor {
	return task.Descriptor{
		ID:          task.IDIntegration,
		Description: "Score how well the languages in the tree interoperate.",
		Phase:       task.PhaseSequential,
	}
}

// Analyze scans the tree and scores its language mix.
func (a *Analyzer) Analyze(ctx context.Context, root string, opts task.Options) (task.Payload, error) {
	catalog, err := fswalk.Scan(ctx, root, common.ScanLimits(opts))
	if err != nil {
		return nil, fmt.Errorf("integration scan: %w", err)
	}

	languages := codeLanguages(catalog)
	pairs := scorePairs(languages)

	payload := &task.IntegrationPayload{
		Languages:      languages,
		Pairs:          pairs,
		CohesionScore:  cohesion(pairs),
		InteropSignals: detectInteropSignals(catalog),
	}
	payload.Commentary = buildCommentary(payload)

	return payload, nil
}

// codeLanguages returns the code languages in the tree, sorted.
// Documentation and unknown categories are not integration parties.
func codeLanguages(catalog *fswalk.Catalog) []string {
	languages := make([]string, 0)

	for language := range catalog.Languages() {
		if language == fswalk.LanguageUnknown || fswalk.IsDocumentation(language) {
			continue
		}

		languages = append(languages, language)
	}

	sort.Strings(languages)

	return languages
}

// scorePairs builds every unordered language pair with its affinity,
// sorted by affinity descending then lexically.
func scorePairs(languages []string) []task.LanguagePair {
	pairs := make([]task.LanguagePair, 0, len(languages)*(len(languages)-1)/2)

	for i := 0; i < len(languages); i++ {
		for j := i + 1; j < len(languages); j++ {
			pairs = append(pairs, task.LanguagePair{
				First:    languages[i],
				Second:   languages[j],
				Affinity: Affinity(languages[i], languages[j]),
			})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Affinity != pairs[j].Affinity {
			return pairs[i].Affinity > pairs[j].Affinity
		}

		if pairs[i].First != pairs[j].First {
			return pairs[i].First < pairs[j].First
		}

		return pairs[i].Second < pairs[j].Second
	})

	return pairs
}

// cohesion averages pair affinities. With fewer than two languages the
// mix is trivially cohesive.
func cohesion(pairs []task.LanguagePair) float64 {
	if len(pairs) == 0 {
		return singleLanguageCohesion
	}

	total := 0.0
	for _, pair := range pairs {
		total += pair.Affinity
	}

	return common.Clamp(total / float64(len(pairs)))
}

func detectInteropSignals(catalog *fswalk.Catalog) []string {
	signals := make([]string, 0, len(interopMarkers))

	for label, markers := range interopMarkers {
		for _, file := range catalog.Files {
			lowered := strings.ToLower(file.Path)

			found := false

			for _, marker := range markers {
				if strings.Contains(lowered, marker) {
					found = true

					break
				}
			}

			if found {
				signals = append(signals, label)

				break
			}
		}
	}

	sort.Strings(signals)

	return signals
}

func buildCommentary(payload *task.IntegrationPayload) task.Commentary {
	commentary := task.Commentary{
		KeyFindings:     []string{},
		Insights:        []string{},
		Recommendations: []task.Recommendation{},
	}

	switch len(payload.Languages) {
	case 0:
		commentary.KeyFindings = append(commentary.KeyFindings,
			"No code languages detected; integration analysis has nothing to pair")
	case 1:
		commentary.KeyFindings = append(commentary.KeyFindings,
			fmt.Sprintf("Single-language codebase (%s); no cross-language boundaries", payload.Languages[0]))
	default:
		commentary.KeyFindings = append(commentary.KeyFindings,
			fmt.Sprintf("%d code languages form %d integration pairs (cohesion %.0f)",
				len(payload.Languages), len(payload.Pairs), payload.CohesionScore))
	}

	for _, pair := range payload.Pairs {
		if pair.Affinity < lowAffinityThreshold {
			commentary.Insights = append(commentary.Insights,
				fmt.Sprintf("%s and %s rarely interoperate cleanly (affinity %.0f)",
					pair.First, pair.Second, pair.Affinity))
		}
	}

	if len(payload.InteropSignals) > 0 {
		commentary.Insights = append(commentary.Insights,
			fmt.Sprintf("Interop mechanisms present: %s", strings.Join(payload.InteropSignals, ", ")))
	}

	if payload.CohesionScore < lowAffinityThreshold && len(payload.Pairs) > 0 {
		commentary.Recommendations = append(commentary.Recommendations, task.Recommendation{
			Priority: task.PriorityMedium,
			Title:    "Define explicit contracts between language boundaries",
			Impact:   "Loosely-affiliated languages need documented data contracts to stay maintainable",
			Effort:   "1-2 weeks",
		})
	}

	return commentary
}
