// Package quality implements the quality assessment task. It folds
// textual pattern counts over sampled file contents into the six named
// quality sub-metrics using deterministic, documented formulas.
package quality

import (
	"context"
	"fmt"
	"strings"

	"github.com/optqo/reposcope/pkg/analyzers/common"
	"github.com/optqo/reposcope/pkg/fswalk"
	"github.com/optqo/reposcope/pkg/task"
)

// definitionPatterns indicate function/class/module structure across
// the classified languages.
var definitionPatterns = []string{
	"func ", "def ", "function ", "class ", "sub ", "%macro", "proc ",
	"public ", "private static", "=> {", "fn ",
}

// entryPointPatterns indicate a runnable program.
var entryPointPatterns = []string{
	"func main(", "if __name__", "public static void main", "int main(",
}

// errorHandlingPatterns cover the handler idioms of the classified
// languages.
var errorHandlingPatterns = []string{
	"err != nil", "try:", "except", "try {", "catch", "rescue",
	"defer ", "panic(", "raise ", "error_check", "on error",
	".catch(", "errors.Is", "errors.As",
}

// debtPatterns mark acknowledged shortcuts.
var debtPatterns = []string{"TODO", "FIXME", "HACK", "XXX"}

// nestedLoopPatterns approximate quadratic hot spots: a loop keyword
// indented beneath another loop.
var nestedLoopPatterns = []string{
	"    for ", "\t\tfor ", "    while ", "\t\twhile ",
}

// docFileNames mark project-level documentation presence.
var docFileNames = map[string]bool{
	"readme.md": true, "readme.txt": true, "readme.rst": true, "readme": true,
	"contributing.md": true, "changelog.md": true,
}

// Scoring formula constants. Densities are per hundred lines; each
// saturation point marks the density treated as full marks for its
// sub-metric.
const (
	commentDensitySaturation = 25.0
	handlerDensitySaturation = 6.0
	defDensitySaturation     = 8.0
	debtDensityPenaltyCap    = 20.0
	longLineRatioPenaltyCap  = 25.0
	nestedLoopPenaltyCap     = 30.0

	docFileBonus      = 15.0
	entryPointBonus   = 10.0
	modularListLength = 5

	// smallFileLines is the per-file line count under which a file
	// counts as well-factored for the organization metric.
	smallFileLines = 400
)

// Analyzer is the quality assessment task.
type Analyzer struct{}

// New creates a quality assessment task.
func New() task.Task {
	return &Analyzer{}
}

// Descriptor returns the task metadata.
func (a *Analyzer) Descriptor() task.Descriptor {
	return task.Descriptor{
		ID:          task.IDQuality,
		Description: "Score the six quality sub-metrics from sampled file contents.",
		Phase:       task.PhaseParallel,
	}
}

// tally accumulates pattern counts across every sampled file.
type tally struct {
	files        int
	smallFiles   int
	lines        int
	commentLines int
	longLines    int
	definitions  int
	handlers     int
	debtMarks    int
	nestedLoops  int
	entryPoints  int
	docFiles     int
}

// Analyze scans the tree, samples contents, and scores the sub-metrics.
func (a *Analyzer) Analyze(ctx context.Context, root string, opts task.Options) (task.Payload, error) {
	catalog, err := fswalk.Scan(ctx, root, common.ScanLimits(opts))
	if err != nil {
		return nil, fmt.Errorf("quality scan: %w", err)
	}

	counts := collect(ctx, catalog)
	scores := score(counts)

	payload := &task.QualityPayload{
		Scores:       scores,
		FilesSampled: counts.files,
	}
	payload.Commentary = buildCommentary(counts, scores)

	return payload, nil
}

func collect(ctx context.Context, catalog *fswalk.Catalog) tally {
	counts := tally{}

	for _, file := range catalog.Files {
		if docFileNames[strings.ToLower(file.Name)] {
			counts.docFiles++
		}
	}

	for _, file := range catalog.SampleSet() {
		if ctx.Err() != nil {
			break
		}

		if fswalk.IsDocumentation(file.Language) || file.Language == fswalk.LanguageUnknown {
			continue
		}

		sample, ok := catalog.ReadSample(file)
		if !ok {
			continue
		}

		stats := common.AnalyzeLines(sample)

		counts.files++
		counts.lines += stats.Lines
		counts.commentLines += stats.CommentLines
		counts.longLines += stats.LongLines
		counts.definitions += common.CountAny(sample, definitionPatterns)
		counts.handlers += common.CountAny(sample, errorHandlingPatterns)
		counts.debtMarks += common.CountAny(sample, debtPatterns)
		counts.nestedLoops += common.CountAny(sample, nestedLoopPatterns)

		if common.ContainsAny(sample, entryPointPatterns) {
			counts.entryPoints++
		}

		if stats.Lines < smallFileLines {
			counts.smallFiles++
		}
	}

	return counts
}

// score maps the tally onto the six sub-metrics. With nothing sampled,
// every metric sits at the neutral baseline.
func score(counts tally) task.QualityScores {
	if counts.files == 0 || counts.lines == 0 {
		return task.QualityScores{
			Functionality: common.NeutralScore,
			Organization:  common.NeutralScore,
			Documentation: common.NeutralScore,
			BestPractices: common.NeutralScore,
			ErrorHandling: common.NeutralScore,
			Performance:   common.NeutralScore,
		}
	}

	defDensity := common.Density(counts.definitions, counts.lines)
	handlerDensity := common.Density(counts.handlers, counts.lines)
	commentDensity := common.Density(counts.commentLines, counts.lines)
	debtDensity := common.Density(counts.debtMarks, counts.lines)
	longLineRatio := common.Density(counts.longLines, counts.lines)
	nestedDensity := common.Density(counts.nestedLoops, counts.lines)
	smallFileRatio := float64(counts.smallFiles) / float64(counts.files)

	functionality := common.NeutralScore + 40*common.Saturate(defDensity, defDensitySaturation)
	if counts.entryPoints > 0 {
		functionality += entryPointBonus
	}

	organization := common.NeutralScore + 50*smallFileRatio

	documentation := 85 * common.Saturate(commentDensity, commentDensitySaturation)
	if counts.docFiles > 0 {
		documentation += docFileBonus
	}

	bestPractices := 85.0
	bestPractices -= debtDensityPenaltyCap * common.Saturate(debtDensity, 1.0)
	bestPractices -= longLineRatioPenaltyCap * common.Saturate(longLineRatio, 20.0)

	errorHandling := common.NeutralScore/2 + 75*common.Saturate(handlerDensity, handlerDensitySaturation)

	performance := 80 - nestedLoopPenaltyCap*common.Saturate(nestedDensity, 3.0)

	return task.QualityScores{
		Functionality: common.Clamp(functionality),
		Organization:  common.Clamp(organization),
		Documentation: common.Clamp(documentation),
		BestPractices: common.Clamp(bestPractices),
		ErrorHandling: common.Clamp(errorHandling),
		Performance:   common.Clamp(performance),
	}
}

func buildCommentary(counts tally, scores task.QualityScores) task.Commentary {
	commentary := task.Commentary{
		KeyFindings:     []string{},
		Insights:        []string{},
		Recommendations: []task.Recommendation{},
	}

	if counts.files == 0 {
		commentary.KeyFindings = append(commentary.KeyFindings,
			"No readable code files were sampled; quality metrics sit at the neutral baseline")

		return commentary
	}

	commentary.KeyFindings = append(commentary.KeyFindings,
		fmt.Sprintf("Sampled %d code files (%d lines)", counts.files, counts.lines))

	if scores.Documentation < common.NeutralScore {
		commentary.Recommendations = append(commentary.Recommendations, task.Recommendation{
			Priority: task.PriorityHigh,
			Title:    "Raise comment and documentation coverage",
			Impact:   "Reduces onboarding and maintenance cost across the codebase",
			Effort:   "2-4 weeks",
		})
	}

	if scores.ErrorHandling < common.NeutralScore {
		commentary.Recommendations = append(commentary.Recommendations, task.Recommendation{
			Priority: task.PriorityHigh,
			Title:    "Introduce consistent error handling",
			Impact:   "Improves resilience of failure paths",
			Effort:   "1-3 weeks",
		})
	}

	if counts.debtMarks > 0 {
		commentary.Insights = append(commentary.Insights,
			fmt.Sprintf("%d acknowledged debt markers (TODO/FIXME) found", counts.debtMarks))
	}

	if counts.entryPoints > 0 {
		commentary.Insights = append(commentary.Insights,
			fmt.Sprintf("%d entry points detected", counts.entryPoints))
	}

	return commentary
}
