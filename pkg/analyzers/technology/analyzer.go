// Package technology implements the technology detection task: it
// classifies every file in the tree into a language/category table,
// ranks languages by byte volume, and derives the project type from
// naming signals.
package technology

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/optqo/reposcope/pkg/analyzers/common"
	"github.com/optqo/reposcope/pkg/fswalk"
	"github.com/optqo/reposcope/pkg/task"
)

// Neutral labels applied when no signal dominates.
const (
	UnknownTechnology  = "Unknown"
	GeneralProjectType = "General Software"
)

// percentBase converts byte shares to percentages.
const percentBase = 100

// manifestFrameworks maps well-known manifest/marker files to the
// framework or toolchain they indicate.
var manifestFrameworks = map[string]string{
	"go.mod":           "Go modules",
	"package.json":     "Node.js",
	"requirements.txt": "Python (pip)",
	"pyproject.toml":   "Python (pyproject)",
	"pipfile":          "Python (pipenv)",
	"pom.xml":          "Maven",
	"build.gradle":     "Gradle",
	"cargo.toml":       "Cargo",
	"gemfile":          "Bundler",
	"composer.json":    "Composer",
	"dockerfile":       "Docker",
	"makefile":         "Make",
	"cmakelists.txt":   "CMake",
}

// projectIndicators maps project-type labels to directory-name keyword
// signals. Scores accumulate per keyword hit.
var projectIndicators = map[string][]string{
	"Data Analytics":   {"data", "analysis", "etl", "pipeline", "warehouse"},
	"Web Application":  {"app", "web", "frontend", "backend", "api"},
	"Machine Learning": {"ml", "model", "train", "predict", "sklearn"},
	"Enterprise":       {"service", "business", "domain", "enterprise"},
	"Research":         {"research", "experiment", "study", "paper"},
}

// technologyTypeAffinity boosts a project type when the primary
// technology strongly implies it.
var technologyTypeAffinity = map[string]string{
	"Python": "Data Analytics",
	"R":      "Data Analytics",
	"SAS":    "Data Analytics",
	"MATLAB": "Data Analytics",
	"SPSS":   "Data Analytics",
	"Stata":  "Data Analytics",

	"JavaScript": "Web Application",
	"TypeScript": "Web Application",
	"HTML":       "Web Application",
	"CSS":        "Web Application",
	"PHP":        "Web Application",

	"Java": "Enterprise",
	"C#":   "Enterprise",
	"Go":   "Enterprise",
}

// Keyword scoring weights for project-type classification.
const (
	keywordHitScore      = 1
	primaryTechBoost     = 3
	minIndicatorEvidence = 1
)

// Analyzer is the technology detection task.
type Analyzer struct{}

// New creates a technology detection task.
func New() task.Task {
	return &Analyzer{}
}

// Descriptor returns the task metadata.
func (a *Analyzer) Descriptor() task.Descriptor {
	return task.Descriptor{
		ID:          task.IDTechnology,
		Description: "Detect languages, frameworks, and the project type from the file tree.",
		Phase:       task.PhaseParallel,
	}
}

// Analyze scans the tree and builds the technology payload.
func (a *Analyzer) Analyze(ctx context.Context, root string, opts task.Options) (task.Payload, error) {
	catalog, err := fswalk.Scan(ctx, root, common.ScanLimits(opts))
	if err != nil {
		return nil, fmt.Errorf("technology scan: %w", err)
	}

	stack := rankedStack(catalog)
	primary := primaryTechnology(stack)
	frameworks := detectFrameworks(catalog)
	projectType := classifyProjectType(catalog, primary)

	payload := &task.TechnologyPayload{
		PrimaryTechnology: primary,
		Stack:             stack,
		Frameworks:        frameworks,
		ProjectType:       projectType,
		TechnologyCount:   len(stack),
	}
	payload.Commentary = buildCommentary(catalog, stack, primary, frameworks)

	return payload, nil
}

// rankedStack aggregates per-language stats sorted by byte volume,
// largest first.
func rankedStack(catalog *fswalk.Catalog) []task.TechnologyEntry {
	stats := catalog.Languages()
	total := catalog.TotalBytes()

	entries := make([]task.TechnologyEntry, 0, len(stats))

	for language, stat := range stats {
		share := 0.0
		if total > 0 {
			share = float64(stat.Bytes) / float64(total) * percentBase
		}

		entries = append(entries, task.TechnologyEntry{
			Language:  language,
			FileCount: stat.Files,
			Bytes:     stat.Bytes,
			Share:     share,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Bytes != entries[j].Bytes {
			return entries[i].Bytes > entries[j].Bytes
		}

		return entries[i].Language < entries[j].Language
	})

	return entries
}

// primaryTechnology picks the largest code language by byte volume.
// Documentation, data, and unknown categories never become primary.
func primaryTechnology(stack []task.TechnologyEntry) string {
	for _, entry := range stack {
		if entry.Language == fswalk.LanguageUnknown || fswalk.IsDocumentation(entry.Language) {
			continue
		}

		return entry.Language
	}

	return UnknownTechnology
}

func detectFrameworks(catalog *fswalk.Catalog) []string {
	seen := make(map[string]bool)
	frameworks := make([]string, 0)

	for _, file := range catalog.Files {
		framework, ok := manifestFrameworks[strings.ToLower(file.Name)]
		if !ok || seen[framework] {
			continue
		}

		seen[framework] = true
		frameworks = append(frameworks, framework)
	}

	sort.Strings(frameworks)

	return frameworks
}

// classifyProjectType scores project-type labels from directory-name
// keywords and the primary technology, defaulting to the neutral label.
func classifyProjectType(catalog *fswalk.Catalog, primary string) string {
	scores := make(map[string]int)

	for _, file := range catalog.Files {
		dir := strings.ToLower(file.Path)

		for label, keywords := range projectIndicators {
			for _, keyword := range keywords {
				if strings.Contains(dir, keyword) {
					scores[label] += keywordHitScore
				}
			}
		}
	}

	if boosted, ok := technologyTypeAffinity[primary]; ok {
		scores[boosted] += primaryTechBoost
	}

	best := GeneralProjectType
	bestScore := minIndicatorEvidence - 1

	labels := make([]string, 0, len(scores))
	for label := range scores {
		labels = append(labels, label)
	}

	sort.Strings(labels)

	for _, label := range labels {
		if scores[label] > bestScore {
			best = label
			bestScore = scores[label]
		}
	}

	return best
}

func buildCommentary(
	catalog *fswalk.Catalog,
	stack []task.TechnologyEntry,
	primary string,
	frameworks []string,
) task.Commentary {
	commentary := task.Commentary{
		KeyFindings:     []string{},
		Insights:        []string{},
		Recommendations: []task.Recommendation{},
	}

	if primary != UnknownTechnology {
		commentary.KeyFindings = append(commentary.KeyFindings,
			fmt.Sprintf("Primary technology is %s across %d files", primary, len(catalog.Files)))
	} else {
		commentary.KeyFindings = append(commentary.KeyFindings,
			"No recognized programming language dominates the tree")
	}

	for _, entry := range stack {
		if entry.Language == fswalk.LanguageUnknown && entry.FileCount > 0 {
			commentary.KeyFindings = append(commentary.KeyFindings,
				fmt.Sprintf("%d files carry unrecognized extensions", entry.FileCount))

			break
		}
	}

	if len(frameworks) > 0 {
		commentary.Insights = append(commentary.Insights,
			fmt.Sprintf("Build tooling detected: %s", strings.Join(frameworks, ", ")))
	}

	codeLanguages := 0

	for _, entry := range stack {
		if entry.Language != fswalk.LanguageUnknown && !fswalk.IsDocumentation(entry.Language) {
			codeLanguages++
		}
	}

	if codeLanguages > 1 {
		commentary.Insights = append(commentary.Insights,
			fmt.Sprintf("Polyglot codebase: %d code languages present", codeLanguages))
	}

	return commentary
}
