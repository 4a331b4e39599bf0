// Package structure implements the file-structure analysis task:
// directory depth, fan-out, size distribution, and an organization
// score from modularity heuristics.
package structure

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/optqo/reposcope/pkg/analyzers/common"
	"github.com/optqo/reposcope/pkg/fswalk"
	"github.com/optqo/reposcope/pkg/task"
)

// Organization heuristics: bonuses for conventional layout signals,
// penalties for sprawl.
const (
	testDirBonus     = 12.0
	docsDirBonus     = 8.0
	modularTreeBonus = 10.0

	deepTreePenalty  = 12.0
	flatRootPenalty  = 15.0
	wideFanPenalty   = 10.0
	hugeFilesPenalty = 10.0

	// deepTreeDepth is the depth beyond which nesting starts to hurt.
	deepTreeDepth = 8
	// wideFanOut is the per-directory entry count beyond which a
	// directory is considered overcrowded.
	wideFanOut = 60
	// flatRootRatio is the share of files living at the tree root
	// beyond which the layout counts as flat.
	flatRootRatio = 0.5
	// hugeFileBytes marks files that should likely be split or moved
	// out of the tree.
	hugeFileBytes = int64(1 << 20)
	// largestFilesListed caps the reported largest-file list.
	largestFilesListed = 5
)

// Complexity formula: file count, depth, and fan-out each saturate at a
// reference scale and contribute a fixed slice of the 0-100 range.
const (
	fileCountSaturation = 800.0
	depthSaturation     = 12.0
	fanOutSaturation    = 80.0

	fileCountWeight = 50.0
	depthWeight     = 25.0
	fanOutWeight    = 25.0
)

// Analyzer is the file-structure analysis task.
type Analyzer struct{}

// New creates a file-structure analysis task.
func New() task.Task {
	return &Analyzer{}
}

// Descriptor returns the task metadata.
func (a *Analyzer) Descriptor() task.Descriptor {
	return task.Descriptor{
		ID:          task.IDStructure,
		Description: "Measure tree shape: depth, fan-out, size distribution, organization.",
		Phase:       task.PhaseParallel,
	}
}

// Analyze scans the tree and scores its shape.
func (a *Analyzer) Analyze(ctx context.Context, root string, opts task.Options) (task.Payload, error) {
	catalog, err := fswalk.Scan(ctx, root, common.ScanLimits(opts))
	if err != nil {
		return nil, fmt.Errorf("structure scan: %w", err)
	}

	payload := &task.StructurePayload{
		TotalFiles:        len(catalog.Files),
		TotalDirs:         catalog.Dirs,
		TotalBytes:        catalog.TotalBytes(),
		MaxDepth:          catalog.MaxDepth,
		MaxFanOut:         catalog.MaxFanOut,
		OrganizationScore: organizationScore(catalog),
		ComplexityScore:   complexityScore(catalog),
		LargestFiles:      largestFiles(catalog),
	}
	payload.Commentary = buildCommentary(catalog, payload)

	return payload, nil
}

func organizationScore(catalog *fswalk.Catalog) float64 {
	if len(catalog.Files) == 0 {
		return common.NeutralScore
	}

	score := common.NeutralScore

	if hasDir(catalog, "test", "tests", "spec", "_test") {
		score += testDirBonus
	}

	if hasDir(catalog, "doc", "docs") {
		score += docsDirBonus
	}

	if catalog.Dirs > 1 {
		score += modularTreeBonus
	}

	if catalog.MaxDepth > deepTreeDepth {
		score -= deepTreePenalty
	}

	if rootFileRatio(catalog) > flatRootRatio {
		score -= flatRootPenalty
	}

	if catalog.MaxFanOut > wideFanOut {
		score -= wideFanPenalty
	}

	if countHugeFiles(catalog) > 0 {
		score -= hugeFilesPenalty
	}

	return common.Clamp(score)
}

func complexityScore(catalog *fswalk.Catalog) float64 {
	if len(catalog.Files) == 0 {
		return common.NeutralScore
	}

	score := fileCountWeight*common.Saturate(float64(len(catalog.Files)), fileCountSaturation) +
		depthWeight*common.Saturate(float64(catalog.MaxDepth), depthSaturation) +
		fanOutWeight*common.Saturate(float64(catalog.MaxFanOut), fanOutSaturation)

	return common.Clamp(score)
}

func largestFiles(catalog *fswalk.Catalog) []task.FileStat {
	files := make([]task.FileStat, 0, len(catalog.Files))
	for _, file := range catalog.Files {
		files = append(files, task.FileStat{Path: file.Path, Bytes: file.Bytes})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Bytes != files[j].Bytes {
			return files[i].Bytes > files[j].Bytes
		}

		return files[i].Path < files[j].Path
	})

	if len(files) > largestFilesListed {
		files = files[:largestFilesListed]
	}

	return files
}

func hasDir(catalog *fswalk.Catalog, names ...string) bool {
	for _, file := range catalog.Files {
		segments := strings.Split(file.Path, "/")
		if len(segments) < 2 {
			continue
		}

		for _, segment := range segments[:len(segments)-1] {
			lowered := strings.ToLower(segment)
			for _, name := range names {
				if lowered == name || strings.HasSuffix(lowered, name) {
					return true
				}
			}
		}
	}

	return false
}

func rootFileRatio(catalog *fswalk.Catalog) float64 {
	if len(catalog.Files) == 0 {
		return 0
	}

	rootFiles := 0

	for _, file := range catalog.Files {
		if !strings.Contains(file.Path, "/") {
			rootFiles++
		}
	}

	return float64(rootFiles) / float64(len(catalog.Files))
}

func countHugeFiles(catalog *fswalk.Catalog) int {
	huge := 0

	for _, file := range catalog.Files {
		if file.Bytes > hugeFileBytes {
			huge++
		}
	}

	return huge
}

func buildCommentary(catalog *fswalk.Catalog, payload *task.StructurePayload) task.Commentary {
	commentary := task.Commentary{
		KeyFindings:     []string{},
		Insights:        []string{},
		Recommendations: []task.Recommendation{},
	}

	commentary.KeyFindings = append(commentary.KeyFindings,
		fmt.Sprintf("%d files in %d directories, max depth %d",
			payload.TotalFiles, payload.TotalDirs, payload.MaxDepth))

	if payload.TotalFiles == 0 {
		commentary.Insights = append(commentary.Insights,
			"Tree contains no regular files; structural scores sit at the neutral baseline")

		return commentary
	}

	if ratio := rootFileRatio(catalog); ratio > flatRootRatio {
		commentary.Recommendations = append(commentary.Recommendations, task.Recommendation{
			Priority: task.PriorityMedium,
			Title:    "Group root-level files into purpose-named directories",
			Impact:   "Makes ownership and navigation clearer",
			Effort:   "days",
		})
	}

	if payload.MaxDepth > deepTreeDepth {
		commentary.Insights = append(commentary.Insights,
			fmt.Sprintf("Nesting reaches depth %d; deep paths slow navigation", payload.MaxDepth))
	}

	if catalog.Truncated > 0 {
		commentary.Insights = append(commentary.Insights,
			fmt.Sprintf("%d directories exceeded the per-directory entry bound and were truncated", catalog.Truncated))
	}

	return commentary
}
