package common

import (
	"bytes"
	"strings"
)

// SampleStats aggregates line-level counters over one sampled file.
type SampleStats struct {
	Lines        int
	CommentLines int
	LongLines    int
	BlankLines   int
}

// commentPrefixes covers the line-comment styles of the classified
// languages. A prefix match is enough; block comments are approximated
// by their opening markers.
var commentPrefixes = []string{"//", "#", "--", "/*", "*", "%", "rem ", "REM "}

// longLineThreshold flags lines that hurt readability.
const longLineThreshold = 120

// AnalyzeLines computes per-line counters for one sample.
func AnalyzeLines(sample []byte) SampleStats {
	stats := SampleStats{}

	for _, line := range bytes.Split(sample, []byte{'\n'}) {
		stats.Lines++

		trimmed := strings.TrimSpace(string(line))
		if trimmed == "" {
			stats.BlankLines++

			continue
		}

		if len(line) > longLineThreshold {
			stats.LongLines++
		}

		for _, prefix := range commentPrefixes {
			if strings.HasPrefix(trimmed, prefix) {
				stats.CommentLines++

				break
			}
		}
	}

	return stats
}

// CountAny returns the total occurrences of all patterns in the sample.
func CountAny(sample []byte, patterns []string) int {
	total := 0
	for _, pattern := range patterns {
		total += bytes.Count(sample, []byte(pattern))
	}

	return total
}

// ContainsAny reports whether any pattern occurs in the sample.
func ContainsAny(sample []byte, patterns []string) bool {
	for _, pattern := range patterns {
		if bytes.Contains(sample, []byte(pattern)) {
			return true
		}
	}

	return false
}
