// Package common provides helpers shared by the analyzer tasks:
// option decoding, pattern counting over sampled content, and score
// arithmetic.
package common

import (
	"github.com/optqo/reposcope/pkg/fswalk"
	"github.com/optqo/reposcope/pkg/task"
)

// Option keys every analyzer honors. Unrecognized keys in the bag are
// ignored.
const (
	OptMaxDepth         = "max_depth"
	OptMaxEntriesPerDir = "max_entries_per_dir"
	OptMaxSampledFiles  = "max_sampled_files"
	OptMaxSampleBytes   = "max_sample_bytes"
)

// ScanLimits decodes traversal bounds from the options bag, falling
// back to the package defaults.
func ScanLimits(opts task.Options) fswalk.Limits {
	defaults := fswalk.DefaultLimits()

	return fswalk.Limits{
		MaxDepth:         opts.Int(OptMaxDepth, defaults.MaxDepth),
		MaxEntriesPerDir: opts.Int(OptMaxEntriesPerDir, defaults.MaxEntriesPerDir),
		MaxSampledFiles:  opts.Int(OptMaxSampledFiles, defaults.MaxSampledFiles),
		MaxSampleBytes:   opts.Int(OptMaxSampleBytes, defaults.MaxSampleBytes),
	}
}
