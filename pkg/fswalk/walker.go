// Package fswalk provides bounded, read-only directory traversal with
// language classification. One pathological tree cannot make a scan run
// unboundedly long: depth, per-directory entry count, and sampling are
// all capped.
package fswalk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Default traversal bounds.
const (
	DefaultMaxDepth         = 12
	DefaultMaxEntriesPerDir = 2000
	DefaultMaxSampledFiles  = 400
	DefaultMaxSampleBytes   = 64 * 1024
)

// ErrInvalidRoot is returned when the root path cannot be listed.
// Fatal: nothing can run against an unreadable root.
var ErrInvalidRoot = errors.New("invalid root path")

// noiseDirs are skipped everywhere: build artifacts, dependency caches,
// and version-control metadata.
var noiseDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"__pycache__":  true,
	"vendor":       true,
	"target":       true,
	"dist":         true,
	"build":        true,
	".idea":        true,
	".vscode":      true,
	"venv":         true,
	".venv":        true,
}

// Limits bound the traversal work per scan.
type Limits struct {
	MaxDepth         int
	MaxEntriesPerDir int
	MaxSampledFiles  int
	MaxSampleBytes   int
}

// DefaultLimits returns the default traversal bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:         DefaultMaxDepth,
		MaxEntriesPerDir: DefaultMaxEntriesPerDir,
		MaxSampledFiles:  DefaultMaxSampledFiles,
		MaxSampleBytes:   DefaultMaxSampleBytes,
	}
}

func (l Limits) withDefaults() Limits {
	if l.MaxDepth <= 0 {
		l.MaxDepth = DefaultMaxDepth
	}

	if l.MaxEntriesPerDir <= 0 {
		l.MaxEntriesPerDir = DefaultMaxEntriesPerDir
	}

	if l.MaxSampledFiles <= 0 {
		l.MaxSampledFiles = DefaultMaxSampledFiles
	}

	if l.MaxSampleBytes <= 0 {
		l.MaxSampleBytes = DefaultMaxSampleBytes
	}

	return l
}

// FileInfo describes one regular file found during a scan.
type FileInfo struct {
	// Path is slash-separated and relative to the scan root.
	Path     string
	Name     string
	Ext      string
	Bytes    int64
	Depth    int
	Language string
}

// LanguageStat aggregates file count and byte volume per language.
type LanguageStat struct {
	Files int
	Bytes int64
}

// Catalog is the outcome of one bounded scan.
type Catalog struct {
	Root     string
	Files    []FileInfo
	Dirs     int
	MaxDepth int
	// MaxFanOut is the largest observed per-directory entry count
	// (after the entry cap).
	MaxFanOut int
	// Unreadable counts entries skipped for permission or IO errors.
	Unreadable int
	// Truncated counts directories whose listing hit the entry cap.
	Truncated int

	limits Limits
}

// Scan walks the tree under root within the given limits. It fails only
// when root itself cannot be listed; unreadable subtrees are counted
// and skipped.
func Scan(ctx context.Context, root string, limits Limits) (*Catalog, error) {
	limits = limits.withDefaults()

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRoot, root, err)
	}

	catalog := &Catalog{Root: root, limits: limits}
	catalog.walkEntries(ctx, root, "", entries, 1)

	return catalog, nil
}

func (c *Catalog) walkEntries(ctx context.Context, root, rel string, entries []os.DirEntry, depth int) {
	if ctx.Err() != nil {
		return
	}

	if len(entries) > c.limits.MaxEntriesPerDir {
		entries = entries[:c.limits.MaxEntriesPerDir]
		c.Truncated++
	}

	if len(entries) > c.MaxFanOut {
		c.MaxFanOut = len(entries)
	}

	if depth > c.MaxDepth {
		c.MaxDepth = depth
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") && !entry.IsDir() {
			continue
		}

		childRel := name
		if rel != "" {
			childRel = rel + "/" + name
		}

		if entry.IsDir() {
			c.walkDir(ctx, root, childRel, name, depth)

			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			c.Unreadable++

			continue
		}

		c.Files = append(c.Files, FileInfo{
			Path:     childRel,
			Name:     name,
			Ext:      strings.ToLower(filepath.Ext(name)),
			Bytes:    info.Size(),
			Depth:    depth,
			Language: ClassifyPath(name),
		})
	}
}

func (c *Catalog) walkDir(ctx context.Context, root, rel, name string, depth int) {
	if noiseDirs[name] || strings.HasPrefix(name, ".") {
		return
	}

	if depth >= c.limits.MaxDepth {
		return
	}

	c.Dirs++

	children, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		c.Unreadable++

		return
	}

	c.walkEntries(ctx, root, rel, children, depth+1)
}

// TotalBytes returns the byte volume of all cataloged files.
func (c *Catalog) TotalBytes() int64 {
	var total int64
	for _, file := range c.Files {
		total += file.Bytes
	}

	return total
}

// Languages aggregates per-language file counts and byte volumes.
func (c *Catalog) Languages() map[string]LanguageStat {
	stats := make(map[string]LanguageStat)

	for _, file := range c.Files {
		stat := stats[file.Language]
		stat.Files++
		stat.Bytes += file.Bytes
		stats[file.Language] = stat
	}

	return stats
}

// SampleSet returns up to the configured number of files for content
// sampling, largest first (ties broken by path for determinism).
// Documentation and unknown files sort behind code.
func (c *Catalog) SampleSet() []FileInfo {
	selected := make([]FileInfo, len(c.Files))
	copy(selected, c.Files)

	sort.Slice(selected, func(i, j int) bool {
		iDoc := IsDocumentation(selected[i].Language) || selected[i].Language == LanguageUnknown
		jDoc := IsDocumentation(selected[j].Language) || selected[j].Language == LanguageUnknown

		if iDoc != jDoc {
			return jDoc
		}

		if selected[i].Bytes != selected[j].Bytes {
			return selected[i].Bytes > selected[j].Bytes
		}

		return selected[i].Path < selected[j].Path
	})

	if len(selected) > c.limits.MaxSampledFiles {
		selected = selected[:c.limits.MaxSampledFiles]
	}

	return selected
}

// ReadSample reads up to the sampling byte cap from one cataloged file.
// Binary content and unreadable files return ok=false; neither is an
// error.
func (c *Catalog) ReadSample(file FileInfo) (sample []byte, ok bool) {
	handle, err := os.Open(filepath.Join(c.Root, filepath.FromSlash(file.Path)))
	if err != nil {
		return nil, false
	}
	defer handle.Close()

	buf := make([]byte, c.limits.MaxSampleBytes)

	read, err := io.ReadFull(handle, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, false
	}

	buf = buf[:read]
	if IsBinarySample(buf) {
		return nil, false
	}

	return buf, true
}
