package fswalk

import (
	"path/filepath"
	"strings"

	"github.com/src-d/enry/v2"
)

// LanguageUnknown is the retained category for files whose extension is
// absent from the fixed table and which enry cannot classify. Unknown
// files are kept, not dropped; their presence is itself a finding.
const LanguageUnknown = "Unknown"

// extensionLanguages is the fixed extension-to-language table. It
// mirrors the analytics-heavy catalog the product started from: the
// statistical platforms (SAS, SPSS, Stata, MATLAB, R) matter as much as
// the mainstream web stack.
var extensionLanguages = map[string]string{
	// Analytics and data science.
	".py":    "Python",
	".ipynb": "Python",
	".pyx":   "Python",
	".r":     "R",
	".rmd":   "R",
	".sas":   "SAS",
	".m":     "MATLAB",
	".mlx":   "MATLAB",
	".sps":   "SPSS",
	".do":    "Stata",
	".ado":   "Stata",
	".jl":    "Julia",

	// Web and backend.
	".js":   "JavaScript",
	".jsx":  "JavaScript",
	".mjs":  "JavaScript",
	".ts":   "TypeScript",
	".tsx":  "TypeScript",
	".html": "HTML",
	".htm":  "HTML",
	".css":  "CSS",
	".scss": "CSS",
	".sass": "CSS",
	".less": "CSS",
	".php":  "PHP",
	".java": "Java",
	".cs":   "C#",
	".go":   "Go",
	".rs":   "Rust",

	// Database and config.
	".sql":  "SQL",
	".ddl":  "SQL",
	".dml":  "SQL",
	".json": "JSON",
	".yaml": "YAML",
	".yml":  "YAML",
	".xml":  "XML",
	".xsd":  "XML",
	".csv":  "CSV",

	// Shell and scripts.
	".sh":   "Shell",
	".bash": "Shell",
	".zsh":  "Shell",
	".fish": "Shell",
	".ps1":  "PowerShell",
	".psm1": "PowerShell",
	".bat":  "Batch",
	".cmd":  "Batch",

	// Documentation.
	".md":       "Markdown",
	".markdown": "Markdown",
	".mdx":      "Markdown",
	".txt":      "Text",
	".rst":      "Text",
}

// documentationLanguages are categories that describe a project rather
// than implement it. They never become the primary technology.
var documentationLanguages = map[string]bool{
	"Markdown": true,
	"Text":     true,
	"JSON":     true,
	"YAML":     true,
	"XML":      true,
	"CSV":      true,
}

// ClassifyPath maps a file path to a language category. The fixed table
// wins; enry classifies extensions the table does not know; everything
// else is retained as Unknown.
func ClassifyPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))

	if language, ok := extensionLanguages[ext]; ok {
		return language
	}

	if language, safe := enry.GetLanguageByExtension(filepath.Base(path)); safe && language != "" {
		return language
	}

	return LanguageUnknown
}

// IsDocumentation reports whether a language category is documentation
// or data rather than executable code.
func IsDocumentation(language string) bool {
	return documentationLanguages[language]
}

// IsBinarySample reports whether sampled content looks binary. Binary
// files are skipped by content heuristics, never treated as errors.
func IsBinarySample(sample []byte) bool {
	return enry.IsBinary(sample)
}
