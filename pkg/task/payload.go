package task

// RecommendationPriority is the closed priority vocabulary for
// recommendations.
type RecommendationPriority string

// Recommendation priorities, highest first.
const (
	PriorityHigh   RecommendationPriority = "high"
	PriorityMedium RecommendationPriority = "medium"
	PriorityLow    RecommendationPriority = "low"
)

// Recommendation is an analyzer-produced, human-readable action item.
// No uniqueness constraint; synthesis may de-duplicate or truncate.
type Recommendation struct {
	Priority RecommendationPriority `json:"priority" yaml:"priority"`
	Title    string                 `json:"title" yaml:"title"`
	Impact   string                 `json:"impact" yaml:"impact"`
	Effort   string                 `json:"effort" yaml:"effort"`
}

// Commentary holds the common observation fields every payload carries
// and the synthesizer folds into the report collections.
type Commentary struct {
	KeyFindings     []string         `json:"key_findings" yaml:"key_findings"`
	Insights        []string         `json:"insights" yaml:"insights"`
	Recommendations []Recommendation `json:"recommendations" yaml:"recommendations"`
}

// Common returns the commentary block. Embedding Commentary in a payload
// struct satisfies the Payload interface through this method.
func (c Commentary) Common() Commentary {
	return c
}

// Payload is one member of the closed set of analyzer result shapes.
// The synthesizer switches over the concrete types; anything it does not
// recognize contributes only its commentary.
type Payload interface {
	Common() Commentary
}

// TechnologyEntry describes one detected language or technology.
type TechnologyEntry struct {
	Language  string  `json:"language" yaml:"language"`
	FileCount int     `json:"file_count" yaml:"file_count"`
	Bytes     int64   `json:"bytes" yaml:"bytes"`
	Share     float64 `json:"share" yaml:"share"` // percentage of classified bytes
}

// TechnologyPayload is the technology detection task output.
type TechnologyPayload struct {
	Commentary

	PrimaryTechnology string            `json:"primary_technology" yaml:"primary_technology"`
	Stack             []TechnologyEntry `json:"stack" yaml:"stack"`
	Frameworks        []string          `json:"frameworks" yaml:"frameworks"`
	ProjectType       string            `json:"project_type" yaml:"project_type"`
	TechnologyCount   int               `json:"technology_count" yaml:"technology_count"`
}

// QualityScores holds the six named quality sub-metrics, each 0-100.
type QualityScores struct {
	Functionality float64 `json:"functionality" yaml:"functionality"`
	Organization  float64 `json:"organization" yaml:"organization"`
	Documentation float64 `json:"documentation" yaml:"documentation"`
	BestPractices float64 `json:"best_practices" yaml:"best_practices"`
	ErrorHandling float64 `json:"error_handling" yaml:"error_handling"`
	Performance   float64 `json:"performance" yaml:"performance"`
}

// QualityPayload is the quality assessment task output.
type QualityPayload struct {
	Commentary

	Scores       QualityScores `json:"scores" yaml:"scores"`
	FilesSampled int           `json:"files_sampled" yaml:"files_sampled"`
}

// ArchitecturePayload is the architecture analysis task output.
type ArchitecturePayload struct {
	Commentary

	Pattern           string   `json:"pattern" yaml:"pattern"`
	Confidence        float64  `json:"confidence" yaml:"confidence"`
	DataFlowStages    []string `json:"data_flow_stages" yaml:"data_flow_stages"`
	IntegrationPoints []string `json:"integration_points" yaml:"integration_points"`
	Strengths         []string `json:"strengths" yaml:"strengths"`
	Concerns          []string `json:"concerns" yaml:"concerns"`
}

// FileStat identifies a file and its size, used for largest-file lists.
type FileStat struct {
	Path  string `json:"path" yaml:"path"`
	Bytes int64  `json:"bytes" yaml:"bytes"`
}

// StructurePayload is the file-structure analysis task output.
type StructurePayload struct {
	Commentary

	TotalFiles        int        `json:"total_files" yaml:"total_files"`
	TotalDirs         int        `json:"total_dirs" yaml:"total_dirs"`
	TotalBytes        int64      `json:"total_bytes" yaml:"total_bytes"`
	MaxDepth          int        `json:"max_depth" yaml:"max_depth"`
	MaxFanOut         int        `json:"max_fan_out" yaml:"max_fan_out"`
	OrganizationScore float64    `json:"organization_score" yaml:"organization_score"`
	ComplexityScore   float64    `json:"complexity_score" yaml:"complexity_score"`
	LargestFiles      []FileStat `json:"largest_files" yaml:"largest_files"`
}

// LanguagePair scores the interoperability affinity of two languages
// found in the same tree.
type LanguagePair struct {
	First    string  `json:"first" yaml:"first"`
	Second   string  `json:"second" yaml:"second"`
	Affinity float64 `json:"affinity" yaml:"affinity"`
}

// IntegrationPayload is the multi-language integration task output.
type IntegrationPayload struct {
	Commentary

	Languages      []string       `json:"languages" yaml:"languages"`
	Pairs          []LanguagePair `json:"pairs" yaml:"pairs"`
	CohesionScore  float64        `json:"cohesion_score" yaml:"cohesion_score"`
	InteropSignals []string       `json:"interop_signals" yaml:"interop_signals"`
}

// EdgeCasePayload is the edge-case/robustness validation task output.
type EdgeCasePayload struct {
	Commentary

	RobustnessScore   float64 `json:"robustness_score" yaml:"robustness_score"`
	EmptyFiles        int     `json:"empty_files" yaml:"empty_files"`
	HugeFiles         int     `json:"huge_files" yaml:"huge_files"`
	UnknownExtensions int     `json:"unknown_extensions" yaml:"unknown_extensions"`
	UnreadableEntries int     `json:"unreadable_entries" yaml:"unreadable_entries"`
	NonTextSamples    int     `json:"non_text_samples" yaml:"non_text_samples"`
	DeepPaths         int     `json:"deep_paths" yaml:"deep_paths"`
}
