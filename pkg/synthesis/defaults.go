package synthesis

import (
	"errors"
	"fmt"
	"math"

	"github.com/optqo/reposcope/pkg/task"
)

// ErrInvalidWeights is returned when a weight set does not sum to one.
var ErrInvalidWeights = errors.New("quality weights must sum to 1.0")

// weightSumTolerance absorbs float drift in the weight-sum check.
const weightSumTolerance = 1e-6

// Neutral defaults substituted for every field a failed or unscheduled
// task owns. Reports are always fully populated.
const (
	DefaultScore = 50.0

	DefaultTechnology   = "Unknown"
	DefaultProjectType  = "General Software"
	DefaultArchitecture = "Custom Architecture"
	DefaultPriority     = "Medium"
)

// Maintainability tier thresholds over the overall quality score.
const (
	maintainabilityExcellent = 75.0
	maintainabilityGood      = 60.0
	maintainabilityFair      = 45.0
)

// Maintainability tier labels.
const (
	TierExcellent        = "Excellent"
	TierGood             = "Good"
	TierFair             = "Fair"
	TierNeedsImprovement = "Needs Improvement"
)

// Complexity tier thresholds over the structural complexity score.
const (
	complexityHigh   = 80.0
	complexityMedium = 60.0
)

// Complexity tier labels.
const (
	ComplexityHigh   = "High"
	ComplexityMedium = "Medium"
	ComplexityLow    = "Low"
)

// Investment priority thresholds over the overall quality score. Lower
// quality demands higher investment.
const (
	investmentHighBelow   = 50.0
	investmentMediumBelow = 70.0
)

// Investment priority labels.
const (
	InvestmentHigh   = "High"
	InvestmentMedium = "Medium"
	InvestmentLow    = "Low"
)

// maxRecommendations caps the merged recommendation list.
const maxRecommendations = 10

// Weights distributes the overall quality score across the six
// sub-metrics. A valid set sums to one.
type Weights struct {
	Functionality float64 `mapstructure:"functionality" yaml:"functionality"`
	Organization  float64 `mapstructure:"organization" yaml:"organization"`
	Documentation float64 `mapstructure:"documentation" yaml:"documentation"`
	BestPractices float64 `mapstructure:"best_practices" yaml:"best_practices"`
	ErrorHandling float64 `mapstructure:"error_handling" yaml:"error_handling"`
	Performance   float64 `mapstructure:"performance" yaml:"performance"`
}

// DefaultWeights returns the canonical weight distribution.
func DefaultWeights() Weights {
	return Weights{
		Functionality: 0.25,
		Organization:  0.20,
		Documentation: 0.15,
		BestPractices: 0.20,
		ErrorHandling: 0.10,
		Performance:   0.10,
	}
}

// Validate checks the weights sum to one within tolerance.
func (w Weights) Validate() error {
	sum := w.Functionality + w.Organization + w.Documentation +
		w.BestPractices + w.ErrorHandling + w.Performance

	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: got %.6f", ErrInvalidWeights, sum)
	}

	return nil
}

// Overall folds the six sub-metrics into one weighted score.
func (w Weights) Overall(scores task.QualityScores) float64 {
	return scores.Functionality*w.Functionality +
		scores.Organization*w.Organization +
		scores.Documentation*w.Documentation +
		scores.BestPractices*w.BestPractices +
		scores.ErrorHandling*w.ErrorHandling +
		scores.Performance*w.Performance
}

// MaintainabilityTier maps an overall quality score to its tier label.
func MaintainabilityTier(overall float64) string {
	switch {
	case overall >= maintainabilityExcellent:
		return TierExcellent
	case overall >= maintainabilityGood:
		return TierGood
	case overall >= maintainabilityFair:
		return TierFair
	default:
		return TierNeedsImprovement
	}
}

// ComplexityTier maps a structural complexity score to its tier label.
func ComplexityTier(complexity float64) string {
	switch {
	case complexity >= complexityHigh:
		return ComplexityHigh
	case complexity >= complexityMedium:
		return ComplexityMedium
	default:
		return ComplexityLow
	}
}

// InvestmentPriority derives the remediation urgency from the overall
// quality score.
func InvestmentPriority(overall float64) string {
	switch {
	case overall < investmentHighBelow:
		return InvestmentHigh
	case overall < investmentMediumBelow:
		return InvestmentMedium
	default:
		return InvestmentLow
	}
}

// neutralQualityScores returns every sub-metric at the default score.
func neutralQualityScores() task.QualityScores {
	return task.QualityScores{
		Functionality: DefaultScore,
		Organization:  DefaultScore,
		Documentation: DefaultScore,
		BestPractices: DefaultScore,
		ErrorHandling: DefaultScore,
		Performance:   DefaultScore,
	}
}
