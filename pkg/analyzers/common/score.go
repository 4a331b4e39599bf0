package common

// NeutralScore is the baseline every score degrades toward when an
// analyzer has nothing to measure. Missing input is never an error.
const NeutralScore = 50.0

// Score bounds.
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Clamp bounds a score to [0, 100].
func Clamp(score float64) float64 {
	if score < MinScore {
		return MinScore
	}

	if score > MaxScore {
		return MaxScore
	}

	return score
}

// Density returns occurrences per hundred units, guarding against a
// zero base.
func Density(count, base int) float64 {
	if base <= 0 {
		return 0
	}

	return float64(count) / float64(base) * 100
}

// Saturate maps a density onto [0, 1] against a saturation point:
// values at or above the point yield 1.
func Saturate(value, saturation float64) float64 {
	if saturation <= 0 || value <= 0 {
		return 0
	}

	if value >= saturation {
		return 1
	}

	return value / saturation
}
