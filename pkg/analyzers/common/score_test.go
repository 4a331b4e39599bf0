package common_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/optqo/reposcope/pkg/analyzers/common"
)

func TestClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, common.Clamp(-5))
	assert.Equal(t, 100.0, common.Clamp(250))
	assert.Equal(t, 42.0, common.Clamp(42))
}

func TestDensity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10.0, common.Density(10, 100))
	assert.Equal(t, 0.0, common.Density(10, 0))
}

func TestSaturate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, common.Saturate(0, 10))
	assert.Equal(t, 0.5, common.Saturate(5, 10))
	assert.Equal(t, 1.0, common.Saturate(25, 10))
	assert.Equal(t, 0.0, common.Saturate(5, 0))
}

func TestAnalyzeLines(t *testing.T) {
	t.Parallel()

	sample := []byte("// comment\ncode := 1\n\n# hash comment\nx\n")

	stats := common.AnalyzeLines(sample)

	assert.Equal(t, 6, stats.Lines)
	assert.Equal(t, 2, stats.CommentLines)
	assert.Equal(t, 2, stats.BlankLines)
}

func TestCountAnyAndContainsAny(t *testing.T) {
	t.Parallel()

	sample := []byte("try:\n    pass\nexcept ValueError:\n    raise err\n")

	assert.Equal(t, 2, common.CountAny(sample, []string{"try:", "except"}))
	assert.True(t, common.ContainsAny(sample, []string{"raise "}))
	assert.False(t, common.ContainsAny(sample, []string{"err != nil"}))
}
