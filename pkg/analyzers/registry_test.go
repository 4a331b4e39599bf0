package analyzers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optqo/reposcope/pkg/analyzers"
	"github.com/optqo/reposcope/pkg/task"
)

func TestDefaultRegistry_HoldsEveryBuiltin(t *testing.T) {
	t.Parallel()

	registry := analyzers.DefaultRegistry()

	expected := []string{
		task.IDTechnology, task.IDQuality, task.IDStructure,
		task.IDEdgeCase, task.IDArchitecture, task.IDIntegration,
	}

	descriptors := registry.All()
	require.Len(t, descriptors, len(expected))

	for i, id := range expected {
		assert.Equal(t, id, descriptors[i].ID)
	}
}

func TestDefaultRegistry_PhaseAssignment(t *testing.T) {
	t.Parallel()

	registry := analyzers.DefaultRegistry()

	sequential := map[string]bool{
		task.IDArchitecture: true,
		task.IDIntegration:  true,
	}

	for _, descriptor := range registry.All() {
		if sequential[descriptor.ID] {
			assert.Equal(t, task.PhaseSequential, descriptor.Phase, descriptor.ID)
		} else {
			assert.Equal(t, task.PhaseParallel, descriptor.Phase, descriptor.ID)
		}
	}
}

func TestDefaultRegistry_BundlesResolve(t *testing.T) {
	t.Parallel()

	registry := analyzers.DefaultRegistry()

	for _, name := range task.BundleNames() {
		descriptors, err := registry.Bundle(name)
		require.NoError(t, err)
		assert.NotEmpty(t, descriptors)
	}

	basic, err := registry.Bundle(task.BundleBasic)
	require.NoError(t, err)
	require.Len(t, basic, 2)

	// The smallest bundle runs entirely in the concurrent phase.
	for _, descriptor := range basic {
		assert.Equal(t, task.PhaseParallel, descriptor.Phase)
	}
}

func TestDefaultRegistry_DescriptorsMatchTaskInstances(t *testing.T) {
	t.Parallel()

	registry := analyzers.DefaultRegistry()

	for _, descriptor := range registry.All() {
		instance, err := registry.Create(descriptor.ID)
		require.NoError(t, err)
		assert.Equal(t, descriptor, instance.Descriptor())
	}
}
