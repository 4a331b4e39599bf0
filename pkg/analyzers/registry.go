// Package analyzers wires the built-in analyzer tasks into a registry.
package analyzers

import (
	"github.com/optqo/reposcope/pkg/analyzers/architecture"
	"github.com/optqo/reposcope/pkg/analyzers/edgecase"
	"github.com/optqo/reposcope/pkg/analyzers/integration"
	"github.com/optqo/reposcope/pkg/analyzers/quality"
	"github.com/optqo/reposcope/pkg/analyzers/structure"
	"github.com/optqo/reposcope/pkg/analyzers/technology"
	"github.com/optqo/reposcope/pkg/task"
)

// Registrations returns the built-in task registrations in canonical
// order: parallel tasks first, then sequential tasks in their execution
// order.
func Registrations() []task.Registration {
	builtins := []task.Factory{
		technology.New,
		quality.New,
		structure.New,
		edgecase.New,
		architecture.New,
		integration.New,
	}

	registrations := make([]task.Registration, 0, len(builtins))
	for _, factory := range builtins {
		registrations = append(registrations, task.Registration{
			Descriptor: factory().Descriptor(),
			New:        factory,
		})
	}

	return registrations
}

// DefaultRegistry builds a registry holding every built-in task.
func DefaultRegistry() *task.Registry {
	registry, err := task.NewRegistry(Registrations())
	if err != nil {
		// Built-in IDs are distinct constants; a collision is a
		// programming error.
		panic(err)
	}

	return registry
}
