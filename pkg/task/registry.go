package task

import (
	"errors"
	"fmt"
)

// Task identifiers for the built-in analyzers.
const (
	IDTechnology   = "technology"
	IDQuality      = "quality"
	IDStructure    = "structure"
	IDEdgeCase     = "edgecase"
	IDArchitecture = "architecture"
	IDIntegration  = "integration"
)

// Bundle names. Each bundle is a superset of the previous one.
const (
	BundleBasic    = "basic"
	BundleStandard = "standard"
	BundleFull     = "full"
)

// ErrUnknownTask is returned when a lookup references an unregistered
// task identifier. Treated as a configuration error, fatal at startup.
var ErrUnknownTask = errors.New("unknown task kind")

// ErrUnknownBundle is returned when a bundle name is not one of the
// fixed bundles.
var ErrUnknownBundle = errors.New("unknown bundle")

// ErrDuplicateTask is returned when the registry receives two
// registrations for the same identifier.
var ErrDuplicateTask = errors.New("duplicate task id")

// bundleLists are the fixed, ordered task lists per bundle. Order is
// load-bearing: Phase 2 tasks execute in this declared order.
var bundleLists = map[string][]string{
	BundleBasic:    {IDTechnology, IDQuality},
	BundleStandard: {IDTechnology, IDQuality, IDStructure, IDArchitecture},
	BundleFull:     {IDTechnology, IDQuality, IDStructure, IDEdgeCase, IDArchitecture, IDIntegration},
}

// BundleNames returns the bundle names from smallest to largest.
func BundleNames() []string {
	return []string{BundleBasic, BundleStandard, BundleFull}
}

// Factory constructs a fresh task instance.
type Factory func() Task

// Registration binds a descriptor to its factory.
type Registration struct {
	Descriptor Descriptor
	New        Factory
}

// Registry maps task identifiers to factories with deterministic
// ordering. Pure lookup, no side effects.
type Registry struct {
	ordered   []Descriptor
	factories map[string]Factory
}

// NewRegistry creates a registry from task registrations.
func NewRegistry(registrations []Registration) (*Registry, error) {
	ordered := make([]Descriptor, 0, len(registrations))
	factories := make(map[string]Factory, len(registrations))

	for _, reg := range registrations {
		id := reg.Descriptor.ID
		if _, exists := factories[id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTask, id)
		}

		factories[id] = reg.New
		ordered = append(ordered, reg.Descriptor)
	}

	return &Registry{ordered: ordered, factories: factories}, nil
}

// All returns every registered descriptor in registration order.
func (r *Registry) All() []Descriptor {
	descriptors := make([]Descriptor, len(r.ordered))
	copy(descriptors, r.ordered)

	return descriptors
}

// Descriptor returns the metadata for a task identifier.
func (r *Registry) Descriptor(id string) (Descriptor, bool) {
	for _, descriptor := range r.ordered {
		if descriptor.ID == id {
			return descriptor, true
		}
	}

	return Descriptor{}, false
}

// Bundle resolves a bundle name to its ordered descriptor list. A
// bundle referencing an unregistered identifier fails with
// ErrUnknownTask before any task runs.
func (r *Registry) Bundle(name string) ([]Descriptor, error) {
	ids, ok := bundleLists[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBundle, name)
	}

	return r.Resolve(ids)
}

// Resolve maps an explicit identifier list to descriptors, preserving
// order.
func (r *Registry) Resolve(ids []string) ([]Descriptor, error) {
	descriptors := make([]Descriptor, 0, len(ids))

	for _, id := range ids {
		descriptor, ok := r.Descriptor(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTask, id)
		}

		descriptors = append(descriptors, descriptor)
	}

	return descriptors, nil
}

// Create instantiates the task registered under id.
func (r *Registry) Create(id string) (Task, error) {
	factory, ok := r.factories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTask, id)
	}

	return factory(), nil
}
