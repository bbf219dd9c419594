//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// DependencyBuilder helps create test dependencies with a fluent interface.
type DependencyBuilder struct {
	*testkit.BaseBuilder
	name            string
	version         string
	previousVersion string
	file            string
	requirement     string
	removed         bool
}

// NewDependencyBuilder creates a new dependency builder with sensible defaults.
func NewDependencyBuilder() *DependencyBuilder {
	return &DependencyBuilder{
		BaseBuilder:     testkit.NewBaseBuilder(),
		name:            "lodash",
		version:         "4.17.21",
		previousVersion: "4.17.20",
		file:            "package.json",
		requirement:     "^4.17.21",
	}
}

// WithName sets the dependency name.
func (b *DependencyBuilder) WithName(name string) *DependencyBuilder {
	b.name = name
	return b
}

// WithVersion sets the updated version.
func (b *DependencyBuilder) WithVersion(version string) *DependencyBuilder {
	b.version = version
	return b
}

// WithPreviousVersion sets the version before the update.
func (b *DependencyBuilder) WithPreviousVersion(version string) *DependencyBuilder {
	b.previousVersion = version
	return b
}

// WithFile sets the manifest the requirement is read from.
func (b *DependencyBuilder) WithFile(file string) *DependencyBuilder {
	b.file = file
	return b
}

// WithRequirement sets the updated requirement string.
func (b *DependencyBuilder) WithRequirement(requirement string) *DependencyBuilder {
	b.requirement = requirement
	return b
}

// AsRemoved marks the dependency as removed and clears its version.
func (b *DependencyBuilder) AsRemoved() *DependencyBuilder {
	b.removed = true
	b.version = ""
	return b
}

// Build creates the dependency (satisfies testkit.Builder interface).
func (b *DependencyBuilder) Build() interface{} {
	return b.BuildDependency()
}

// BuildDependency creates the dependency with a concrete return type.
func (b *DependencyBuilder) BuildDependency() entities.Dependency {
	dep := entities.Dependency{
		Name:            b.name,
		Version:         b.version,
		PreviousVersion: b.previousVersion,
		Removed:         b.removed,
	}
	if b.removed {
		return dep
	}

	requirement := b.requirement
	dep.Requirements = []entities.Requirement{
		{Requirement: &requirement, File: b.file, Groups: []string{"dependencies"}},
	}
	if b.previousVersion != "" {
		previous := "^" + b.previousVersion
		dep.PreviousRequirements = []entities.Requirement{
			{Requirement: &previous, File: b.file, Groups: []string{"dependencies"}},
		}
	}
	return dep
}

// Reset clears the builder state, allowing it to be reused.
func (b *DependencyBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "lodash"
	b.version = "4.17.21"
	b.previousVersion = "4.17.20"
	b.file = "package.json"
	b.requirement = "^4.17.21"
	b.removed = false
	return b
}

// Clone creates a deep copy of the DependencyBuilder.
func (b *DependencyBuilder) Clone() testkit.Builder {
	return &DependencyBuilder{
		BaseBuilder:     b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:            b.name,
		version:         b.version,
		previousVersion: b.previousVersion,
		file:            b.file,
		requirement:     b.requirement,
		removed:         b.removed,
	}
}
