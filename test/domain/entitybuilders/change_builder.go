//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// ChangeBuilder helps create change descriptors with a fluent interface.
type ChangeBuilder struct {
	*testkit.BaseBuilder
	job            *entities.Job
	dependencies   []entities.Dependency
	files          []entities.DependencyFile
	group          *entities.DependencyGroup
	messageOptions entities.MessageOptions
	messageBuilder entities.MessageBuilder
}

// NewChangeBuilder creates a change builder with one updated dependency and its manifest.
func NewChangeBuilder() *ChangeBuilder {
	b := &ChangeBuilder{BaseBuilder: testkit.NewBaseBuilder()}
	b.Reset()
	return b
}

// WithJob sets the job the change belongs to.
func (b *ChangeBuilder) WithJob(job *entities.Job) *ChangeBuilder {
	b.job = job
	return b
}

// WithDependencies replaces the updated dependencies.
func (b *ChangeBuilder) WithDependencies(deps ...entities.Dependency) *ChangeBuilder {
	b.dependencies = deps
	return b
}

// WithFiles replaces the updated dependency files.
func (b *ChangeBuilder) WithFiles(files ...entities.DependencyFile) *ChangeBuilder {
	b.files = files
	return b
}

// WithGroup makes the change a grouped update.
func (b *ChangeBuilder) WithGroup(name string) *ChangeBuilder {
	b.group = &entities.DependencyGroup{Name: name}
	return b
}

// WithMessageOptions sets the message encoding and length limit.
func (b *ChangeBuilder) WithMessageOptions(opts entities.MessageOptions) *ChangeBuilder {
	b.messageOptions = opts
	return b
}

// WithMessageBuilder sets the pull request message builder.
func (b *ChangeBuilder) WithMessageBuilder(builder entities.MessageBuilder) *ChangeBuilder {
	b.messageBuilder = builder
	return b
}

// Build creates the change (satisfies testkit.Builder interface).
func (b *ChangeBuilder) Build() interface{} {
	return b.BuildChange()
}

// BuildChange creates the change with a concrete return type.
func (b *ChangeBuilder) BuildChange() *entities.ChangeDescriptor {
	return entities.NewChangeDescriptor(entities.ChangeInput{
		Job:                 b.job,
		UpdatedDependencies: b.dependencies,
		UpdatedFiles:        b.files,
		Group:               b.group,
		MessageOptions:      b.messageOptions,
		MessageBuilder:      b.messageBuilder,
	})
}

// Reset clears the builder state, allowing it to be reused.
func (b *ChangeBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.job = &entities.Job{Source: entities.JobSource{Provider: "github", Repo: "acme/web", Directory: "/"}}
	b.dependencies = []entities.Dependency{NewDependencyBuilder().BuildDependency()}
	b.files = []entities.DependencyFile{
		{Name: "package.json", Directory: "/", Content: `{"dependencies":{"lodash":"^4.17.21"}}`},
	}
	b.group = nil
	b.messageOptions = entities.MessageOptions{}
	b.messageBuilder = nil
	return b
}

// Clone creates a copy of the ChangeBuilder.
func (b *ChangeBuilder) Clone() testkit.Builder {
	clone := &ChangeBuilder{
		BaseBuilder:    b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		job:            b.job,
		dependencies:   append([]entities.Dependency(nil), b.dependencies...),
		files:          append([]entities.DependencyFile(nil), b.files...),
		messageOptions: b.messageOptions,
		messageBuilder: b.messageBuilder,
	}
	if b.group != nil {
		group := *b.group
		clone.group = &group
	}
	return clone
}
