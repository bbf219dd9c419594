package entities

import (
	"errors"
	"strings"
	"sync"

	logger "github.com/sirupsen/logrus"
)

// GeneratedMessage is the commit message and pull request text produced for a change.
type GeneratedMessage struct {
	CommitMessage string
	Title         string
	Body          string
}

// MessageRequest is the exact argument set forwarded to the message builder.
type MessageRequest struct {
	Source               JobSource
	Files                []DependencyFile
	Dependencies         []Dependency
	Credentials          []Credential
	CommitMessageOptions *CommitMessageOptions
	DependencyGroup      *DependencyGroup
	PRMessageEncoding    string
	PRMessageMaxLength   int
	IgnoreConditions     []IgnoreCondition
}

// MessageBuilder generates the commit message and pull request text for a change.
type MessageBuilder interface {
	Build(req MessageRequest) (*GeneratedMessage, error)
}

// MessageOptions are the optional overrides forwarded to the message builder.
type MessageOptions struct {
	Encoding  string
	MaxLength int
}

// ChangeDescriptor describes what an update attempt changed. It is immutable
// after construction.
type ChangeDescriptor struct {
	job                 *Job
	updatedDependencies []Dependency
	updatedFiles        []DependencyFile
	group               *DependencyGroup
	messageOptions      MessageOptions
	builder             MessageBuilder

	messageOnce sync.Once
	message     *GeneratedMessage
}

// ChangeInput gathers the values a ChangeDescriptor is built from.
type ChangeInput struct {
	Job                 *Job
	UpdatedDependencies []Dependency
	UpdatedFiles        []DependencyFile
	Group               *DependencyGroup
	MessageOptions      MessageOptions
	MessageBuilder      MessageBuilder
}

// NewChangeDescriptor copies the input lists so later mutation by the caller
// does not leak into the descriptor.
func NewChangeDescriptor(input ChangeInput) *ChangeDescriptor {
	change := &ChangeDescriptor{
		job:                 input.Job,
		updatedDependencies: append([]Dependency(nil), input.UpdatedDependencies...),
		updatedFiles:        append([]DependencyFile(nil), input.UpdatedFiles...),
		messageOptions:      input.MessageOptions,
		builder:             input.MessageBuilder,
	}
	if input.Group != nil {
		group := *input.Group
		change.group = &group
	}
	return change
}

// UpdatedDependencies returns the dependencies in input order.
func (c *ChangeDescriptor) UpdatedDependencies() []Dependency {
	return append([]Dependency(nil), c.updatedDependencies...)
}

// UpdatedFiles returns the updated dependency files in input order.
func (c *ChangeDescriptor) UpdatedFiles() []DependencyFile {
	return append([]DependencyFile(nil), c.updatedFiles...)
}

// Group returns the dependency group, or nil for an ungrouped update.
func (c *ChangeDescriptor) Group() *DependencyGroup {
	if c.group == nil {
		return nil
	}
	group := *c.group
	return &group
}

// GroupedUpdate reports whether the change was batched under a dependency group.
func (c *ChangeDescriptor) GroupedUpdate() bool {
	return c.group != nil
}

// UpdatedDependencyNames returns the dependency names in input order.
func (c *ChangeDescriptor) UpdatedDependencyNames() []string {
	names := make([]string, 0, len(c.updatedDependencies))
	for _, dep := range c.updatedDependencies {
		names = append(names, dep.Name)
	}
	return names
}

// Humanized renders the dependency names as a comma separated list.
func (c *ChangeDescriptor) Humanized() string {
	return strings.Join(c.UpdatedDependencyNames(), ", ")
}

// UpdatedDependencyFilesHash returns the updated files in their wire form.
func (c *ChangeDescriptor) UpdatedDependencyFilesHash() []DependencyFile {
	return c.UpdatedFiles()
}

// Validate checks every dependency in the change.
func (c *ChangeDescriptor) Validate() error {
	var errs []error
	for _, dep := range c.updatedDependencies {
		if err := dep.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PRMessage returns the generated message for the change, building it on first
// use. It returns nil when no builder is configured or the builder fails.
func (c *ChangeDescriptor) PRMessage() *GeneratedMessage {
	c.messageOnce.Do(func() {
		if c.builder == nil {
			return
		}

		message, err := c.builder.Build(c.messageRequest())
		if err != nil {
			logger.Warnf("Failed to build pull request message for %s: %v", c.Humanized(), err)
			return
		}
		c.message = message
	})
	return c.message
}

func (c *ChangeDescriptor) messageRequest() MessageRequest {
	req := MessageRequest{
		Files:              c.UpdatedFiles(),
		Dependencies:       c.UpdatedDependencies(),
		DependencyGroup:    c.Group(),
		PRMessageEncoding:  c.messageOptions.Encoding,
		PRMessageMaxLength: c.messageOptions.MaxLength,
	}
	if c.job != nil {
		req.Source = c.job.Source
		req.Credentials = c.job.Credentials
		req.CommitMessageOptions = c.job.CommitMessageOptions
		req.IgnoreConditions = c.job.IgnoreConditions
	}
	return req
}
