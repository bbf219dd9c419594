//go:build integration || unit || test

// Package commanddoubles provides hand-crafted test doubles for the domain command interfaces.
package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/jobreporter/internal/domain/commands"
	"github.com/rios0rios0/jobreporter/internal/domain/entities"
)

var (
	_ commands.ReportUpdate            = (*SpyReportUpdateCommand)(nil)
	_ commands.ClosePullRequest        = (*SpyClosePullRequestCommand)(nil)
	_ commands.RecordError             = (*SpyRecordErrorCommand)(nil)
	_ commands.MarkProcessed           = (*SpyMarkProcessedCommand)(nil)
	_ commands.UpdateDependencyList    = (*SpyUpdateDependencyListCommand)(nil)
	_ commands.RecordEcosystemVersions = (*SpyRecordEcosystemVersionsCommand)(nil)
	_ commands.IncrementMetric         = (*SpyIncrementMetricCommand)(nil)
)

// SpyReportUpdateCommand records the options it was executed with.
type SpyReportUpdateCommand struct {
	Result *commands.ReportUpdateResult
	Err    error

	CallCount    int
	LastSettings *entities.Settings
	LastOptions  commands.ReportUpdateOptions
}

func (s *SpyReportUpdateCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.ReportUpdateOptions,
) (*commands.ReportUpdateResult, error) {
	s.CallCount++
	s.LastSettings = settings
	s.LastOptions = opts
	if s.Result == nil {
		return &commands.ReportUpdateResult{}, s.Err
	}
	return s.Result, s.Err
}

// SpyClosePullRequestCommand records the options it was executed with.
type SpyClosePullRequestCommand struct {
	Err error

	CallCount   int
	LastOptions commands.ClosePullRequestOptions
}

func (s *SpyClosePullRequestCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	opts commands.ClosePullRequestOptions,
) error {
	s.CallCount++
	s.LastOptions = opts
	return s.Err
}

// SpyRecordErrorCommand records the options it was executed with.
type SpyRecordErrorCommand struct {
	Err error

	CallCount   int
	LastOptions commands.RecordErrorOptions
}

func (s *SpyRecordErrorCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	opts commands.RecordErrorOptions,
) error {
	s.CallCount++
	s.LastOptions = opts
	return s.Err
}

// SpyMarkProcessedCommand records the options it was executed with.
type SpyMarkProcessedCommand struct {
	Err error

	CallCount   int
	LastOptions commands.MarkProcessedOptions
}

func (s *SpyMarkProcessedCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	opts commands.MarkProcessedOptions,
) error {
	s.CallCount++
	s.LastOptions = opts
	return s.Err
}

// SpyUpdateDependencyListCommand records the options it was executed with.
type SpyUpdateDependencyListCommand struct {
	Err error

	CallCount   int
	LastOptions commands.UpdateDependencyListOptions
}

func (s *SpyUpdateDependencyListCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	opts commands.UpdateDependencyListOptions,
) error {
	s.CallCount++
	s.LastOptions = opts
	return s.Err
}

// SpyRecordEcosystemVersionsCommand records the versions it was executed with.
type SpyRecordEcosystemVersionsCommand struct {
	Err error

	CallCount    int
	LastVersions map[string]any
}

func (s *SpyRecordEcosystemVersionsCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	versions map[string]any,
) error {
	s.CallCount++
	s.LastVersions = versions
	return s.Err
}

// SpyIncrementMetricCommand records the metric it was executed with.
type SpyIncrementMetricCommand struct {
	Err error

	CallCount  int
	LastMetric string
	LastTags   map[string]string
}

func (s *SpyIncrementMetricCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	metric string,
	tags map[string]string,
) error {
	s.CallCount++
	s.LastMetric = metric
	s.LastTags = tags
	return s.Err
}
