package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	constructors := []any{
		NewReportUpdateCommand,
		NewClosePullRequestCommand,
		NewRecordErrorCommand,
		NewMarkProcessedCommand,
		NewUpdateDependencyListCommand,
		NewRecordEcosystemVersionsCommand,
		NewIncrementMetricCommand,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	bindings := []any{
		func(impl *ReportUpdateCommand) ReportUpdate { return impl },
		func(impl *ClosePullRequestCommand) ClosePullRequest { return impl },
		func(impl *RecordErrorCommand) RecordError { return impl },
		func(impl *MarkProcessedCommand) MarkProcessed { return impl },
		func(impl *UpdateDependencyListCommand) UpdateDependencyList { return impl },
		func(impl *RecordEcosystemVersionsCommand) RecordEcosystemVersions { return impl },
		func(impl *IncrementMetricCommand) IncrementMetric { return impl },
	}
	for _, binding := range bindings {
		if err := container.Provide(binding); err != nil {
			return err
		}
	}

	return nil
}
