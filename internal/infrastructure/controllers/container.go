package controllers

import (
	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	constructors := []any{
		NewReportUpdateController,
		NewClosePullRequestController,
		NewRecordErrorController,
		NewMarkProcessedController,
		NewUpdateDependencyListController,
		NewRecordEcosystemVersionsController,
		NewIncrementMetricController,
		NewControllers,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	reportUpdateController *ReportUpdateController,
	closePullRequestController *ClosePullRequestController,
	recordErrorController *RecordErrorController,
	markProcessedController *MarkProcessedController,
	updateDependencyListController *UpdateDependencyListController,
	recordEcosystemVersionsController *RecordEcosystemVersionsController,
	incrementMetricController *IncrementMetricController,
) *[]entities.Controller {
	return &[]entities.Controller{
		reportUpdateController,
		closePullRequestController,
		recordErrorController,
		markProcessedController,
		updateDependencyListController,
		recordEcosystemVersionsController,
		incrementMetricController,
	}
}
