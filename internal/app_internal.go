package internal

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
)

// AppInternal holds everything the CLI needs from the container.
type AppInternal struct {
	controllers []entities.Controller
	gatherer    prometheus.Gatherer
}

// NewAppInternal creates the AppInternal from the registered controllers and metrics registry.
func NewAppInternal(controllers *[]entities.Controller, registry *prometheus.Registry) *AppInternal {
	return &AppInternal{controllers: *controllers, gatherer: registry}
}

// GetControllers returns the controllers that become CLI subcommands.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}

// Gatherer returns the registry holding the dispatch metrics of this run.
func (it *AppInternal) Gatherer() prometheus.Gatherer {
	return it.gatherer
}
