package commands

import (
	"context"
	"errors"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	infraRepos "github.com/rios0rios0/jobreporter/internal/infrastructure/repositories"
)

// IncrementMetric is the interface for the increment-metric command.
type IncrementMetric interface {
	Execute(ctx context.Context, settings *entities.Settings, metric string, tags map[string]string) error
}

// IncrementMetricCommand emits a best-effort metric increment.
type IncrementMetricCommand struct {
	clientFactory infraRepos.APIClientFactory
}

// NewIncrementMetricCommand creates a new IncrementMetricCommand.
func NewIncrementMetricCommand(clientFactory infraRepos.APIClientFactory) *IncrementMetricCommand {
	return &IncrementMetricCommand{clientFactory: clientFactory}
}

// Execute sends increment_metric. Delivery failures never surface; only a
// missing metric name is an error.
func (it *IncrementMetricCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	metric string,
	tags map[string]string,
) error {
	if metric == "" {
		return errors.New("a metric name is required")
	}
	it.clientFactory(settings.Identity()).IncrementMetric(ctx, metric, tags)
	return nil
}
