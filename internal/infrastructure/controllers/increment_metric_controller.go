package controllers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/jobreporter/internal/domain/commands"
	"github.com/rios0rios0/jobreporter/internal/domain/entities"
)

// IncrementMetricController handles the "increment-metric" subcommand.
type IncrementMetricController struct {
	command commands.IncrementMetric
}

// NewIncrementMetricController creates a new IncrementMetricController.
func NewIncrementMetricController(command commands.IncrementMetric) *IncrementMetricController {
	return &IncrementMetricController{command: command}
}

// GetBind returns the Cobra command metadata for the increment-metric controller.
func (it *IncrementMetricController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "increment-metric",
		Short: "Emit a best-effort metric increment",
	}
}

// Execute emits the metric.
func (it *IncrementMetricController) Execute(cmd *cobra.Command, _ []string) error {
	metric, _ := cmd.Flags().GetString("metric")
	tags, _ := cmd.Flags().GetStringToString("tag")

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if skipForDryRun(cmd, entities.OperationIncrementMetric) {
		return nil
	}

	return it.command.Execute(context.Background(), settings, metric, tags)
}

// AddFlags adds the increment-metric flags to the given Cobra command.
func (it *IncrementMetricController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("metric", "", "Metric name")
	cmd.Flags().StringToString("tag", nil, "Metric tag as key=value (repeatable)")
}
