package main

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/jobreporter/internal"
)

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "jobreporter",
		Short: "Report dependency update job results to the orchestration service",
		Long: `Reports the outcome of a dependency update job to the orchestration service
that scheduled it: pull requests to create, update or close, job errors,
the dependency list, ecosystem versions and best-effort metrics.

Transient network failures are retried up to three times with a random
3-10 second backoff. Application errors returned by the service are not retried.

The job is identified by a config file (default: auto-detect .jobreporter.yaml)
or by the --api-url, --job-id and --token flags.`,
		SilenceUsage: true,
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().String("api-url", "",
		"Base URL of the orchestration service (overrides config)")
	cmd.PersistentFlags().String("job-id", "",
		"Update job id (overrides config)")
	cmd.PersistentFlags().String("token", "",
		"Job token, ${ENV_VAR} or token file path (overrides config)")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be sent without contacting the service")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")
	cmd.PersistentFlags().String("metrics-textfile", "",
		"Write dispatch metrics in Prometheus text format to this file on exit")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.NoArgs,
			RunE: func(command *cobra.Command, arguments []string) error {
				err := ctrl.Execute(command, arguments)
				writeMetrics(command, appContext.Gatherer())
				return err
			},
		}

		// Add controller-specific flags
		ctrl.AddFlags(subCmd)

		rootCmd.AddCommand(subCmd)
	}
}

func writeMetrics(cmd *cobra.Command, gatherer prometheus.Gatherer) {
	path, _ := cmd.Flags().GetString("metrics-textfile")
	if path == "" {
		return
	}
	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		logger.Warnf("Failed to write metrics to %q: %v", path, err)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	cobraRoot := buildRootCommand()

	// Add all subcommands
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'jobreporter': %s", err)
	}
}
