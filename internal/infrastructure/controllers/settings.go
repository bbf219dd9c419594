package controllers

import (
	"fmt"
	"io"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
)

const (
	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3
)

// loadSettings reads the config file (explicit or auto-detected), applies the
// CLI overrides and validates the result. Without a config file the flags
// alone must describe the job.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")

	settings := &entities.Settings{}
	if configPath == "" {
		if found, err := entities.FindConfigFile(); err == nil {
			configPath = found
		}
	}
	if configPath != "" {
		logger.Infof("Using config file: %s", configPath)
		loaded, err := entities.NewSettings(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		settings = loaded
	}

	if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
		settings.API.BaseURL = entities.ExpandEnv(apiURL)
	}
	if jobID, _ := cmd.Flags().GetString("job-id"); jobID != "" {
		settings.API.JobID = entities.ExpandEnv(jobID)
	}
	if token, _ := cmd.Flags().GetString("token"); token != "" {
		settings.API.Token = entities.ResolveToken(token)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if err := configureLogging(settings.Logging, verbose); err != nil {
		return nil, err
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// configureLogging applies the configured level and tees output into a rotating log file.
func configureLogging(cfg entities.LoggingSettings, verbose bool) error {
	if cfg.Level != "" {
		level, err := logger.ParseLevel(cfg.Level)
		if err != nil {
			return fmt.Errorf("invalid logging.level %q: %w", cfg.Level, err)
		}
		logger.SetLevel(level)
	}
	if verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	if cfg.File == "" {
		return nil
	}

	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = defaultLogMaxSizeMB
	}
	maxBackups := cfg.MaxBackups
	if maxBackups <= 0 {
		maxBackups = defaultLogMaxBackups
	}

	logger.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		Compress:   true,
	}))
	return nil
}

// skipForDryRun reports whether --dry-run is set, logging the operation that would have been sent.
func skipForDryRun(cmd *cobra.Command, operation string) bool {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		logger.Infof("[dry-run] Would send %s", operation)
	}
	return dryRun
}
