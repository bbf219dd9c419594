package entities

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Settings is the top-level configuration for jobreporter.
type Settings struct {
	API     APISettings     `yaml:"api"`
	Job     JobSettings     `yaml:"job"`
	Logging LoggingSettings `yaml:"logging"`
}

// APISettings identifies the orchestration service and the job.
type APISettings struct {
	BaseURL string `yaml:"base_url"`
	JobID   string `yaml:"job_id"`
	Token   string `yaml:"token"` // Inline, ${ENV_VAR}, or file path
}

// JobSettings holds the job metadata used for messages and the replacement decision.
type JobSettings struct {
	Source               JobSource             `yaml:"source"`
	Credentials          []Credential          `yaml:"credentials"`
	CommitMessageOptions *CommitMessageOptions `yaml:"commit_message_options"`
	IgnoreConditions     []IgnoreCondition     `yaml:"ignore_conditions"`
	Dependencies         []string              `yaml:"dependencies"`
	UpdatingAPullRequest bool                  `yaml:"updating_a_pull_request"`
	PRMessageEncoding    string                `yaml:"pr_message_encoding"`
	PRMessageMaxLength   int                   `yaml:"pr_message_max_length"`
}

// LoggingSettings configures the log level and an optional rotating log file.
type LoggingSettings struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file, expanding environment
// variables and resolving token file paths.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.API.BaseURL = ExpandEnv(settings.API.BaseURL)
	settings.API.JobID = ExpandEnv(settings.API.JobID)
	settings.API.Token = ResolveToken(settings.API.Token)

	return &settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".jobreporter.yaml",
		".jobreporter.yml",
		"jobreporter.yaml",
		"jobreporter.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// Identity returns the job identity described by the API settings.
func (s *Settings) Identity() JobIdentity {
	return NewJobIdentity(s.API.BaseURL, s.API.JobID, s.API.Token)
}

// NewJob returns the job metadata described by the job settings.
func (s *Settings) NewJob() *Job {
	return &Job{
		Source:               s.Job.Source,
		Credentials:          s.Job.Credentials,
		CommitMessageOptions: s.Job.CommitMessageOptions,
		IgnoreConditions:     s.Job.IgnoreConditions,
		Dependencies:         s.Job.Dependencies,
		UpdatingAPullRequest: s.Job.UpdatingAPullRequest,
	}
}

// MessageOptions returns the message overrides configured for the job.
func (s *Settings) MessageOptions() MessageOptions {
	return MessageOptions{
		Encoding:  s.Job.PRMessageEncoding,
		MaxLength: s.Job.PRMessageMaxLength,
	}
}

// ExpandEnv expands ${ENV_VAR} references, warning about unset variables.
func ExpandEnv(raw string) string {
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// ResolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func ResolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := ExpandEnv(raw)

	// If the resolved value is a path to an existing file, read the token from it
	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// Validate checks for required configuration values.
func (s *Settings) Validate() error {
	if s.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	parsed, err := url.Parse(s.API.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("api.base_url %q must be an absolute URL", s.API.BaseURL)
	}
	if s.API.JobID == "" {
		return errors.New("api.job_id is required")
	}
	if s.API.Token == "" {
		return errors.New(
			"api.token is required (set inline, via ${ENV_VAR}, or as file path)",
		)
	}
	if s.Job.PRMessageMaxLength < 0 {
		return fmt.Errorf("job.pr_message_max_length must not be negative, got %d", s.Job.PRMessageMaxLength)
	}
	return nil
}
