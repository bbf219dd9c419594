//go:build unit

package controllers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	"github.com/rios0rios0/jobreporter/internal/infrastructure/controllers"
	commanddoubles "github.com/rios0rios0/jobreporter/test/domain/commanddoubles"
)

func TestReportUpdateController(t *testing.T) {
	t.Parallel()

	t.Run("should pass the change file and base commit to the command", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &commanddoubles.SpyReportUpdateCommand{}
		controller := controllers.NewReportUpdateController(spy)
		change := writeFile(t, "change.json", `{
			"dependencies": [{"name": "lodash", "version": "4.17.21", "previous_version": "4.17.20"}],
			"updated_dependency_files": [{"name": "package.json", "directory": "/", "content": "{}"}],
			"dependency_group": {"name": "frontend"}
		}`)
		args := append(configArgs(t), "--change", change, "--base-commit-sha", "abc123", "--dry-run")
		cmd := newCobraCommand(t, controller, args...)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		require.Equal(t, 1, spy.CallCount)
		assert.Equal(t, "abc123", spy.LastOptions.BaseCommitSHA)
		assert.True(t, spy.LastOptions.DryRun)
		assert.Equal(t, []entities.Dependency{
			{Name: "lodash", Version: "4.17.21", PreviousVersion: "4.17.20"},
		}, spy.LastOptions.Dependencies)
		assert.Equal(t, "frontend", spy.LastOptions.Group.Name)
		assert.Len(t, spy.LastOptions.UpdatedFiles, 1)
		assert.Equal(t, "42", spy.LastSettings.API.JobID)
	})

	t.Run("should let flags override the config file", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &commanddoubles.SpyReportUpdateCommand{}
		controller := controllers.NewReportUpdateController(spy)
		change := writeFile(t, "change.json", `{"dependencies": []}`)
		args := append(configArgs(t), "--change", change, "--job-id", "99", "--api-url", "https://other.example.com")
		cmd := newCobraCommand(t, controller, args...)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, "99", spy.LastSettings.API.JobID)
		assert.Equal(t, "https://other.example.com", spy.LastSettings.API.BaseURL)
	})

	t.Run("should require the change flag", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &commanddoubles.SpyReportUpdateCommand{}
		controller := controllers.NewReportUpdateController(spy)
		cmd := newCobraCommand(t, controller, configArgs(t)...)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.Error(t, err)
		assert.Zero(t, spy.CallCount)
	})

	t.Run("should fail for an invalid change file", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &commanddoubles.SpyReportUpdateCommand{}
		controller := controllers.NewReportUpdateController(spy)
		change := writeFile(t, "change.json", `not json`)
		cmd := newCobraCommand(t, controller, append(configArgs(t), "--change", change)...)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.Error(t, err)
		assert.Zero(t, spy.CallCount)
	})
}

//nolint:paralleltest // subtests use t.Setenv
func TestReportUpdateControllerResolvesFlags(t *testing.T) {
	t.Run("should expand environment variables in the API flags", func(t *testing.T) {
		// given
		t.Setenv("JOB_API_URL", "https://env.example.com")
		t.Setenv("JOB_ID", "77")
		t.Setenv("JOB_TOKEN", "token-from-env")
		spy := &commanddoubles.SpyReportUpdateCommand{}
		controller := controllers.NewReportUpdateController(spy)
		change := writeFile(t, "change.json", `{"dependencies": []}`)
		args := append(configArgs(t), "--change", change,
			"--api-url", "${JOB_API_URL}", "--job-id", "${JOB_ID}", "--token", "${JOB_TOKEN}")
		cmd := newCobraCommand(t, controller, args...)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://env.example.com", spy.LastSettings.API.BaseURL)
		assert.Equal(t, "77", spy.LastSettings.API.JobID)
		assert.Equal(t, "token-from-env", spy.LastSettings.API.Token)
	})

	t.Run("should read the token from a file path", func(t *testing.T) {
		// given
		spy := &commanddoubles.SpyReportUpdateCommand{}
		controller := controllers.NewReportUpdateController(spy)
		change := writeFile(t, "change.json", `{"dependencies": []}`)
		tokenFile := writeFile(t, "token", "token-from-file\n")
		args := append(configArgs(t), "--change", change, "--token", tokenFile)
		cmd := newCobraCommand(t, controller, args...)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, "token-from-file", spy.LastSettings.API.Token)
	})
}

func TestClosePullRequestController(t *testing.T) {
	t.Parallel()

	t.Run("should pass dependencies and reason to the command", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &commanddoubles.SpyClosePullRequestCommand{}
		controller := controllers.NewClosePullRequestController(spy)
		args := append(configArgs(t), "--dependency", "lodash", "--dependency", "react", "--reason", "dependency_removed")
		cmd := newCobraCommand(t, controller, args...)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"lodash", "react"}, spy.LastOptions.DependencyNames)
		assert.Equal(t, entities.CloseReasonDependencyRemoved, spy.LastOptions.Reason)
	})

	t.Run("should skip the command in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &commanddoubles.SpyClosePullRequestCommand{}
		controller := controllers.NewClosePullRequestController(spy)
		cmd := newCobraCommand(t, controller, append(configArgs(t), "--dry-run")...)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Zero(t, spy.CallCount)
	})
}

func TestRecordErrorController(t *testing.T) {
	t.Parallel()

	t.Run("should parse the error type and details", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &commanddoubles.SpyRecordErrorCommand{}
		controller := controllers.NewRecordErrorController(spy)
		args := append(configArgs(t), "--error-type", "out_of_disk", "--details", `{"free":0}`)
		cmd := newCobraCommand(t, controller, args...)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		require.NotNil(t, spy.LastOptions.ErrorType)
		assert.Equal(t, "out_of_disk", *spy.LastOptions.ErrorType)
		assert.Equal(t, map[string]any{"free": float64(0)}, spy.LastOptions.ErrorDetails)
	})

	t.Run("should leave the error type nil when the flag is absent", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &commanddoubles.SpyRecordErrorCommand{}
		controller := controllers.NewRecordErrorController(spy)
		cmd := newCobraCommand(t, controller, configArgs(t)...)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Nil(t, spy.LastOptions.ErrorType)
	})

	t.Run("should reject invalid details JSON", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &commanddoubles.SpyRecordErrorCommand{}
		controller := controllers.NewRecordErrorController(spy)
		cmd := newCobraCommand(t, controller, append(configArgs(t), "--details", "{")...)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.Error(t, err)
		assert.Zero(t, spy.CallCount)
	})
}

func TestMarkProcessedController(t *testing.T) {
	t.Parallel()

	t.Run("should pass the base commit options", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &commanddoubles.SpyMarkProcessedCommand{}
		controller := controllers.NewMarkProcessedController(spy)
		args := append(configArgs(t), "--base-commit-sha", "abc", "--repo-dir", "/work")
		cmd := newCobraCommand(t, controller, args...)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, "abc", spy.LastOptions.BaseCommitSHA)
		assert.Equal(t, "/work", spy.LastOptions.RepoDir)
	})
}

func TestUpdateDependencyListController(t *testing.T) {
	t.Parallel()

	t.Run("should read the dependency list file", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &commanddoubles.SpyUpdateDependencyListCommand{}
		controller := controllers.NewUpdateDependencyListController(spy)
		input := writeFile(t, "deps.json", `{
			"dependencies": [{"name": "lodash", "version": "4.17.21"}],
			"dependency_files": ["/package.json"]
		}`)
		cmd := newCobraCommand(t, controller, append(configArgs(t), "--input", input)...)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.Dependency{{Name: "lodash", Version: "4.17.21"}}, spy.LastOptions.Dependencies)
		assert.Equal(t, []string{"/package.json"}, spy.LastOptions.DependencyFiles)
	})
}

func TestRecordEcosystemVersionsController(t *testing.T) {
	t.Parallel()

	t.Run("should parse the versions JSON", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &commanddoubles.SpyRecordEcosystemVersionsCommand{}
		controller := controllers.NewRecordEcosystemVersionsController(spy)
		args := append(configArgs(t), "--versions", `{"package_managers":{"npm":"10.2.0"}}`)
		cmd := newCobraCommand(t, controller, args...)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"package_managers": map[string]any{"npm": "10.2.0"}}, spy.LastVersions)
	})

	t.Run("should require versions", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &commanddoubles.SpyRecordEcosystemVersionsCommand{}
		controller := controllers.NewRecordEcosystemVersionsController(spy)
		cmd := newCobraCommand(t, controller, configArgs(t)...)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.Error(t, err)
	})
}

func TestIncrementMetricController(t *testing.T) {
	t.Parallel()

	t.Run("should pass the metric and tags", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &commanddoubles.SpyIncrementMetricCommand{}
		controller := controllers.NewIncrementMetricController(spy)
		args := append(configArgs(t), "--metric", "updater.started", "--tag", "ecosystem=npm")
		cmd := newCobraCommand(t, controller, args...)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, "updater.started", spy.LastMetric)
		assert.Equal(t, map[string]string{"ecosystem": "npm"}, spy.LastTags)
	})
}

func TestNewControllers(t *testing.T) {
	t.Parallel()

	t.Run("should expose one controller per subcommand", func(t *testing.T) {
		t.Parallel()

		// when
		list := controllers.NewControllers(
			controllers.NewReportUpdateController(&commanddoubles.SpyReportUpdateCommand{}),
			controllers.NewClosePullRequestController(&commanddoubles.SpyClosePullRequestCommand{}),
			controllers.NewRecordErrorController(&commanddoubles.SpyRecordErrorCommand{}),
			controllers.NewMarkProcessedController(&commanddoubles.SpyMarkProcessedCommand{}),
			controllers.NewUpdateDependencyListController(&commanddoubles.SpyUpdateDependencyListCommand{}),
			controllers.NewRecordEcosystemVersionsController(&commanddoubles.SpyRecordEcosystemVersionsCommand{}),
			controllers.NewIncrementMetricController(&commanddoubles.SpyIncrementMetricCommand{}),
		)

		// then
		var uses []string
		for _, controller := range *list {
			uses = append(uses, controller.GetBind().Use)
		}
		assert.Equal(t, []string{
			"report-update",
			"close-pr",
			"record-error",
			"mark-processed",
			"update-dependency-list",
			"record-ecosystem-versions",
			"increment-metric",
		}, uses)
	})
}
