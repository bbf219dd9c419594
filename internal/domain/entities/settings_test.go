//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
)

//nolint:tparallel // some subtests use t.Setenv which is incompatible with t.Parallel on parent
func TestResolveToken(t *testing.T) {
	t.Run("should return empty string for empty input", func(t *testing.T) {
		t.Parallel()

		// when
		result := entities.ResolveToken("")

		// then
		assert.Empty(t, result)
	})

	t.Run("should return inline token unchanged", func(t *testing.T) {
		t.Parallel()

		// when
		result := entities.ResolveToken("job-token-123")

		// then
		assert.Equal(t, "job-token-123", result)
	})

	t.Run("should expand environment variable reference", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("TEST_JOB_TOKEN", "env-secret")

		// when
		result := entities.ResolveToken("${TEST_JOB_TOKEN}")

		// then
		assert.Equal(t, "env-secret", result)
	})

	t.Run("should read token from file and trim whitespace", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(path, []byte("  file-secret\n"), 0o600))

		// when
		result := entities.ResolveToken(path)

		// then
		assert.Equal(t, "file-secret", result)
	})
}

//nolint:tparallel // uses t.Setenv
func TestNewSettings(t *testing.T) {
	t.Run("should parse the config file and expand environment variables", func(t *testing.T) {
		// given
		t.Setenv("TEST_JOB_ID", "1234")
		path := filepath.Join(t.TempDir(), ".jobreporter.yaml")
		content := `api:
  base_url: https://updates.example.com/
  job_id: ${TEST_JOB_ID}
  token: inline-token
job:
  source:
    provider: github
    repo: acme/web
    directory: /
  dependencies: [lodash]
  updating_a_pull_request: true
  pr_message_encoding: utf_16
  pr_message_max_length: 65536
  commit_message_options:
    prefix: deps
    include_scope: true
logging:
  level: debug
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		require.NoError(t, settings.Validate())
		identity := settings.Identity()
		assert.Equal(t, "https://updates.example.com", identity.BaseURL())
		assert.Equal(t, "1234", identity.JobID())
		assert.Equal(t, "inline-token", identity.Token())

		job := settings.NewJob()
		assert.Equal(t, "acme/web", job.Source.Repo)
		assert.Equal(t, "deps", job.CommitMessageOptions.Prefix)
		assert.True(t, job.CommitMessageOptions.IncludeScope)
		assert.Equal(t, entities.ExistingProposalState{
			TrackedDependencyNames: []string{"lodash"},
			IsUpdateInProgress:     true,
		}, job.ExistingProposal())
		assert.Equal(t, entities.MessageOptions{Encoding: "utf_16", MaxLength: 65536}, settings.MessageOptions())
		assert.Equal(t, "debug", settings.Logging.Level)
	})

	t.Run("should fail for a missing file", func(t *testing.T) {
		// when
		_, err := entities.NewSettings(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.Error(t, err)
	})
}

func TestSettingsValidate(t *testing.T) {
	t.Parallel()

	valid := func() *entities.Settings {
		return &entities.Settings{API: entities.APISettings{
			BaseURL: "https://updates.example.com",
			JobID:   "1",
			Token:   "t",
		}}
	}

	t.Run("should accept complete settings", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, valid().Validate())
	})

	t.Run("should reject a relative base URL", func(t *testing.T) {
		t.Parallel()
		settings := valid()
		settings.API.BaseURL = "updates.example.com"
		require.Error(t, settings.Validate())
	})

	t.Run("should reject a missing job id", func(t *testing.T) {
		t.Parallel()
		settings := valid()
		settings.API.JobID = ""
		require.Error(t, settings.Validate())
	})

	t.Run("should reject a missing token", func(t *testing.T) {
		t.Parallel()
		settings := valid()
		settings.API.Token = ""
		require.Error(t, settings.Validate())
	})

	t.Run("should reject a negative message length", func(t *testing.T) {
		t.Parallel()
		settings := valid()
		settings.Job.PRMessageMaxLength = -1
		require.Error(t, settings.Validate())
	})
}
