//go:build unit

package controllers_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
)

const testConfig = `api:
  base_url: https://updates.example.com
  job_id: "42"
  token: secret
job:
  dependencies: [lodash, react]
  updating_a_pull_request: true
`

// newCobraCommand mirrors the root command's persistent flags, adds the
// controller flags and parses args.
func newCobraCommand(t *testing.T, controller entities.Controller, args ...string) *cobra.Command {
	t.Helper()

	root := &cobra.Command{Use: "jobreporter"}
	root.PersistentFlags().StringP("config", "c", "", "")
	root.PersistentFlags().String("api-url", "", "")
	root.PersistentFlags().String("job-id", "", "")
	root.PersistentFlags().String("token", "", "")
	root.PersistentFlags().Bool("dry-run", false, "")
	root.PersistentFlags().BoolP("verbose", "v", false, "")

	cmd := &cobra.Command{Use: controller.GetBind().Use}
	controller.AddFlags(cmd)
	root.AddCommand(cmd)

	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func configArgs(t *testing.T) []string {
	t.Helper()
	return []string{"--config", writeFile(t, "jobreporter.yaml", testConfig)}
}
