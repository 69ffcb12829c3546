// Package testutil provides shared test helpers for creating config files and dictionary fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/natsumerinchan/GPTDictEditor/internal/dictionary"
	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a minimal config file and the cache directory for testing.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	cacheDir := filepath.Join(tmpDir, "cache")
	require.NoError(t, os.MkdirAll(cacheDir, 0755))

	configContent := fmt.Sprintf(`conversion:
  input_format: auto
  output_format: %s
remote:
  cache_directory: %s
  timeout_seconds: 5
  retry_attempts: 0
batch:
  jobs: 2
`,
		dictionary.FormatGPPGUITOML,
		cacheDir,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupBrokenConfig creates a config file that cannot be parsed.
func SetupBrokenConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	cfgPath := filepath.Join(tmpDir, "broken.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("conversion: [[[\n"), 0644))
	return cfgPath
}

// WriteDictionary writes entries in the given format under dir and returns the file path.
// The file name gets the extension of the format.
func WriteDictionary(t *testing.T, dir, name string, key dictionary.FormatKey, entries []dictionary.Entry) string {
	t.Helper()

	path := dictionary.SuggestOutputPath(filepath.Join(dir, name), key)
	require.NoError(t, dictionary.WriteFile(path, dictionary.Format(entries, key)))
	return path
}
