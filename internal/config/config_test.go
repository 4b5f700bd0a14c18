package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a config file under a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// tempDirsYAML renders the directory settings pointing into a temp dir so
// loading does not create directories in the working tree.
func tempDirsYAML(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	return fmt.Sprintf("input_dir: %s/in\noutput_dir: %s/out\ninput_archive_dir: %s/arch\n", base, base, base)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, ",", cfg.CSVSettings.Delimiter)
	assert.True(t, cfg.CSVSettings.LazyQuotes)
	assert.Equal(t, "csv", cfg.Export.Format)
	assert.Equal(t, "all", cfg.Export.Scope)
	assert.Equal(t, "{name}_validated_{timestamp}", cfg.Export.NamePattern)
	assert.True(t, cfg.Export.IncludeStatus)
	assert.True(t, cfg.Export.IncludeErrorMessage)
	assert.Equal(t, 100, cfg.ProgressInterval)
	assert.Equal(t, 20, cfg.PreviewRows)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadMainConfig_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, tempDirsYAML(t))

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.Export.Format)
	assert.Equal(t, 100, cfg.ProgressInterval)
}

func TestLoadMainConfig_Overrides(t *testing.T) {
	content := tempDirsYAML(t) + `
csv_settings:
  delimiter: "|"
export:
  format: xlsx
  scope: invalid
  name_pattern: "{uuid}"
progress_interval: 10
log_level: debug
`
	cfg, err := LoadMainConfig(writeConfig(t, content))
	require.NoError(t, err)

	assert.Equal(t, "|", cfg.CSVSettings.Delimiter)
	assert.Equal(t, "xlsx", cfg.Export.Format)
	assert.Equal(t, "invalid", cfg.Export.Scope)
	assert.Equal(t, "{uuid}", cfg.Export.NamePattern)
	assert.Equal(t, 10, cfg.ProgressInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMainConfig_CreatesDirectories(t *testing.T) {
	base := t.TempDir()
	content := fmt.Sprintf("input_dir: %s/in\noutput_dir: %s/out\ninput_archive_dir: %s/arch\n", base, base, base)

	_, err := LoadMainConfig(writeConfig(t, content))
	require.NoError(t, err)

	for _, dir := range []string{"in", "out", "arch"} {
		info, err := os.Stat(filepath.Join(base, dir))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestLoadMainConfig_RejectsBadFormat(t *testing.T) {
	_, err := LoadMainConfig(writeConfig(t, tempDirsYAML(t)+"export:\n  format: pdf\n"))
	assert.Error(t, err)
}

func TestLoadMainConfig_RejectsBadScope(t *testing.T) {
	_, err := LoadMainConfig(writeConfig(t, tempDirsYAML(t)+"export:\n  scope: broken\n"))
	assert.Error(t, err)
}

func TestLoadMainConfig_MissingFile(t *testing.T) {
	_, err := LoadMainConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadMainConfig_MalformedYAML(t *testing.T) {
	_, err := LoadMainConfig(writeConfig(t, "input_dir: [unclosed"))
	assert.Error(t, err)
}
