// =============================================================================
// Order Data Validator - Configuration Module
// =============================================================================
//
// This module loads and manages the application configuration. A single YAML
// file (config.yaml by default) controls directories, CSV parsing, output
// naming, and export behavior. Defaults are applied for anything unset and
// required directories are created on load.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the directory scanned for order files (.csv, .xlsx).
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where annotated tables and error reports
	// are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir is the directory where input files are moved after
	// successful processing. Failed files stay in InputDir.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// =========================================================================
	// CSV PARSING SETTINGS
	// =========================================================================

	// CSVSettings contains settings for parsing input CSV files.
	CSVSettings CSVSettings `yaml:"csv_settings"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// Export controls the annotated-table export.
	Export ExportSettings `yaml:"export"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// ProgressInterval is how many rows to validate between progress
	// notifications.
	// Default: 100
	ProgressInterval int `yaml:"progress_interval"`

	// PreviewRows is the default number of rows shown by the preview command.
	// Default: 20
	PreviewRows int `yaml:"preview_rows"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls console verbosity.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the character used to separate fields.
	// Common values: "," (comma), "|" (pipe), "\t" (tab)
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// TrimLeadingSpace removes leading whitespace from fields while reading.
	// Default: true (set via defaults when the config omits csv_settings)
	TrimLeadingSpace bool `yaml:"trim_leading_space"`

	// LazyQuotes accepts quotes that do not follow strict CSV rules.
	// Default: true
	LazyQuotes bool `yaml:"lazy_quotes"`
}

// ExportSettings controls how validated tables are written out.
type ExportSettings struct {
	// Format is the output format: "csv" or "xlsx".
	// Default: "csv"
	Format string `yaml:"format"`

	// NamePattern defines output file names (extension appended by format).
	// Placeholders:
	//   {name}      - Input file name without extension
	//   {timestamp} - Processing timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - A random UUID
	// Default: "{name}_validated_{timestamp}"
	NamePattern string `yaml:"name_pattern"`

	// Scope selects which rows are exported: "all", "valid", or "invalid".
	// Default: "all"
	Scope string `yaml:"scope"`

	// IncludeStatus appends the per-row status column.
	// Default: true
	IncludeStatus bool `yaml:"include_status"`

	// IncludeErrorMessage appends the per-row error message column.
	// Default: true
	IncludeErrorMessage bool `yaml:"include_error_message"`
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML file, applies
// defaults and validates it. A missing file is fatal; the caller decides
// whether to fall back to Default().
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(config)

	if err := validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// Default returns a configuration with every option set to its default.
func Default() *MainConfig {
	config := &MainConfig{
		CSVSettings: CSVSettings{
			TrimLeadingSpace: true,
			LazyQuotes:       true,
		},
		Export: ExportSettings{
			IncludeStatus:       true,
			IncludeErrorMessage: true,
		},
	}
	applyDefaults(config)
	return config
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = ","
	}
	if config.Export.Format == "" {
		config.Export.Format = "csv"
	}
	if config.Export.NamePattern == "" {
		config.Export.NamePattern = "{name}_validated_{timestamp}"
	}
	if config.Export.Scope == "" {
		config.Export.Scope = "all"
	}
	if config.ProgressInterval <= 0 {
		config.ProgressInterval = 100
	}
	if config.PreviewRows <= 0 {
		config.PreviewRows = 20
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}

// validate checks option values and creates required directories.
func validate(config *MainConfig) error {
	switch config.Export.Format {
	case "csv", "xlsx":
	default:
		return fmt.Errorf("unsupported export format %q (want csv or xlsx)", config.Export.Format)
	}

	switch config.Export.Scope {
	case "all", "valid", "invalid":
	default:
		return fmt.Errorf("unsupported export scope %q (want all, valid or invalid)", config.Export.Scope)
	}

	dirs := []string{config.InputDir, config.OutputDir, config.InputArchiveDir}
	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}
	return nil
}
