// =============================================================================
// Order Data Validator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (validator)
//   ├── validateCmd (validator validate)
//   ├── previewCmd  (validator preview)
//   └── versionCmd  (validator version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/order-data-validator/internal/config"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "validator",

	Short: "Order Data Validator - Validate order files against the order schema",

	Long: `Order Data Validator is a CLI tool that checks CSV and XLSX order files
against a fixed schema (order_id, date, item, quantity, price), classifies
every row as valid or invalid with specific reasons, and writes an annotated
copy of each table plus an error-summary report.

Validation rules:
  - order_id must be present and unique within a file
  - item must be present
  - date must be dd/mm/yyyy or mm-dd-yyyy
  - quantity must be a non-negative integer
  - price must be a non-negative number

Example Usage:
  validator validate                     # Validate all files in the input directory
  validator validate --file orders.csv   # Validate a single file
  validator preview --file orders.csv    # Show the first rows of a file
  validator validate --config ./my.yaml  # Use a custom configuration file`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// Persistent flags are available to this command and all subcommands.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadConfig loads the configuration file named by --config. When the flag
// was left at its default and no file exists, built-in defaults are used so
// the tool works out of the box.
func loadConfig() (*config.MainConfig, error) {
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) && cfgFile == "config.yaml" {
		return config.Default(), nil
	}
	return config.LoadMainConfig(cfgFile)
}
