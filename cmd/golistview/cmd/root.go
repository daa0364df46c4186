package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile         string
	logLevel        string
	logFormat       string
	pageSize        int
	batchDeleteSize int
	noColor         bool
)

var rootCmd = &cobra.Command{
	Use:   "golistview",
	Short: "Related-record list views over a SQL database",
	Long: `A terminal list view for the child records of a parent record,
backed by MySQL or SQLite.

Features:
  - Columns generated from a configured field list, including related fields
  - Client-side filters (equals, contains, notEquals, notContains)
  - Pagination with a configurable page size
  - Row and bulk deletes with confirmation
  - JSON and MessagePack export of the filtered records`,
	Version:       Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "golistview.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Display and processing overrides
	rootCmd.PersistentFlags().IntVar(&pageSize, "page-size", 0,
		"Override page size for every view")
	rootCmd.PersistentFlags().IntVar(&batchDeleteSize, "batch-delete-size", 0,
		"Override batch delete size (ids per DELETE statement)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel        string
	LogFormat       string
	PageSize        int
	BatchDeleteSize int
	NoColor         bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:        logLevel,
		LogFormat:       logFormat,
		PageSize:        pageSize,
		BatchDeleteSize: batchDeleteSize,
		NoColor:         noColor,
	}
}
