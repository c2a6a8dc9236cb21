// Package cli provides the cobra commands of the lineage binary.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lineage-cli/internal/core/ports/driving"
	"github.com/custodia-labs/lineage-cli/internal/logger"
)

var (
	version = "dev"

	verbose   bool
	configDir string

	pipeline        driving.LineagePipeline
	settingsService driving.SettingsService
	reportService   driving.ReportService
	bioService      driving.BioService
	mergeService    driving.MergeService

	initializer Initializer
	cleanup     func()
)

// Services holds the driving ports the commands call into.
type Services struct {
	Pipeline driving.LineagePipeline
	Settings driving.SettingsService
	Reports  driving.ReportService
	Bios     driving.BioService
	Merge    driving.MergeService
}

// Initializer builds the services once flags are parsed. The returned
// function releases any resources and may be nil.
type Initializer func(configDir string) (*Services, func(), error)

var rootCmd = &cobra.Command{
	Use:   "lineage",
	Short: "Build the lineage book from teacher and student records",
	Long: `Lineage reads flat teacher/student records, validates them, groups
students under their teachers and schools, and renders a LaTeX book with
one chapter per teacher and an index of student names.

Typical workflow:
  lineage check      validate the raw data and show a summary
  lineage generate   write the document source
  lineage build      write the document and run the typesetting toolchain`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print pipeline progress to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default ~/.lineage)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices installs services directly, bypassing the initializer.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	pipeline = s.Pipeline
	settingsService = s.Settings
	reportService = s.Reports
	bioService = s.Bios
	mergeService = s.Merge
}

// SetInitializer registers the function that wires services after flag parsing.
func SetInitializer(fn Initializer) {
	initializer = fn
}

// Execute runs the root command and releases resources afterwards.
func Execute() error {
	defer func() {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
		logger.Sync()
	}()
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if initializer == nil || cmd.Name() == "version" {
		return nil
	}

	services, release, err := initializer(configDir)
	if err != nil {
		return err
	}
	if services == nil {
		return errors.New("initializer returned no services")
	}
	SetServices(services)
	cleanup = release
	return nil
}
