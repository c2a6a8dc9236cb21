// Command lineage builds the lineage book from raw teacher/student records.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/lineage-cli/internal/adapters/driven/bios/textfile"
	"github.com/custodia-labs/lineage-cli/internal/adapters/driven/bios/yamlfile"
	"github.com/custodia-labs/lineage-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lineage-cli/internal/adapters/driven/exec"
	"github.com/custodia-labs/lineage-cli/internal/adapters/driven/output"
	"github.com/custodia-labs/lineage-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lineage-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/lineage-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/lineage-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/lineage-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lineage-cli/internal/core/services"
	"github.com/custodia-labs/lineage-cli/internal/logger"
	"github.com/custodia-labs/lineage-cli/internal/renderers/latex"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetInitializer(initialize)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// initialize wires adapters into services once flags are parsed.
func initialize(configDir string) (*cli.Services, func(), error) {
	configDir, err := resolveConfigDir(configDir)
	if err != nil {
		return nil, nil, err
	}

	configStore, err := openConfig(configDir)
	if err != nil {
		return nil, nil, err
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("load settings: %w", err)
	}
	logger.Debug("Config: %s", configStore.Path())

	boilerplate, err := file.NewBoilerplateStore(filepath.Join(configDir, "boilerplate"))
	if err != nil {
		return nil, nil, fmt.Errorf("open boilerplate: %w", err)
	}

	connector := filesystem.New(settings.Paths.RawData)
	bioFiles := textfile.New(settings.Paths.Bios)
	bioService := services.NewBioService(
		bioFiles,
		bioFiles,
		yamlfile.New(filepath.Join(settings.Paths.Bios, yamlfile.FileName)),
	)

	var reports driven.ReportStore
	closeReports := func() {}
	if settings.Report.Persist {
		store, storeErr := sqlite.NewStore(settings.Paths.DataDir)
		if storeErr != nil {
			logger.Warn("Report store unavailable, keeping reports in memory: %v", storeErr)
			reports = memory.NewReportStore()
		} else {
			reports = store
			closeReports = func() { _ = store.Close() }
		}
	}

	pipeline := services.NewPipeline(services.PipelineDeps{
		Source:   connector,
		Bios:     bioService,
		Renderer: latex.New(boilerplate),
		Writer:   output.NewWriter(),
		Builder:  services.NewBuildOrchestrator(exec.NewRunner(), settings.Toolchain),
		Reports:  reports,
		Watcher:  connector,
		Settings: *settings,
	})

	release := func() {
		closeReports()
		_ = connector.Close()
	}

	return &cli.Services{
		Pipeline: pipeline,
		Settings: settingsService,
		Reports:  services.NewReportService(reports),
		Bios:     bioService,
		Merge:    services.NewMergeService(connector),
	}, release, nil
}

// openConfig opens the TOML settings file. A config directory that cannot
// be created falls back to defaults held in memory for this run only; a
// file that exists but does not parse is still an error.
func openConfig(dir string) (driven.ConfigStore, error) {
	store, err := file.NewConfigStore(dir)
	if err == nil {
		return store, nil
	}
	if errors.Is(err, fs.ErrPermission) {
		logger.Warn("Config directory %s is not writable, settings will not be saved: %v", dir, err)
		return memory.NewConfigStore(), nil
	}
	return nil, fmt.Errorf("open config: %w", err)
}

func resolveConfigDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".lineage"), nil
}
