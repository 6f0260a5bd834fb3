// Command sipgen writes LTA Submission Information Packages for the results
// of prefactor pipeline runs.
package main

import (
	"fmt"
	"os"

	"github.com/tikk3r/prefactor-eor/internal/adapters/driven/config/env"
	"github.com/tikk3r/prefactor-eor/internal/adapters/driven/config/file"
	"github.com/tikk3r/prefactor-eor/internal/adapters/driven/identifier"
	sipfile "github.com/tikk3r/prefactor-eor/internal/adapters/driven/storage/file"
	"github.com/tikk3r/prefactor-eor/internal/adapters/driven/storage/memory"
	"github.com/tikk3r/prefactor-eor/internal/adapters/driving/cli"
	"github.com/tikk3r/prefactor-eor/internal/core/ports/driven"
	"github.com/tikk3r/prefactor-eor/internal/core/services"
	"github.com/tikk3r/prefactor-eor/internal/logger"
	"github.com/tikk3r/prefactor-eor/internal/timeutil"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := env.LoadDotEnv(); err != nil {
		logger.Warn("ignoring .env: %v", err)
	}

	cli.SetVersion(version)
	cli.SetServiceFactory(buildServices)

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func buildServices(opts cli.Options) (*cli.Services, error) {
	var base driven.ConfigStore
	if opts.NoConfig {
		base = memory.NewConfigStore()
	} else {
		store, err := file.NewConfigStore(opts.ConfigDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
		base = store
	}
	logger.Debug("settings: %s", base.Path())

	settings := services.NewSettingsService(env.NewConfigStore(base))
	sips := sipfile.NewSIPStore()

	return &cli.Services{
		Results: services.NewResultsService(
			sips,
			identifier.NewUUIDMinter(),
			timeutil.RealClock{},
			settings,
		),
		Inspect:  services.NewInspectService(sips),
		Settings: settings,
	}, nil
}
