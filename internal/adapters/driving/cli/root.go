// Package cli provides the sipgen command-line interface.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tikk3r/prefactor-eor/internal/core/ports/driving"
	"github.com/tikk3r/prefactor-eor/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

// Services used by the commands. They are wired by main, or by tests.
var (
	resultsService  driving.ResultsService
	inspectService  driving.InspectService
	settingsService driving.SettingsService
)

// Global flags.
var (
	verbose   bool
	configDir string
	noConfig  bool
)

// Options are the global flag values needed to build the services.
type Options struct {
	ConfigDir string
	NoConfig  bool
}

// Services groups the services the commands run against.
type Services struct {
	Results  driving.ResultsService
	Inspect  driving.InspectService
	Settings driving.SettingsService
}

// ServiceFactory builds the services once the global flags are parsed.
type ServiceFactory func(opts Options) (*Services, error)

var serviceFactory ServiceFactory

var rootCmd = &cobra.Command{
	Use:   "sipgen",
	Short: "Generate LTA Submission Information Packages for prefactor results",
	Long: `sipgen writes Submission Information Packages (SIPs) for the dataproducts
of a prefactor target pipeline run, ready for ingest into the LOFAR Long
Term Archive.

Each SIP records the input dataproducts, the instrument model and the
pipeline run that produced the results, with their full history.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print how each SIP is assembled")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory holding sipgen.toml (default ~/.prefactor)")
	rootCmd.PersistentFlags().BoolVar(&noConfig, "no-config", false, "ignore the settings file")
}

// SetServices sets the services used by the commands.
func SetServices(s *Services) {
	resultsService = s.Results
	inspectService = s.Inspect
	settingsService = s.Settings
}

// SetServiceFactory registers the function that builds the services before
// a command runs.
func SetServiceFactory(f ServiceFactory) {
	serviceFactory = f
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if serviceFactory == nil || cmd == versionCmd {
		return nil
	}
	services, err := serviceFactory(Options{ConfigDir: configDir, NoConfig: noConfig})
	if err != nil {
		return err
	}
	if services == nil {
		return errors.New("no services configured")
	}
	SetServices(services)
	return nil
}
