package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikk3r/prefactor-eor/internal/adapters/driven/identifier"
	"github.com/tikk3r/prefactor-eor/internal/adapters/driven/storage/memory"
	"github.com/tikk3r/prefactor-eor/internal/core/services"
	"github.com/tikk3r/prefactor-eor/internal/logger"
	"github.com/tikk3r/prefactor-eor/internal/timeutil"
)

type testEnv struct {
	sips   *memory.SIPStore
	config *memory.ConfigStore
}

// setupTestServices wires the commands to services backed by in-memory
// stores holding the SIPs in testdata.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		sips:   memory.NewSIPStore(),
		config: memory.NewConfigStore(),
	}
	for _, name := range []string{"input_data.xml", "instrument.xml"} {
		data, err := os.ReadFile(filepath.Join("testdata", name))
		require.NoError(t, err)
		env.sips.Put(name, data)
	}

	settings := services.NewSettingsService(env.config)
	SetServices(&Services{
		Results: services.NewResultsService(
			env.sips,
			identifier.NewUUIDMinter(),
			timeutil.FixedClock{T: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)},
			settings,
		),
		Inspect:  services.NewInspectService(env.sips),
		Settings: settings,
	})

	logger.SetOutput(io.Discard)
	t.Cleanup(func() {
		SetServices(&Services{})
		SetServiceFactory(nil)
		logger.SetOutput(os.Stderr)
		logger.SetVerbose(false)
		logger.ResetWarnings()
	})
	return env
}

// executeCommand runs the root command with args and returns its output.
// Flag variables are reset afterwards since they outlive a single run.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(resetFlags)

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags() {
	rootCmd.SetArgs(nil)
	verbose, configDir, noConfig = false, "", false
	resultsFeedback, resultsInstrumentSIP, resultsPipelineName, resultsParset = "", "", "", ""
	resultsInputSIPs = nil
	resultsFailOnError = "true"
	resultsStartTimestamp = ""
	resultsJSON, inspectJSON, settingsJSON = false, false, false
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "sipgen", rootCmd.Use)
	assert.Contains(t, rootCmd.Long, "Submission Information Packages")
}

func TestRootCmd_HasGlobalFlags(t *testing.T) {
	for _, name := range []string{"verbose", "config-dir", "no-config"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"results", "inspect", "settings", "version"})
}

func TestServiceFactory_ReceivesGlobalFlags(t *testing.T) {
	setupTestServices(t)

	var got Options
	SetServiceFactory(func(opts Options) (*Services, error) {
		got = opts
		return &Services{Settings: settingsService}, nil
	})

	_, err := executeCommand(t, "--config-dir", "/tmp/sipgen", "--no-config", "settings", "show")

	require.NoError(t, err)
	assert.Equal(t, Options{ConfigDir: "/tmp/sipgen", NoConfig: true}, got)
}

func TestServiceFactory_Error(t *testing.T) {
	setupTestServices(t)
	SetServiceFactory(func(Options) (*Services, error) {
		return nil, assert.AnError
	})

	_, err := executeCommand(t, "settings")

	assert.ErrorIs(t, err, assert.AnError)
}

func TestServiceFactory_SkippedForVersion(t *testing.T) {
	setupTestServices(t)
	SetServiceFactory(func(Options) (*Services, error) {
		return nil, assert.AnError
	})

	_, err := executeCommand(t, "version")

	assert.NoError(t, err)
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("")
	assert.Equal(t, original, version)
	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)
}
