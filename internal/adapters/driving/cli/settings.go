package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsJSON bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage sipgen settings",
	Long: `View and change the defaults used when writing SIPs.

Settings are read from sipgen.toml in the config directory. Environment
variables (PREFACTOR_SIP_DURATION, PREFACTOR_SIP_OUTPUT_DIR,
PREFACTOR_SIP_EMBED_PARSET), also read from a .env file, take precedence.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a setting and save it to the settings file.

Keys:
  pipeline.duration    ISO-8601 duration recorded for pipeline runs (default PT1H)
  output.directory     directory the SIP files are written to (default: next to the results)
  output.embed_parset  include the pipeline parset in the SIP (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	Long: `Overwrites the settings file with the defaults. Environment variables
still take precedence afterwards.`,
	Args: cobra.NoArgs,
	RunE: runSettingsReset,
}

func init() {
	settingsCmd.PersistentFlags().BoolVar(&settingsJSON, "json", false, "output settings as JSON")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if settingsJSON {
		return printJSON(cmd, settings)
	}

	cmd.Println(styled(cmd, titleStyle, "Current Settings"))
	cmd.Println()

	cmd.Println("[Pipeline]")
	printField(cmd, "Duration", settings.Pipeline.Duration)
	cmd.Println()

	cmd.Println("[Output]")
	dir := settings.Output.Directory
	if dir == "" {
		dir = "(next to the results)"
	}
	printField(cmd, "Directory", dir)
	printField(cmd, "Embed parset", yesNo(settings.Output.EmbedParset))

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := strings.TrimSpace(args[0]), args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w (keys: %s)", key, err, strings.Join(settingsService.Keys(), ", "))
	}

	cmd.Printf("%s set to %s\n", key, strings.TrimSpace(value))
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}

	cmd.Println("Settings reset to defaults.")
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
