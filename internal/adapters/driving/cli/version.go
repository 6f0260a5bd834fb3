package cli

import (
	"github.com/spf13/cobra"

	"github.com/tikk3r/prefactor-eor/internal/sip"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("sipgen version %s\n", version)
		cmd.Printf("writes %s\n", sip.GeneratorVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
