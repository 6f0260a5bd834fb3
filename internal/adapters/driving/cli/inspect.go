package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tikk3r/prefactor-eor/internal/core/domain"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect [sip.xml]",
	Short: "Summarise a SIP file",
	Long: `Prints the project, primary dataproduct and provenance recorded in a SIP,
and any structural problems that would stop it from being ingested.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "output the summary as JSON")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if inspectService == nil {
		return errors.New("inspect service not configured")
	}

	summary, err := inspectService.Inspect(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("inspect failed: %w", err)
	}

	if inspectJSON {
		return printJSON(cmd, summary)
	}
	printSummary(cmd, summary)
	return nil
}

func printSummary(cmd *cobra.Command, s *domain.SIPSummary) {
	cmd.Println(styled(cmd, titleStyle, s.Path))
	printField(cmd, "Project", s.ProjectCode)
	if s.PrimaryInvestigator != "" {
		printField(cmd, "PI", s.PrimaryInvestigator)
	}
	printField(cmd, "Dataproduct", fmt.Sprintf("%s %s", s.DataProductID, s.FileName))
	printField(cmd, "Type", s.DataProductType)
	printList(cmd, "Observations", s.Observations)
	printList(cmd, "Pipeline runs", s.PipelineRuns)
	printList(cmd, "Related dataproducts", s.RelatedDataProducts)
	if s.Parsets > 0 {
		printField(cmd, "Parsets", strconv.Itoa(s.Parsets))
	}

	if s.Valid() {
		cmd.Println(styled(cmd, successStyle, "No problems found."))
		return
	}
	cmd.Println(styled(cmd, warningStyle, "Problems: "+s.Problems))
}

func printList(cmd *cobra.Command, label string, items []string) {
	printField(cmd, label, strconv.Itoa(len(items)))
	for _, item := range items {
		cmd.Printf("    - %s\n", item)
	}
}
