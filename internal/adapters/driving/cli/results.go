package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tikk3r/prefactor-eor/internal/coerce"
	"github.com/tikk3r/prefactor-eor/internal/core/domain"
	"github.com/tikk3r/prefactor-eor/internal/core/ports/driving"
	"github.com/tikk3r/prefactor-eor/internal/logger"
)

var (
	resultsFeedback       string
	resultsInputSIPs      []string
	resultsInstrumentSIP  string
	resultsPipelineName   string
	resultsParset         string
	resultsFailOnError    string
	resultsStartTimestamp string
	resultsJSON           bool
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Write SIPs for the results of a target pipeline run",
	Long: `Writes one SIP per dataproduct listed in a pipeline feedback file.

The SIP takes its project from the first input SIP and records the
instrument model SIP and every input SIP, with their history, as related
dataproducts. The pipeline run is described by the parset.

--input-sip may be repeated, or given once as a bracketed list such as
"[L1_SB000.MS.xml, L1_SB001.MS.xml]".`,
	Args: cobra.NoArgs,
	RunE: runResults,
}

func init() {
	f := resultsCmd.Flags()
	f.StringVar(&resultsFeedback, "results-feedback", "", "pipeline feedback file describing the results")
	f.StringArrayVar(&resultsInputSIPs, "input-sip", nil, "SIP of an input dataproduct (repeatable)")
	f.StringVar(&resultsInstrumentSIP, "instrument-sip", "", "SIP of the instrument model used for calibration")
	f.StringVar(&resultsPipelineName, "pipeline-name", "", "name of the pipeline run")
	f.StringVar(&resultsParset, "parset", "", "parset describing the pipeline")
	f.StringVar(&resultsFailOnError, "fail-on-error", "true", "abort on the first error (true/false)")
	f.StringVar(&resultsStartTimestamp, "start-timestamp", "", "Unix time the pipeline run started (default now)")
	f.BoolVar(&resultsJSON, "json", false, "output the created files as JSON")
	rootCmd.AddCommand(resultsCmd)
}

func runResults(cmd *cobra.Command, _ []string) error {
	if resultsService == nil {
		return errors.New("results service not configured")
	}

	logger.ResetWarnings()
	req := driving.ResultsRequest{
		ResultsFeedback: resultsFeedback,
		InputSIPs:       coerce.FromArgs(resultsInputSIPs),
		InstrumentSIP:   resultsInstrumentSIP,
		PipelineName:    resultsPipelineName,
		ParsetPath:      resultsParset,
		Verbose:         coerce.Bool(verbose),
		FailOnError:     coerce.String(resultsFailOnError),
		StartTimestamp:  resultsStartTimestamp,
	}

	outcome, err := resultsService.Generate(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("results SIP generation failed: %w", err)
	}

	if resultsJSON {
		return printJSON(cmd, outcome)
	}
	printOutcome(cmd, outcome)
	return nil
}

func printOutcome(cmd *cobra.Command, outcome *domain.ResultsOutcome) {
	n := len(outcome.CreatedXMLFiles)
	noun := "files"
	if n == 1 {
		noun = "file"
	}
	cmd.Println(styled(cmd, titleStyle, fmt.Sprintf("Created %d SIP %s", n, noun)))
	for _, path := range outcome.CreatedXMLFiles {
		cmd.Printf("  %s\n", styled(cmd, successStyle, path))
	}
	if w := logger.Warnings(); w > 0 {
		cmd.Println(styled(cmd, warningStyle, fmt.Sprintf("Completed with %d warning(s)", w)))
	}
}
