package driving

import (
	"context"

	"github.com/tikk3r/prefactor-eor/internal/coerce"
	"github.com/tikk3r/prefactor-eor/internal/core/domain"
)

// ResultsRequest holds the inputs of one results SIP generation.
//
// InputSIPs accepts a single path, a bracketed list string such as
// "[a.xml, b.xml]" or a list of paths. Verbose and FailOnError accept
// booleans or the strings true/false/1/0.
type ResultsRequest struct {
	ResultsFeedback string
	InputSIPs       coerce.Value
	InstrumentSIP   string
	PipelineName    string
	ParsetPath      string
	Verbose         coerce.Value
	// FailOnError is accepted and validated but does not change control
	// flow: every error aborts the run.
	FailOnError coerce.Value
	// StartTimestamp is an optional Unix time for the pipeline run start.
	// Empty means now.
	StartTimestamp string
}

// ResultsService generates results SIPs.
type ResultsService interface {
	// Generate writes one SIP per dataproduct in the feedback file and
	// returns the paths written.
	Generate(ctx context.Context, req ResultsRequest) (*domain.ResultsOutcome, error)
}
