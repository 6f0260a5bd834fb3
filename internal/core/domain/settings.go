package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultDuration is the pipeline-run duration written when nothing better is known.
// It is an ISO-8601 duration.
const DefaultDuration = "PT1H"

// PipelineSettings holds defaults for the pipeline-run description.
type PipelineSettings struct {
	// Duration is the ISO-8601 duration recorded for a pipeline run.
	Duration string `json:"duration"`
}

// OutputSettings controls where and how SIP files are written.
type OutputSettings struct {
	// Directory is prepended to every created file name.
	// Empty means the dataproduct file name is used as is.
	Directory string `json:"directory"`

	// EmbedParset adds the pipeline parset to the created SIP.
	EmbedParset bool `json:"embed_parset"`
}

// AppSettings holds all tool settings.
type AppSettings struct {
	// Pipeline holds pipeline-run defaults.
	Pipeline PipelineSettings `json:"pipeline"`

	// Output holds output file settings.
	Output OutputSettings `json:"output"`
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Pipeline: PipelineSettings{
			Duration: DefaultDuration,
		},
		Output: OutputSettings{},
	}
}

var isoDuration = regexp.MustCompile(`^P(?:\d+Y)?(?:\d+M)?(?:\d+D)?(?:T(?:\d+H)?(?:\d+M)?(?:\d+(?:\.\d+)?S)?)?$`)

// IsISODuration reports whether s is an ISO-8601 duration such as "PT1H"
// or "P1DT30M".
func IsISODuration(s string) bool {
	if s == "P" || s == "PT" || strings.HasSuffix(s, "T") {
		return false
	}
	return isoDuration.MatchString(s)
}

// Validate checks that the settings can be used to write SIPs.
func (s AppSettings) Validate() error {
	if !IsISODuration(s.Pipeline.Duration) {
		return fmt.Errorf("%w: pipeline.duration %q is not an ISO-8601 duration", ErrInvalidInput, s.Pipeline.Duration)
	}
	return nil
}
