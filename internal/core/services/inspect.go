package services

import (
	"context"

	"github.com/tikk3r/prefactor-eor/internal/core/domain"
	"github.com/tikk3r/prefactor-eor/internal/core/ports/driven"
	"github.com/tikk3r/prefactor-eor/internal/core/ports/driving"
	"github.com/tikk3r/prefactor-eor/internal/sip"
)

// Ensure InspectService implements the interface.
var _ driving.InspectService = (*InspectService)(nil)

// InspectService summarises SIP documents.
type InspectService struct {
	sips driven.SIPStore
}

// NewInspectService creates a new inspect service.
func NewInspectService(sips driven.SIPStore) *InspectService {
	return &InspectService{sips: sips}
}

// Inspect loads the SIP at path and summarises it. Validation problems are
// reported in the summary, not as an error.
func (s *InspectService) Inspect(ctx context.Context, path string) (*domain.SIPSummary, error) {
	doc, err := s.sips.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	summary := &domain.SIPSummary{
		Path:                path,
		ProjectCode:         doc.Project.ProjectCode,
		PrimaryInvestigator: doc.Project.PrimaryInvestigator,
		DataProductType:     doc.DataProduct.DataProductType,
		DataProductID:       doc.DataProductIdentifier().String(),
		FileName:            doc.DataProduct.FileName,
		Observations:        make([]string, 0, len(doc.Observations)),
		PipelineRuns:        make([]string, 0, len(doc.PipelineRuns)),
		RelatedDataProducts: make([]string, 0, len(doc.RelatedDataProducts)),
		Parsets:             len(doc.Parsets),
	}
	for _, o := range doc.Observations {
		summary.Observations = append(summary.Observations, o.ObservationID.String())
	}
	for _, p := range doc.PipelineRuns {
		summary.PipelineRuns = append(summary.PipelineRuns, describeRun(p))
	}
	for _, dp := range doc.RelatedDataProducts {
		summary.RelatedDataProducts = append(summary.RelatedDataProducts, dp.DataProductIdentifier.String())
	}
	if err := doc.Validate(); err != nil {
		summary.Problems = err.Error()
	}
	return summary, nil
}

func describeRun(p sip.PipelineRun) string {
	s := p.ProcessIdentifier.String()
	if p.PipelineName != "" {
		s = p.PipelineName + " " + s
	}
	return s
}
