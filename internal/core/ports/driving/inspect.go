package driving

import (
	"context"

	"github.com/tikk3r/prefactor-eor/internal/core/domain"
)

// InspectService summarises existing SIP documents.
type InspectService interface {
	Inspect(ctx context.Context, path string) (*domain.SIPSummary, error)
}
