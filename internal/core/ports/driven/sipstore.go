package driven

import (
	"context"

	"github.com/tikk3r/prefactor-eor/internal/sip"
)

// SIPStore reads and writes SIP documents.
type SIPStore interface {
	// Load reads the SIP document at path.
	Load(ctx context.Context, path string) (*sip.Document, error)

	// Save writes doc to path, replacing any existing file.
	Save(ctx context.Context, path string, doc *sip.Document) error
}
