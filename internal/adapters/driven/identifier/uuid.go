// Package identifier mints archive identifiers.
package identifier

import (
	"github.com/google/uuid"

	"github.com/tikk3r/prefactor-eor/internal/core/ports/driven"
	"github.com/tikk3r/prefactor-eor/internal/sip"
)

// Ensure UUIDMinter implements the interface.
var _ driven.IdentifierMinter = (*UUIDMinter)(nil)

// UUIDMinter mints random (version 4) UUID identifiers. They are unique
// without coordination with the archive's identifier service.
type UUIDMinter struct{}

// NewUUIDMinter creates a new minter.
func NewUUIDMinter() *UUIDMinter {
	return &UUIDMinter{}
}

// Mint returns a new identifier for source.
func (m *UUIDMinter) Mint(source string) sip.Identifier {
	return sip.Identifier{
		Source:     source,
		Identifier: uuid.New().String(),
	}
}
