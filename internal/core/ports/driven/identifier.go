package driven

import "github.com/tikk3r/prefactor-eor/internal/sip"

// IdentifierMinter mints archive identifiers for an identifier source.
// Every call returns a new identifier.
type IdentifierMinter interface {
	Mint(source string) sip.Identifier
}
