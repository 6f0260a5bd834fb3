package sip

// Identifier is an archive-wide unique identifier. Source names the
// identifier source that minted it, which lets SIPs written by different
// pipeline stages refer to each other.
type Identifier struct {
	Source     string `xml:"source"`
	Identifier string `xml:"identifier"`
	Name       string `xml:"name,omitempty"`
	Label      string `xml:"label,omitempty"`
}

// IsZero reports whether the identifier is unset.
func (id Identifier) IsZero() bool {
	return id.Source == "" && id.Identifier == ""
}

// Key returns a comparable "source/identifier" form.
func (id Identifier) Key() string {
	return id.Source + "/" + id.Identifier
}

// String returns the identifier for display.
func (id Identifier) String() string {
	if id.Name != "" {
		return id.Key() + " (" + id.Name + ")"
	}
	return id.Key()
}

// Minter mints fresh identifiers for an identifier source.
type Minter interface {
	Mint(source string) Identifier
}
