// Package domain defines the core entities for the results SIP generator.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ResultsOutcome: The files a results run created
//   - SIPSummary: A flat description of a SIP document for display
//   - AppSettings: Tool defaults (duration, output directory, parset embedding)
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
