// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - SIPStore: reads and writes SIP documents
//   - IdentifierMinter: mints identifiers for new dataproducts and runs
//   - Clock: current time for pipeline run start times
//   - ConfigStore: tool settings
//
// # Import Rules
//
//   - Can Import: domain and the sip object model
//   - Cannot Import: any adapter package
package driven
