// Package memory provides in-memory implementations of driven ports for
// tests and dry runs.
package memory
