// Package sip is an object model of the LOFAR Long Term Archive
// Submission Information Package (SIP) XML document.
//
// A SIP describes one dataproduct (the primary payload), the project it
// belongs to, and its provenance: the observations and pipeline runs that
// produced it and the related dataproducts they consumed.
//
// Documents are read with Read or Parse and written with Document.Write.
// Elements decoded from an existing SIP (observations, pipeline runs,
// related dataproducts) are written back exactly as they were read, so
// history copied from input SIPs survives even where this model does not
// name every schema field. Values constructed in Go are written from their
// fields.
package sip
