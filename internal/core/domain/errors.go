package domain

import "errors"

// Domain errors represent failures of a SIP generation run.
// These are distinct from infrastructure (I/O) errors, which are wrapped
// and propagated unchanged.
var (
	// ErrValidation indicates a missing or invalid required input.
	// The run is aborted before any input SIP is opened.
	ErrValidation = errors.New("validation failed")

	// ErrTypeKind indicates a loosely typed value has a kind the
	// coercion does not accept.
	ErrTypeKind = errors.New("unsupported value kind")

	// ErrValueKind indicates a value has the right kind but cannot be
	// converted (e.g. "maybe" as a boolean).
	ErrValueKind = errors.New("unconvertible value")

	// ErrUnsupportedCardinality indicates the feedback file describes more
	// dataproducts than a single run can turn into SIPs.
	ErrUnsupportedCardinality = errors.New("unsupported number of dataproducts")

	// ErrUnknownUnit indicates a frequency or time carries an unrecognised unit tag.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrMissingKey indicates a required parset key is absent.
	ErrMissingKey = errors.New("missing parset key")

	// ErrMalformedFeedback indicates the feedback file cannot be parsed.
	ErrMalformedFeedback = errors.New("malformed feedback")

	// ErrMalformedSIP indicates a SIP document is not usable.
	ErrMalformedSIP = errors.New("malformed SIP")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
