package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrValidation", ErrValidation},
		{"ErrTypeKind", ErrTypeKind},
		{"ErrValueKind", ErrValueKind},
		{"ErrUnsupportedCardinality", ErrUnsupportedCardinality},
		{"ErrUnknownUnit", ErrUnknownUnit},
		{"ErrMissingKey", ErrMissingKey},
		{"ErrMalformedFeedback", ErrMalformedFeedback},
		{"ErrMalformedSIP", ErrMalformedSIP},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotFound", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Distinct tests that no sentinel matches another
func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrValidation, ErrTypeKind, ErrValueKind, ErrUnsupportedCardinality, ErrUnknownUnit,
		ErrMissingKey, ErrMalformedFeedback, ErrMalformedSIP, ErrInvalidInput, ErrNotFound,
	}
	for i, a := range all {
		for j, b := range all {
			assert.Equal(t, i == j, errors.Is(a, b), "%v vs %v", a, b)
		}
	}
}

// TestErrors_Wrapped tests that wrapped errors still match their sentinel
func TestErrors_Wrapped(t *testing.T) {
	err := fmt.Errorf("results: %w", fmt.Errorf("%w: pipeline name is empty", ErrValidation))

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, "results: validation failed: pipeline name is empty", err.Error())
}
