// Package units converts SIP frequencies and times to their base units
package units

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/tikk3r/prefactor-eor/internal/core/domain"
)

// Frequency unit tags
const (
	Hz  = "Hz"
	KHz = "kHz"
	MHz = "MHz"
)

// Time unit tags
const (
	Seconds      = "s"
	Milliseconds = "ms"
	Microseconds = "us"
	Nanoseconds  = "ns"
)

// FrequencyUnits contains all recognised frequency unit tags
var FrequencyUnits = []string{Hz, KHz, MHz}

// TimeUnits contains all recognised time unit tags
var TimeUnits = []string{Seconds, Milliseconds, Microseconds, Nanoseconds}

// FrequencyToHz converts a frequency to Hz.
// An empty unit is taken to be Hz already; any other unknown tag is an error.
func FrequencyToHz(value float64, unit string) (float64, error) {
	switch unit {
	case Hz, "":
		return value, nil
	case KHz:
		return value * 1e3, nil
	case MHz:
		return value * 1e6, nil
	default:
		return 0, fmt.Errorf("%w: frequency unit %q (want one of %s)",
			domain.ErrUnknownUnit, unit, strings.Join(FrequencyUnits, ", "))
	}
}

// TimeToSeconds converts a time interval to seconds.
// An empty unit is taken to be seconds already; any other unknown tag is an error.
func TimeToSeconds(value float64, unit string) (float64, error) {
	switch unit {
	case Seconds, "":
		return value, nil
	case Milliseconds:
		return value / 1e3, nil
	case Microseconds:
		return value / 1e6, nil
	case Nanoseconds:
		return value / 1e9, nil
	default:
		return 0, fmt.Errorf("%w: time unit %q (want one of %s)",
			domain.ErrUnknownUnit, unit, strings.Join(TimeUnits, ", "))
	}
}

// IntegrationStep returns output/input rounded half to even, the factor by
// which a pipeline averaged channels or time slots.
func IntegrationStep(output, input float64) (int, error) {
	if input == 0 || math.IsNaN(input) || math.IsInf(input, 0) || math.IsNaN(output) || math.IsInf(output, 0) {
		return 0, fmt.Errorf("%w: cannot compute step %v/%v", domain.ErrInvalidInput, output, input)
	}
	return int(scalar.RoundEven(output/input, 0)), nil
}
