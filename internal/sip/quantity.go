package sip

import "github.com/tikk3r/prefactor-eor/internal/units"

// Frequency is a value with a frequency unit tag (Hz, kHz, MHz).
type Frequency struct {
	Units string  `xml:"units,attr"`
	Value float64 `xml:",chardata"`
}

// Hz returns the frequency in Hz.
func (f Frequency) Hz() (float64, error) {
	return units.FrequencyToHz(f.Value, f.Units)
}

// Time is a value with a time unit tag (s, ms, us, ns).
type Time struct {
	Units string  `xml:"units,attr"`
	Value float64 `xml:",chardata"`
}

// Seconds returns the time in seconds.
func (t Time) Seconds() (float64, error) {
	return units.TimeToSeconds(t.Value, t.Units)
}
