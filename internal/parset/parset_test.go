package parset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikk3r/prefactor-eor/internal/core/domain"
)

const sampleParset = `# prefactor pipeline description
identifier_source = prefactor_target
prefactor_version = v3.2
strategyname_target = "Target pipeline"
strategydescription_target = 'Calibrates and averages target data'
skymodeldatabase_target = TGSS  # used for phase-only calibration
numinstrumentmodels = NONE
numcorrelateddataproducts = 244
frequencyintegrationstep = none
timeintegrationstep = 4
flagautocorrelations = True
demixing = NONE
long_value = first \
  second
`

func parseSample(t *testing.T) *Parset {
	t.Helper()
	p, err := Parse(strings.NewReader(sampleParset))
	require.NoError(t, err)
	return p
}

func TestParse_Values(t *testing.T) {
	p := parseSample(t)

	tests := []struct {
		key  string
		want string
	}{
		{"identifier_source", "prefactor_target"},
		{"prefactor_version", "v3.2"},
		{"strategyname_target", "Target pipeline"},
		{"strategydescription_target", "Calibrates and averages target data"},
		{"skymodeldatabase_target", "TGSS"},
		{"long_value", "first second"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := p.String(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_KeepsFileOrder(t *testing.T) {
	p := parseSample(t)

	keys := p.Keys()
	require.Len(t, keys, 12)
	assert.Equal(t, "identifier_source", keys[0])
	assert.Equal(t, "long_value", keys[11])
}

func TestParse_LaterAssignmentWins(t *testing.T) {
	p, err := Parse(strings.NewReader("a = 1\nb = 2\na = 3\n"))
	require.NoError(t, err)

	v, _ := p.Get("a")
	assert.Equal(t, "3", v)
	assert.Equal(t, []string{"a", "b"}, p.Keys())
}

func TestParse_BracketKeys(t *testing.T) {
	p, err := Parse(strings.NewReader("LOFAR.DataProducts.Output_Correlated_[0].filename=L1_SB000.MS\n"))
	require.NoError(t, err)

	v, ok := p.Get("LOFAR.DataProducts.Output_Correlated_[0].filename")
	assert.True(t, ok)
	assert.Equal(t, "L1_SB000.MS", v)
}

func TestParse_CommentEndingInBackslash(t *testing.T) {
	p, err := Parse(strings.NewReader("# averaging \\\nstep = 4\n# last \\\n"))
	require.NoError(t, err)

	v, ok := p.Get("step")
	assert.True(t, ok)
	assert.Equal(t, "4", v)
	assert.Equal(t, []string{"step"}, p.Keys())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing equals", "just a line\n"},
		{"empty key", " = value\n"},
		{"dangling continuation", "a = b \\\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}

func TestString_MissingKey(t *testing.T) {
	p := parseSample(t)

	_, err := p.String("does_not_exist")

	assert.True(t, errors.Is(err, domain.ErrMissingKey))
	assert.Contains(t, err.Error(), "does_not_exist")
}

func TestOptionalInt(t *testing.T) {
	p := parseSample(t)

	n, err := p.OptionalInt("numinstrumentmodels")
	require.NoError(t, err)
	assert.Nil(t, n)

	n, err = p.OptionalInt("frequencyintegrationstep")
	require.NoError(t, err)
	assert.Nil(t, n, "NONE is case-insensitive")

	n, err = p.OptionalInt("timeintegrationstep")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 4, *n)

	_, err = p.OptionalInt("prefactor_version")
	assert.True(t, errors.Is(err, domain.ErrValueKind))
}

func TestOptionalBool(t *testing.T) {
	p := parseSample(t)

	b, err := p.OptionalBool("demixing")
	require.NoError(t, err)
	assert.Nil(t, b)

	b, err = p.OptionalBool("flagautocorrelations")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.True(t, *b)

	_, err = p.OptionalBool("skymodeldatabase_target")
	assert.True(t, errors.Is(err, domain.ErrValueKind))

	_, err = p.OptionalBool("absent")
	assert.True(t, errors.Is(err, domain.ErrMissingKey))
}

func TestBool_Spellings(t *testing.T) {
	for _, s := range []string{"true", "T", "yes", "Y", "on", "1"} {
		p := FromMap(map[string]string{"k": s})
		b, err := p.Bool("k")
		require.NoError(t, err, s)
		assert.True(t, b, s)
	}
	for _, s := range []string{"false", "F", "no", "N", "OFF", "0"} {
		p := FromMap(map[string]string{"k": s})
		b, err := p.Bool("k")
		require.NoError(t, err, s)
		assert.False(t, b, s)
	}
}

func TestWith_LeavesReceiverUntouched(t *testing.T) {
	p := parseSample(t)

	derived := p.With(map[string]string{
		"numinstrumentmodels":      "0",
		"frequencyintegrationstep": "4",
		"new_key":                  "x",
	})

	orig, _ := p.Get("numinstrumentmodels")
	assert.Equal(t, "NONE", orig)
	_, ok := p.Get("new_key")
	assert.False(t, ok)

	n, err := derived.OptionalInt("numinstrumentmodels")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 0, *n)

	keys := derived.Keys()
	assert.Equal(t, "new_key", keys[len(keys)-1])
	assert.Equal(t, p.Len()+1, derived.Len())
}

func TestFromMap_SortedKeys(t *testing.T) {
	p := FromMap(map[string]string{"b": "2", "a": "1"})

	assert.Equal(t, []string{"a", "b"}, p.Keys())
	assert.Equal(t, "a=1\nb=2\n", p.Encode())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.parset")
	require.NoError(t, os.WriteFile(path, []byte(sampleParset), 0o600))

	p, err := Load(path)

	require.NoError(t, err)
	v, _ := p.Get("identifier_source")
	assert.Equal(t, "prefactor_target", v)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.parset"))

	assert.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
