package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikk3r/prefactor-eor/internal/core/domain"
	"github.com/tikk3r/prefactor-eor/internal/parset"
	"github.com/tikk3r/prefactor-eor/internal/sip"
)

func pipelineParset(overrides map[string]string) *parset.Parset {
	return parset.FromMap(map[string]string{
		KeyPrefactorVersion:          "3.0.0",
		KeyStrategyName:              "prefactor target",
		KeyStrategyDescription:       "averaging",
		KeySkyModelDatabase:          "TGSS",
		KeyNumInstrumentModels:       "0",
		KeyNumCorrelatedDataProducts: "1",
		KeyFrequencyIntegrationStep:  "4",
		KeyTimeIntegrationStep:       "2",
		KeyFlagAutoCorrelations:      "T",
		KeyDemixing:                  "NONE",
	}).With(overrides)
}

func pipelineInput(ps *parset.Parset) PipelineRunInput {
	return PipelineRunInput{
		Name:             "target_L1",
		RunID:            sip.Identifier{Source: "prefactor", Identifier: "run"},
		ObservationID:    sip.Identifier{Source: "prefactor", Identifier: "run"},
		IdentifierSource: "prefactor",
		StartTime:        "2026-10-18T12:00:00",
		Duration:         "PT1H",
		Parset:           ps,
		Inputs:           []sip.Identifier{{Source: "SAS", Identifier: "1"}},
	}
}

func TestBuildPipelineRun(t *testing.T) {
	captureLog(t)
	run, err := BuildPipelineRun(pipelineInput(pipelineParset(nil)))
	require.NoError(t, err)

	assert.Equal(t, sip.TypeCalibrationPipeline, run.Type)
	assert.Equal(t, "target_L1", run.PipelineName)
	assert.Equal(t, "3.0.0", run.PipelineVersion)
	assert.Equal(t, "prefactor target", run.StrategyName)
	assert.Equal(t, "averaging", run.StrategyDescription)
	assert.Equal(t, "TGSS", run.SkyModelDatabase)
	assert.Equal(t, "2026-10-18T12:00:00", run.StartTime)
	assert.Equal(t, "PT1H", run.Duration)
	assert.Equal(t, intPtr(0), run.NumberOfInstrumentModels)
	assert.Equal(t, intPtr(1), run.NumberOfCorrelatedDataProducts)
	assert.Equal(t, intPtr(4), run.FrequencyIntegrationStep)
	assert.Equal(t, intPtr(2), run.TimeIntegrationStep)
	assert.Equal(t, boolPtr(true), run.FlagAutoCorrelations)
	assert.Nil(t, run.Demixing)
	assert.Empty(t, run.Relations)
	assert.Equal(t, []sip.Identifier{{Source: "SAS", Identifier: "1"}}, run.SourceData.DataProductIdentifiers)
}

func TestBuildPipelineRun_DoesNotShareInputs(t *testing.T) {
	in := pipelineInput(pipelineParset(nil))
	run, err := BuildPipelineRun(in)
	require.NoError(t, err)

	in.Inputs[0].Identifier = "changed"
	assert.Equal(t, "1", run.SourceData.DataProductIdentifiers[0].Identifier)
}

func TestBuildPipelineRun_FillsIdentifierSource(t *testing.T) {
	in := pipelineInput(pipelineParset(nil))
	in.RunID = sip.Identifier{Identifier: "run"}
	in.ObservationID = sip.Identifier{Identifier: "obs"}

	run, err := BuildPipelineRun(in)
	require.NoError(t, err)
	assert.Equal(t, sip.Identifier{Source: "prefactor", Identifier: "run"}, run.ProcessIdentifier)
	assert.Equal(t, sip.Identifier{Source: "prefactor", Identifier: "obs"}, run.ObservationID)
}

func TestBuildPipelineRun_AllOptionalNone(t *testing.T) {
	run, err := BuildPipelineRun(pipelineInput(pipelineParset(map[string]string{
		KeyNumInstrumentModels:       "none",
		KeyNumCorrelatedDataProducts: "NONE",
		KeyFrequencyIntegrationStep:  "NONE",
		KeyTimeIntegrationStep:       "NONE",
		KeyFlagAutoCorrelations:      "NONE",
	})))
	require.NoError(t, err)
	assert.Nil(t, run.NumberOfInstrumentModels)
	assert.Nil(t, run.NumberOfCorrelatedDataProducts)
	assert.Nil(t, run.FrequencyIntegrationStep)
	assert.Nil(t, run.TimeIntegrationStep)
	assert.Nil(t, run.FlagAutoCorrelations)
}

func TestBuildPipelineRun_Errors(t *testing.T) {
	t.Run("no inputs", func(t *testing.T) {
		in := pipelineInput(pipelineParset(nil))
		in.Inputs = nil
		_, err := BuildPipelineRun(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing required key", func(t *testing.T) {
		ps := parset.FromMap(map[string]string{KeyPrefactorVersion: "3.0.0"})
		_, err := BuildPipelineRun(pipelineInput(ps))
		assert.ErrorIs(t, err, domain.ErrMissingKey)
	})

	t.Run("missing optional key", func(t *testing.T) {
		ps := parset.FromMap(map[string]string{
			KeyPrefactorVersion:    "3.0.0",
			KeyStrategyName:        "s",
			KeyStrategyDescription: "d",
			KeySkyModelDatabase:    "TGSS",
		})
		_, err := BuildPipelineRun(pipelineInput(ps))
		assert.ErrorIs(t, err, domain.ErrMissingKey)
	})

	t.Run("non integer step", func(t *testing.T) {
		_, err := BuildPipelineRun(pipelineInput(pipelineParset(map[string]string{KeyTimeIntegrationStep: "2.5"})))
		assert.ErrorIs(t, err, domain.ErrValueKind)
	})

	t.Run("non boolean flag", func(t *testing.T) {
		_, err := BuildPipelineRun(pipelineInput(pipelineParset(map[string]string{KeyDemixing: "maybe"})))
		assert.ErrorIs(t, err, domain.ErrValueKind)
	})
}

func TestBuildPipelineRun_WarnsOnNonSemanticVersion(t *testing.T) {
	buf := captureLog(t)

	_, err := BuildPipelineRun(pipelineInput(pipelineParset(map[string]string{KeyPrefactorVersion: "v3.0.0"})))
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	_, err = BuildPipelineRun(pipelineInput(pipelineParset(map[string]string{KeyPrefactorVersion: "master-abc123"})))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `[WARN] prefactor_version "master-abc123" is not a semantic version`)
}
