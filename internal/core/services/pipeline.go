package services

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/tikk3r/prefactor-eor/internal/core/domain"
	"github.com/tikk3r/prefactor-eor/internal/logger"
	"github.com/tikk3r/prefactor-eor/internal/parset"
	"github.com/tikk3r/prefactor-eor/internal/sip"
)

// Pipeline description keys read from the parset.
const (
	KeyPrefactorVersion          = "prefactor_version"
	KeyStrategyName              = "strategyname_target"
	KeyStrategyDescription       = "strategydescription_target"
	KeySkyModelDatabase          = "skymodeldatabase_target"
	KeyNumInstrumentModels       = "numinstrumentmodels"
	KeyNumCorrelatedDataProducts = "numcorrelateddataproducts"
	KeyFrequencyIntegrationStep  = "frequencyintegrationstep"
	KeyTimeIntegrationStep       = "timeintegrationstep"
	KeyFlagAutoCorrelations      = "flagautocorrelations"
	KeyDemixing                  = "demixing"
	KeyIdentifierSource          = "identifier_source"
)

// PipelineRunInput describes one target pipeline run.
type PipelineRunInput struct {
	Name             string
	RunID            sip.Identifier
	ObservationID    sip.Identifier
	IdentifierSource string
	StartTime        string
	Duration         string
	Parset           *parset.Parset
	// Inputs are the dataproducts the run consumed.
	Inputs []sip.Identifier
}

// BuildPipelineRun builds the calibration pipeline run of a target pipeline
// from its description parset. Optional numeric and flag fields set to
// NONE are left out. Identifiers without a source get IdentifierSource.
// The run has no relations to earlier runs.
func BuildPipelineRun(in PipelineRunInput) (sip.PipelineRun, error) {
	if len(in.Inputs) == 0 {
		return sip.PipelineRun{}, fmt.Errorf("%w: pipeline run %q has no input dataproducts", domain.ErrInvalidInput, in.Name)
	}
	ps := in.Parset
	runID, obsID := in.RunID, in.ObservationID
	if runID.Source == "" {
		runID.Source = in.IdentifierSource
	}
	if obsID.Source == "" {
		obsID.Source = in.IdentifierSource
	}

	version, err := ps.String(KeyPrefactorVersion)
	if err != nil {
		return sip.PipelineRun{}, err
	}
	if _, err := semver.NewVersion(version); err != nil {
		logger.Warn("%s %q is not a semantic version", KeyPrefactorVersion, version)
	}
	strategyName, err := ps.String(KeyStrategyName)
	if err != nil {
		return sip.PipelineRun{}, err
	}
	strategyDescription, err := ps.String(KeyStrategyDescription)
	if err != nil {
		return sip.PipelineRun{}, err
	}
	skyModel, err := ps.String(KeySkyModelDatabase)
	if err != nil {
		return sip.PipelineRun{}, err
	}

	run := sip.PipelineRun{
		Type: sip.TypeCalibrationPipeline,
		Process: sip.Process{
			ProcessIdentifier:   runID,
			ObservationID:       obsID,
			StrategyName:        strategyName,
			StrategyDescription: strategyDescription,
			StartTime:           in.StartTime,
			Duration:            in.Duration,
		},
		PipelineName:     in.Name,
		PipelineVersion:  version,
		SourceData:       sip.SourceData{DataProductIdentifiers: append([]sip.Identifier(nil), in.Inputs...)},
		SkyModelDatabase: skyModel,
	}

	ints := []struct {
		key string
		dst **int
	}{
		{KeyNumInstrumentModels, &run.NumberOfInstrumentModels},
		{KeyNumCorrelatedDataProducts, &run.NumberOfCorrelatedDataProducts},
		{KeyFrequencyIntegrationStep, &run.FrequencyIntegrationStep},
		{KeyTimeIntegrationStep, &run.TimeIntegrationStep},
	}
	for _, f := range ints {
		if *f.dst, err = ps.OptionalInt(f.key); err != nil {
			return sip.PipelineRun{}, err
		}
	}
	if run.FlagAutoCorrelations, err = ps.OptionalBool(KeyFlagAutoCorrelations); err != nil {
		return sip.PipelineRun{}, err
	}
	if run.Demixing, err = ps.OptionalBool(KeyDemixing); err != nil {
		return sip.PipelineRun{}, err
	}
	return run, nil
}
