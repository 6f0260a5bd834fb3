package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tikk3r/prefactor-eor/internal/coerce"
	"github.com/tikk3r/prefactor-eor/internal/core/domain"
	"github.com/tikk3r/prefactor-eor/internal/core/ports/driven"
	"github.com/tikk3r/prefactor-eor/internal/core/ports/driving"
	"github.com/tikk3r/prefactor-eor/internal/feedback"
	"github.com/tikk3r/prefactor-eor/internal/logger"
	"github.com/tikk3r/prefactor-eor/internal/parset"
	"github.com/tikk3r/prefactor-eor/internal/sip"
	"github.com/tikk3r/prefactor-eor/internal/timeutil"
	"github.com/tikk3r/prefactor-eor/internal/units"
)

// Ensure ResultsService implements the interface.
var _ driving.ResultsService = (*ResultsService)(nil)

// ResultsService writes the SIP of a target pipeline's output dataproduct.
type ResultsService struct {
	sips     driven.SIPStore
	minter   driven.IdentifierMinter
	clock    driven.Clock
	settings driving.SettingsService
}

// NewResultsService creates a new results service.
func NewResultsService(
	sips driven.SIPStore,
	minter driven.IdentifierMinter,
	clock driven.Clock,
	settings driving.SettingsService,
) *ResultsService {
	return &ResultsService{
		sips:     sips,
		minter:   minter,
		clock:    clock,
		settings: settings,
	}
}

// validated holds a request after validation and coercion.
type validated struct {
	feedbackPath  string
	inputSIPs     []string
	instrumentSIP string
	pipelineName  string
	parsetPath    string
	verbose       bool
}

// Generate builds one SIP per dataproduct in the feedback file. Only a
// single dataproduct per feedback file is supported.
//
// The new SIP takes its project from the first input SIP and records the
// instrument SIP and all input SIPs, with their history, as related
// dataproducts. A calibration pipeline run described by the parset links
// them to the new dataproduct. Frequency and time integration steps are
// derived from the first input SIP.
func (s *ResultsService) Generate(ctx context.Context, req driving.ResultsRequest) (*domain.ResultsOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	in, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	// Verbose only widens logging for this call.
	if in.verbose && !logger.IsVerbose() {
		logger.SetVerbose(true)
		defer logger.SetVerbose(false)
	}

	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	logger.Section("Loading SIPs")
	inputs := make([]*sip.Document, 0, len(in.inputSIPs))
	for _, path := range in.inputSIPs {
		doc, err := s.sips.Load(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("input SIP %s: %w", path, err)
		}
		logger.Debug("input SIP %s: dataproduct %s", path, doc.DataProductIdentifier())
		inputs = append(inputs, doc)
	}
	instrument, err := s.sips.Load(ctx, in.instrumentSIP)
	if err != nil {
		return nil, fmt.Errorf("instrument SIP %s: %w", in.instrumentSIP, err)
	}
	logger.Debug("instrument SIP %s: dataproduct %s", in.instrumentSIP, instrument.DataProductIdentifier())

	pipelineParset, err := parset.Load(in.parsetPath)
	if err != nil {
		return nil, err
	}
	source, err := pipelineParset.String(KeyIdentifierSource)
	if err != nil {
		return nil, err
	}

	logger.Section("Reading feedback")
	products, err := feedback.ReadDataProducts(in.feedbackPath, source, s.minter)
	if err != nil {
		return nil, err
	}
	if len(products) > 1 {
		return nil, fmt.Errorf("%w: feedback %s describes %d dataproducts, only one is supported",
			domain.ErrUnsupportedCardinality, in.feedbackPath, len(products))
	}
	logger.Info("feedback: %d dataproduct(s), identifier source %q", len(products), source)

	startTime := timeutil.StartTime(s.clock, req.StartTimestamp)

	outcome := &domain.ResultsOutcome{CreatedXMLFiles: []string{}}
	for _, product := range products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path, err := s.writeProductSIP(ctx, productJob{
			input:      in,
			product:    product,
			count:      len(products),
			inputs:     inputs,
			instrument: instrument,
			parset:     pipelineParset,
			source:     source,
			startTime:  startTime,
			settings:   settings,
		})
		if err != nil {
			return nil, err
		}
		outcome.CreatedXMLFiles = append(outcome.CreatedXMLFiles, path)
	}
	return outcome, nil
}

func (s *ResultsService) validate(req driving.ResultsRequest) (*validated, error) {
	if !fileExists(req.ResultsFeedback) {
		return nil, fmt.Errorf("%w: invalid results feedback %q", domain.ErrValidation, req.ResultsFeedback)
	}

	var inputSIPs []string
	if !req.InputSIPs.IsNull() {
		list, err := coerce.StringOrListToStringList(req.InputSIPs)
		if err != nil {
			return nil, err
		}
		for _, p := range list {
			if p != "" {
				inputSIPs = append(inputSIPs, p)
			}
		}
	}
	if len(inputSIPs) == 0 {
		return nil, fmt.Errorf("%w: no input data SIPs given", domain.ErrValidation)
	}

	if strings.TrimSpace(req.PipelineName) == "" {
		return nil, fmt.Errorf("%w: invalid pipeline name", domain.ErrValidation)
	}
	if !fileExists(req.ParsetPath) {
		return nil, fmt.Errorf("%w: invalid parset path %q", domain.ErrValidation, req.ParsetPath)
	}

	verbose, err := coerce.ToBool(req.Verbose, false)
	if err != nil {
		return nil, fmt.Errorf("verbose: %w", err)
	}
	failOnError, err := coerce.ToBool(req.FailOnError, true)
	if err != nil {
		return nil, fmt.Errorf("fail_on_error: %w", err)
	}
	logger.Debug("fail_on_error=%t (every error aborts the run)", failOnError)

	return &validated{
		feedbackPath:  req.ResultsFeedback,
		inputSIPs:     inputSIPs,
		instrumentSIP: req.InstrumentSIP,
		pipelineName:  req.PipelineName,
		parsetPath:    req.ParsetPath,
		verbose:       verbose,
	}, nil
}

type productJob struct {
	input      *validated
	product    sip.DataProduct
	count      int
	inputs     []*sip.Document
	instrument *sip.Document
	parset     *parset.Parset
	source     string
	startTime  string
	settings   *domain.AppSettings
}

func (s *ResultsService) writeProductSIP(ctx context.Context, job productJob) (string, error) {
	first := job.inputs[0]
	product := job.product

	productID := s.minter.Mint(job.source)
	productID.Name = strings.TrimRight(product.FileName, "/")
	runID := s.minter.Mint(job.source)
	sap, err := first.SubArrayPointingIdentifier()
	if err != nil {
		return "", fmt.Errorf("first input SIP: %w", err)
	}
	product.SetIdentifier(productID)
	product.SetProcessIdentifier(runID)
	product.SetSubArrayPointingIdentifier(sap)

	project := first.Project
	project.CoInvestigators = append([]string(nil), first.Project.CoInvestigators...)
	doc := sip.New(project, product)

	logger.Section("Collecting history")
	if !doc.AddRelatedDataProductWithHistory(job.instrument) {
		logger.Warn("dataproduct %s is already related, merging its history only", job.instrument.DataProductIdentifier())
	}
	inputIDs := []sip.Identifier{job.instrument.DataProductIdentifier()}
	for _, in := range job.inputs {
		if !doc.AddRelatedDataProductWithHistory(in) {
			logger.Warn("dataproduct %s is already related, merging its history only", in.DataProductIdentifier())
		}
		inputIDs = append(inputIDs, in.DataProductIdentifier())
	}

	freqStep, timeStep, err := integrationSteps(first.DataProduct, product)
	if err != nil {
		return "", err
	}
	logger.Info("integration steps: frequency %d, time %d", freqStep, timeStep)

	runParset := job.parset.With(map[string]string{
		KeyNumInstrumentModels:       "0",
		KeyNumCorrelatedDataProducts: strconv.Itoa(job.count),
		KeyFrequencyIntegrationStep:  strconv.Itoa(freqStep),
		KeyTimeIntegrationStep:       strconv.Itoa(timeStep),
	})

	// The run doubles as its own observation.
	run, err := BuildPipelineRun(PipelineRunInput{
		Name:             job.input.pipelineName,
		RunID:            runID,
		ObservationID:    runID,
		IdentifierSource: job.source,
		StartTime:        job.startTime,
		Duration:         job.settings.Pipeline.Duration,
		Parset:           runParset,
		Inputs:           inputIDs,
	})
	if err != nil {
		return "", err
	}
	if job.settings.Output.EmbedParset {
		id := doc.AddParset(s.minter.Mint(job.source), runParset.Encode())
		run.ParsetIdentifier = &id
	}
	if err := doc.AddPipelineRun(run); err != nil {
		return "", err
	}
	if err := doc.Validate(); err != nil {
		return "", err
	}

	path := strings.TrimRight(product.FileName, "/") + ".xml"
	if job.settings.Output.Directory != "" {
		path = filepath.Join(job.settings.Output.Directory, path)
	}
	if err := s.sips.Save(ctx, path, doc); err != nil {
		return "", fmt.Errorf("saving SIP: %w", err)
	}
	logger.Info("wrote %s", path)
	return path, nil
}

// integrationSteps returns how many input channels and integrations were
// averaged into one of the output dataproduct.
func integrationSteps(input, output sip.DataProduct) (freqStep, timeStep int, err error) {
	if input.ChannelWidth == nil || input.IntegrationInterval == nil {
		return 0, 0, fmt.Errorf("%w: first input dataproduct %s lacks channelWidth or integrationInterval",
			domain.ErrMalformedSIP, input.DataProductIdentifier)
	}
	if output.ChannelWidth == nil || output.IntegrationInterval == nil {
		return 0, 0, fmt.Errorf("%w: dataproduct %s lacks channelWidth or integrationInterval",
			domain.ErrMalformedFeedback, output.FileName)
	}

	inChan, err := input.ChannelWidth.Hz()
	if err != nil {
		return 0, 0, err
	}
	outChan, err := output.ChannelWidth.Hz()
	if err != nil {
		return 0, 0, err
	}
	if freqStep, err = units.IntegrationStep(outChan, inChan); err != nil {
		return 0, 0, fmt.Errorf("frequency integration step: %w", err)
	}

	inInt, err := input.IntegrationInterval.Seconds()
	if err != nil {
		return 0, 0, err
	}
	outInt, err := output.IntegrationInterval.Seconds()
	if err != nil {
		return 0, 0, err
	}
	if timeStep, err = units.IntegrationStep(outInt, inInt); err != nil {
		return 0, 0, fmt.Errorf("time integration step: %w", err)
	}
	return freqStep, timeStep, nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
