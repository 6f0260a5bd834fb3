// Package feedback reads LOFAR pipeline feedback files into SIP
// dataproducts.
//
// A feedback file is a parset whose keys describe the dataproducts a
// pipeline wrote:
//
//	Observation.DataProducts.Output_Correlated_[0].filename=L123_SB000_uv.MS
//	Observation.DataProducts.Output_Correlated_[0].channelWidth=12207.03125
//
// The part of the first line before its first '.' is the record prefix;
// only keys under that prefix are considered.
package feedback

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/tikk3r/prefactor-eor/internal/core/domain"
	"github.com/tikk3r/prefactor-eor/internal/logger"
	"github.com/tikk3r/prefactor-eor/internal/parset"
	"github.com/tikk3r/prefactor-eor/internal/sip"
	"github.com/tikk3r/prefactor-eor/internal/units"
)

// Dataproduct kinds as they appear in feedback keys.
const (
	KindCorrelated      = "Correlated"
	KindInstrumentModel = "InstrumentModel"
)

var recordKey = regexp.MustCompile(`^(?:.*\.)?DataProducts\.Output_([A-Za-z]+)_\[(\d+)\]\.(.+)$`)

type record struct {
	kind   string
	index  string
	fields map[string]string
}

// ReadDataProducts reads the feedback file at path. Identifiers of the
// returned dataproducts are minted from identifierSource.
func ReadDataProducts(path, identifierSource string, minter sip.Minter) ([]sip.DataProduct, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feedback: %w", err)
	}
	products, err := Parse(data, identifierSource, minter)
	if err != nil {
		return nil, fmt.Errorf("feedback %s: %w", path, err)
	}
	return products, nil
}

// Parse reads dataproducts from feedback text, in the order their records
// first appear.
func Parse(data []byte, identifierSource string, minter sip.Minter) ([]sip.DataProduct, error) {
	prefix, err := recordPrefix(data)
	if err != nil {
		return nil, err
	}

	ps, err := parset.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedFeedback, err)
	}

	records := groupRecords(ps, prefix)
	logger.Debug("feedback: prefix %q, %d records", prefix, len(records))

	var products []sip.DataProduct
	for _, rec := range records {
		var (
			dp  sip.DataProduct
			err error
		)
		switch rec.kind {
		case KindCorrelated:
			dp, err = correlated(rec)
		case KindInstrumentModel:
			dp, err = instrumentModel(rec)
		default:
			logger.Warn("feedback: skipping unsupported dataproduct Output_%s_[%s]", rec.kind, rec.index)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("dataproduct Output_%s_[%s]: %w", rec.kind, rec.index, err)
		}
		dp.SetIdentifier(named(minter.Mint(identifierSource), dp.FileName))
		dp.SetProcessIdentifier(minter.Mint(identifierSource))
		products = append(products, dp)
	}
	return products, nil
}

func recordPrefix(data []byte) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	if !scanner.Scan() {
		return "", fmt.Errorf("%w: file is empty", domain.ErrMalformedFeedback)
	}
	first := strings.TrimSpace(scanner.Text())
	if first == "" {
		return "", fmt.Errorf("%w: first line is empty", domain.ErrMalformedFeedback)
	}
	prefix, _, _ := strings.Cut(first, ".")
	return prefix, nil
}

func groupRecords(ps *parset.Parset, prefix string) []*record {
	var ordered []*record
	byID := make(map[string]*record)
	for _, key := range ps.Keys() {
		if !strings.HasPrefix(key, prefix+".") {
			continue
		}
		m := recordKey.FindStringSubmatch(strings.TrimPrefix(key, prefix+"."))
		if m == nil {
			continue
		}
		id := m[1] + "/" + m[2]
		rec, ok := byID[id]
		if !ok {
			rec = &record{kind: m[1], index: m[2], fields: make(map[string]string)}
			byID[id] = rec
			ordered = append(ordered, rec)
		}
		value, _ := ps.Get(key)
		rec.fields[m[3]] = value
	}
	return ordered
}

func named(id sip.Identifier, name string) sip.Identifier {
	id.Name = name
	return id
}

// common fills the fields every dataproduct kind carries.
func common(rec *record, dp *sip.DataProduct) error {
	var err error
	if dp.FileName, err = rec.required("filename"); err != nil {
		return err
	}
	size, err := rec.required("size")
	if err != nil {
		return err
	}
	if dp.Size, err = strconv.ParseInt(size, 10, 64); err != nil {
		return fmt.Errorf("%w: size %q is not an integer", domain.ErrMalformedFeedback, size)
	}
	dp.FileFormat = rec.fields["fileFormat"]
	dp.StorageWriter = rec.fields["storageWriter"]
	dp.StorageWriterVersion = rec.fields["storageWriterVersion"]
	if v := rec.fields["checksum_md5"]; v != "" {
		dp.Checksums = append(dp.Checksums, sip.Checksum{Algorithm: sip.ChecksumMD5, Value: v})
	}
	if v := rec.fields["checksum_adler32"]; v != "" {
		dp.Checksums = append(dp.Checksums, sip.Checksum{Algorithm: sip.ChecksumAdler32, Value: v})
	}
	return nil
}

func instrumentModel(rec *record) (sip.DataProduct, error) {
	dp := sip.DataProduct{
		Type:            sip.TypeInstrumentModelDataProduct,
		DataProductType: sip.DataProductTypeInstrumentModel,
	}
	if err := common(rec, &dp); err != nil {
		return sip.DataProduct{}, err
	}
	return dp, nil
}

func correlated(rec *record) (sip.DataProduct, error) {
	dp := sip.DataProduct{
		Type:            sip.TypeCorrelatedDataProduct,
		DataProductType: sip.DataProductTypeCorrelator,
	}
	if err := common(rec, &dp); err != nil {
		return sip.DataProduct{}, err
	}

	stationSubband, err := rec.optionalInt("stationSubband")
	if err != nil {
		return sip.DataProduct{}, err
	}
	subband, err := rec.optionalInt("subband")
	if err != nil {
		return sip.DataProduct{}, err
	}
	if subband == nil {
		subband = stationSubband
	}
	dp.Subband = subband
	dp.StationSubband = stationSubband

	if start := rec.fields["startTime"]; start != "" {
		dp.StartTime = strings.Replace(start, " ", "T", 1)
	}
	if d := rec.fields["duration"]; d != "" {
		seconds, err := strconv.ParseFloat(d, 64)
		if err != nil {
			return sip.DataProduct{}, fmt.Errorf("%w: duration %q is not a number", domain.ErrMalformedFeedback, d)
		}
		dp.Duration = "PT" + strconv.FormatFloat(seconds, 'f', -1, 64) + "S"
	}

	interval, err := rec.requiredFloat("integrationInterval")
	if err != nil {
		return sip.DataProduct{}, err
	}
	dp.IntegrationInterval = &sip.Time{Units: units.Seconds, Value: interval}

	central, err := rec.optionalFloat("centralFrequency")
	if err != nil {
		return sip.DataProduct{}, err
	}
	if central != nil {
		dp.CentralFrequency = &sip.Frequency{Units: units.Hz, Value: *central}
	}

	width, err := rec.requiredFloat("channelWidth")
	if err != nil {
		return sip.DataProduct{}, err
	}
	dp.ChannelWidth = &sip.Frequency{Units: units.Hz, Value: width}

	if dp.ChannelsPerSubband, err = rec.optionalInt("channelsPerSubband"); err != nil {
		return sip.DataProduct{}, err
	}
	return dp, nil
}

func (r *record) required(field string) (string, error) {
	v := r.fields[field]
	if v == "" {
		return "", fmt.Errorf("%w: missing %s", domain.ErrMalformedFeedback, field)
	}
	return v, nil
}

func (r *record) requiredFloat(field string) (float64, error) {
	v, err := r.required(field)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", domain.ErrMalformedFeedback, field, v)
	}
	return f, nil
}

func (r *record) optionalFloat(field string) (*float64, error) {
	if r.fields[field] == "" {
		return nil, nil
	}
	f, err := r.requiredFloat(field)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *record) optionalInt(field string) (*int, error) {
	v := r.fields[field]
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q is not an integer", domain.ErrMalformedFeedback, field, v)
	}
	return &n, nil
}
