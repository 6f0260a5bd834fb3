package sip

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/tikk3r/prefactor-eor/internal/core/domain"
)

// GeneratorVersion is written to sipGeneratorVersion of new documents.
const GeneratorVersion = "prefactor-sipgen 1.0"

// DefaultTelescope is the telescope of new projects.
const DefaultTelescope = "LOFAR"

// Project is the observing project a dataproduct belongs to.
type Project struct {
	ProjectCode         string   `xml:"projectCode"`
	PrimaryInvestigator string   `xml:"primaryInvestigator"`
	ContactAuthor       string   `xml:"contactAuthor"`
	Telescope           string   `xml:"telescope"`
	ProjectDescription  string   `xml:"projectDescription"`
	CoInvestigators     []string `xml:"coInvestigator"`
}

// Parset is a parameter set embedded in a SIP and referenced from a
// process by its identifier.
type Parset struct {
	Identifier Identifier `xml:"identifier"`
	Contents   string     `xml:"contents"`
}

// Document is a SIP: one dataproduct plus the processes and related
// dataproducts describing its history.
type Document struct {
	XMLName             xml.Name             `xml:"http://www.astron.nl/SIP-Lofar ltaSip"`
	SIPGeneratorVersion string               `xml:"sipGeneratorVersion,omitempty"`
	Project             Project              `xml:"project"`
	DataProduct         DataProduct          `xml:"dataProduct"`
	Observations        []Observation        `xml:"observation"`
	PipelineRuns        []PipelineRun        `xml:"pipelineRun"`
	UnspecifiedProcs    []UnspecifiedProcess `xml:"unspecifiedProcess"`
	RelatedDataProducts []DataProduct        `xml:"relatedDataProduct"`
	Parsets             []Parset             `xml:"parset"`
}

// New creates a document for dataproduct within project.
func New(project Project, dataProduct DataProduct) *Document {
	if project.Telescope == "" {
		project.Telescope = DefaultTelescope
	}
	return &Document{
		SIPGeneratorVersion: GeneratorVersion,
		Project:             project,
		DataProduct:         dataProduct,
	}
}

// Read decodes a document.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedSIP, err)
	}
	return &doc, nil
}

// Parse decodes a document from data.
func Parse(data []byte) (*Document, error) {
	return Read(bytes.NewReader(data))
}

// MarshalXML writes the root element with the sip and xsi prefixes
// declared, which the xsi:type values of the children rely on.
func (d *Document) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	type wire Document
	w := wire(*d)
	w.XMLName = xml.Name{}
	start := xml.StartElement{
		Name: xml.Name{Local: "sip:ltaSip"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:sip"}, Value: Namespace},
			{Name: xml.Name{Local: "xmlns:xsi"}, Value: XSINamespace},
		},
	}
	return e.EncodeElement(w, start)
}

// Write encodes the document with an XML declaration.
func (d *Document) Write(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding SIP: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Bytes returns the encoded document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataProductIdentifier returns the identifier of the primary dataproduct.
func (d *Document) DataProductIdentifier() Identifier {
	return d.DataProduct.DataProductIdentifier
}

// SubArrayPointingIdentifier returns the sub-array pointing of the primary
// dataproduct. Only correlated dataproducts carry one.
func (d *Document) SubArrayPointingIdentifier() (Identifier, error) {
	if d.DataProduct.SubArrayPointingIdentifier == nil {
		return Identifier{}, fmt.Errorf("%w: dataproduct %s has no subArrayPointingIdentifier",
			domain.ErrMalformedSIP, d.DataProduct.DataProductIdentifier)
	}
	return *d.DataProduct.SubArrayPointingIdentifier, nil
}

// AddRelatedDataProductWithHistory adds the primary dataproduct of other
// as a related dataproduct, together with the observations, pipeline runs,
// unspecified processes, related dataproducts and parsets recorded in
// other. Items already present, matched by identifier, are not added
// again. It returns false if the primary dataproduct of other was already
// present; its history is merged regardless.
func (d *Document) AddRelatedDataProductWithHistory(other *Document) bool {
	dataProducts := make(map[string]bool, len(d.RelatedDataProducts))
	for _, dp := range d.RelatedDataProducts {
		dataProducts[dp.DataProductIdentifier.Key()] = true
	}

	added := false
	if key := other.DataProduct.DataProductIdentifier.Key(); !dataProducts[key] {
		d.RelatedDataProducts = append(d.RelatedDataProducts, other.DataProduct)
		dataProducts[key] = true
		added = true
	}
	for _, dp := range other.RelatedDataProducts {
		if key := dp.DataProductIdentifier.Key(); !dataProducts[key] {
			d.RelatedDataProducts = append(d.RelatedDataProducts, dp)
			dataProducts[key] = true
		}
	}

	observations := make(map[string]bool, len(d.Observations))
	for _, o := range d.Observations {
		observations[observationKey(o)] = true
	}
	for _, o := range other.Observations {
		if key := observationKey(o); !observations[key] {
			d.Observations = append(d.Observations, o)
			observations[key] = true
		}
	}

	runs := make(map[string]bool, len(d.PipelineRuns))
	for _, p := range d.PipelineRuns {
		runs[p.ProcessIdentifier.Key()] = true
	}
	for _, p := range other.PipelineRuns {
		if key := p.ProcessIdentifier.Key(); !runs[key] {
			d.PipelineRuns = append(d.PipelineRuns, p)
			runs[key] = true
		}
	}

	procs := make(map[string]bool, len(d.UnspecifiedProcs))
	for _, p := range d.UnspecifiedProcs {
		procs[p.ProcessIdentifier.Key()] = true
	}
	for _, p := range other.UnspecifiedProcs {
		if key := p.ProcessIdentifier.Key(); !procs[key] {
			d.UnspecifiedProcs = append(d.UnspecifiedProcs, p)
			procs[key] = true
		}
	}

	parsets := make(map[string]bool, len(d.Parsets))
	for _, p := range d.Parsets {
		parsets[p.Identifier.Key()] = true
	}
	for _, p := range other.Parsets {
		if key := p.Identifier.Key(); !parsets[key] {
			d.Parsets = append(d.Parsets, p)
			parsets[key] = true
		}
	}

	return added
}

func observationKey(o Observation) string {
	return o.ObservationID.Key() + "|" + o.ProcessIdentifier.Key()
}

// AddPipelineRun appends a pipeline run. A run must name the dataproducts
// it consumed.
func (d *Document) AddPipelineRun(run PipelineRun) error {
	if len(run.SourceData.DataProductIdentifiers) == 0 {
		return fmt.Errorf("%w: pipeline run %s has no source data", domain.ErrInvalidInput, run.ProcessIdentifier)
	}
	d.PipelineRuns = append(d.PipelineRuns, run)
	return nil
}

// AddParset embeds a parset and returns its identifier.
func (d *Document) AddParset(id Identifier, contents string) Identifier {
	d.Parsets = append(d.Parsets, Parset{Identifier: id, Contents: contents})
	return id
}

// Validate checks the structural requirements the archive enforces on
// ingest.
func (d *Document) Validate() error {
	var problems []string
	if d.Project.ProjectCode == "" {
		problems = append(problems, "project code is empty")
	}
	dp := d.DataProduct
	if dp.DataProductIdentifier.Source == "" || dp.DataProductIdentifier.Identifier == "" {
		problems = append(problems, "dataproduct identifier is incomplete")
	}
	if dp.FileName == "" {
		problems = append(problems, "dataproduct file name is empty")
	}
	if dp.ProcessIdentifier.IsZero() {
		problems = append(problems, "dataproduct has no process identifier")
	}
	for _, run := range d.PipelineRuns {
		if run.ProcessIdentifier.IsZero() {
			problems = append(problems, "pipeline run has no process identifier")
		}
		if len(run.SourceData.DataProductIdentifiers) == 0 {
			problems = append(problems, fmt.Sprintf("pipeline run %s has no source data", run.ProcessIdentifier))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrMalformedSIP, strings.Join(problems, "; "))
	}
	return nil
}
