package sip

import "encoding/xml"

// Relation links a process to a group of related processes.
type Relation struct {
	RelationType string     `xml:"relationType"`
	Identifier   Identifier `xml:"identifier"`
	Name         string     `xml:"name,omitempty"`
}

// Process holds the fields shared by observations and pipeline runs.
type Process struct {
	ProcessIdentifier   Identifier  `xml:"processIdentifier"`
	ObservationID       Identifier  `xml:"observationId"`
	ParsetIdentifier    *Identifier `xml:"parsetIdentifier,omitempty"`
	StrategyName        string      `xml:"strategyName"`
	StrategyDescription string      `xml:"strategyDescription"`
	StartTime           string      `xml:"startTime"`
	Duration            string      `xml:"duration"`
	Relations           []Relation  `xml:"relation"`
}

// SourceData lists the dataproducts a pipeline run consumed.
type SourceData struct {
	DataProductIdentifiers []Identifier `xml:"dataProductIdentifier"`
}

// PipelineRun describes one execution of a processing pipeline.
type PipelineRun struct {
	Type XSIType `xml:"type,attr,omitempty"`
	Process
	PipelineName    string     `xml:"pipelineName"`
	PipelineVersion string     `xml:"pipelineVersion"`
	SourceData      SourceData `xml:"sourceData"`

	SkyModelDatabase               string `xml:"skyModelDatabase,omitempty"`
	NumberOfInstrumentModels       *int   `xml:"numberOfInstrumentModels,omitempty"`
	NumberOfCorrelatedDataProducts *int   `xml:"numberOfCorrelatedDataProducts,omitempty"`
	FrequencyIntegrationStep       *int   `xml:"frequencyIntegrationStep,omitempty"`
	TimeIntegrationStep            *int   `xml:"timeIntegrationStep,omitempty"`
	FlagAutoCorrelations           *bool  `xml:"flagAutoCorrelations,omitempty"`
	Demixing                       *bool  `xml:"demixing,omitempty"`

	raw *verbatim
}

func (p *PipelineRun) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	type typed PipelineRun
	var w struct {
		typed
		Inner string `xml:",innerxml"`
	}
	if err := dec.DecodeElement(&w, &start); err != nil {
		return err
	}
	*p = PipelineRun(w.typed)
	p.raw = &verbatim{attrs: start.Attr, inner: w.Inner}
	return nil
}

func (p PipelineRun) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if p.raw != nil {
		return encodeVerbatim(e, start.Name, p.raw)
	}
	type typed PipelineRun
	return e.EncodeElement(typed(p), start)
}

// Observation is a telescope observation. Only the fields needed to track
// history are modelled; the rest of a decoded observation is kept verbatim.
type Observation struct {
	Type XSIType `xml:"type,attr,omitempty"`
	Process
	ObservingMode string `xml:"observingMode"`

	raw *verbatim
}

func (o *Observation) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	type typed Observation
	var w struct {
		typed
		Inner string `xml:",innerxml"`
	}
	if err := dec.DecodeElement(&w, &start); err != nil {
		return err
	}
	*o = Observation(w.typed)
	o.raw = &verbatim{attrs: start.Attr, inner: w.Inner}
	return nil
}

func (o Observation) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if o.raw != nil {
		return encodeVerbatim(e, start.Name, o.raw)
	}
	type typed Observation
	return e.EncodeElement(typed(o), start)
}

// UnspecifiedProcess is a process of no particular schema subtype.
type UnspecifiedProcess struct {
	Process
	ObservingMode string `xml:"observingMode"`

	raw *verbatim
}

func (u *UnspecifiedProcess) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	type typed UnspecifiedProcess
	var w struct {
		typed
		Inner string `xml:",innerxml"`
	}
	if err := dec.DecodeElement(&w, &start); err != nil {
		return err
	}
	*u = UnspecifiedProcess(w.typed)
	u.raw = &verbatim{attrs: start.Attr, inner: w.Inner}
	return nil
}

func (u UnspecifiedProcess) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if u.raw != nil {
		return encodeVerbatim(e, start.Name, u.raw)
	}
	type typed UnspecifiedProcess
	return e.EncodeElement(typed(u), start)
}
