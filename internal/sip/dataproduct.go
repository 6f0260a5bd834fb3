package sip

import "encoding/xml"

// Dataproduct type labels.
const (
	DataProductTypeCorrelator      = "Correlator data"
	DataProductTypeInstrumentModel = "Instrument Model"
)

// Checksum of a dataproduct file.
type Checksum struct {
	Algorithm string `xml:"algorithm"`
	Value     string `xml:"value"`
}

// Checksum algorithms.
const (
	ChecksumMD5     = "MD5"
	ChecksumAdler32 = "Adler32"
)

// DataProduct is a file archived in the LTA. The correlated fields are only
// present for correlated (visibility) dataproducts.
//
// A DataProduct decoded from XML is written back exactly as it was read;
// changing its fields has no effect on the output. Use the Set methods on a
// constructed DataProduct.
type DataProduct struct {
	Type                  XSIType    `xml:"type,attr,omitempty"`
	DataProductType       string     `xml:"dataProductType"`
	DataProductIdentifier Identifier `xml:"dataProductIdentifier"`
	StorageTicket         string     `xml:"storageTicket,omitempty"`
	Size                  int64      `xml:"size"`
	Checksums             []Checksum `xml:"checksum"`
	FileName              string     `xml:"fileName"`
	FileFormat            string     `xml:"fileFormat"`
	StorageWriter         string     `xml:"storageWriter"`
	StorageWriterVersion  string     `xml:"storageWriterVersion"`
	ProcessIdentifier     Identifier `xml:"processIdentifier"`

	SubArrayPointingIdentifier *Identifier `xml:"subArrayPointingIdentifier,omitempty"`
	Subband                    *int        `xml:"subband,omitempty"`
	StationSubband             *int        `xml:"stationSubband,omitempty"`
	StartTime                  string      `xml:"startTime,omitempty"`
	Duration                   string      `xml:"duration,omitempty"`
	IntegrationInterval        *Time       `xml:"integrationInterval,omitempty"`
	CentralFrequency           *Frequency  `xml:"centralFrequency,omitempty"`
	ChannelWidth               *Frequency  `xml:"channelWidth,omitempty"`
	ChannelsPerSubband         *int        `xml:"channelsPerSubband,omitempty"`

	raw *verbatim
}

// Decoded reports whether the dataproduct was read from XML.
func (d DataProduct) Decoded() bool {
	return d.raw != nil
}

// SetIdentifier sets the dataproduct identifier.
func (d *DataProduct) SetIdentifier(id Identifier) {
	d.DataProductIdentifier = id
}

// SetProcessIdentifier sets the identifier of the process that produced
// the dataproduct.
func (d *DataProduct) SetProcessIdentifier(id Identifier) {
	d.ProcessIdentifier = id
}

// SetSubArrayPointingIdentifier sets the sub-array pointing the data was
// observed with.
func (d *DataProduct) SetSubArrayPointingIdentifier(id Identifier) {
	d.SubArrayPointingIdentifier = &id
}

func (d *DataProduct) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	type typed DataProduct
	var w struct {
		typed
		Inner string `xml:",innerxml"`
	}
	if err := dec.DecodeElement(&w, &start); err != nil {
		return err
	}
	*d = DataProduct(w.typed)
	d.raw = &verbatim{attrs: start.Attr, inner: w.Inner}
	return nil
}

func (d DataProduct) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if d.raw != nil {
		return encodeVerbatim(e, start.Name, d.raw)
	}
	type typed DataProduct
	return e.EncodeElement(typed(d), start)
}
