package sip

import (
	"encoding/xml"
	"strings"
)

// XML namespaces of a SIP document.
const (
	Namespace    = "http://www.astron.nl/SIP-Lofar"
	XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"
)

// XSIType is the schema subtype of an element, e.g. "CorrelatedDataProduct".
// It is stored without a namespace prefix and written as xsi:type="sip:<type>".
type XSIType string

// Schema subtypes used by the generator.
const (
	TypeCorrelatedDataProduct      XSIType = "CorrelatedDataProduct"
	TypeInstrumentModelDataProduct XSIType = "InstrumentModelDataProduct"
	TypeCalibrationPipeline        XSIType = "CalibrationPipeline"
)

// MarshalXMLAttr writes the prefixed xsi:type attribute.
func (t XSIType) MarshalXMLAttr(_ xml.Name) (xml.Attr, error) {
	if t == "" {
		return xml.Attr{}, nil
	}
	return xml.Attr{Name: xml.Name{Local: "xsi:type"}, Value: "sip:" + string(t)}, nil
}

// UnmarshalXMLAttr reads an xsi:type attribute, dropping whatever prefix
// the source document used.
func (t *XSIType) UnmarshalXMLAttr(attr xml.Attr) error {
	*t = XSIType(stripPrefix(attr.Value))
	return nil
}

func stripPrefix(v string) string {
	if i := strings.IndexByte(v, ':'); i >= 0 {
		return v[i+1:]
	}
	return v
}

// verbatim is an element as it was read: its attributes and raw content.
type verbatim struct {
	attrs []xml.Attr
	inner string
}

// encodeVerbatim writes a previously decoded element unchanged, with its
// namespaced attributes mapped onto the prefixes the document root declares.
func encodeVerbatim(e *xml.Encoder, name xml.Name, v *verbatim) error {
	out := struct {
		Attrs []xml.Attr `xml:",any,attr"`
		Inner string     `xml:",innerxml"`
	}{Inner: v.inner}

	for _, a := range v.attrs {
		switch {
		case a.Name.Space == XSINamespace && a.Name.Local == "type":
			out.Attrs = append(out.Attrs, xml.Attr{
				Name:  xml.Name{Local: "xsi:type"},
				Value: "sip:" + stripPrefix(a.Value),
			})
		case a.Name.Space == XSINamespace:
			out.Attrs = append(out.Attrs, xml.Attr{Name: xml.Name{Local: "xsi:" + a.Name.Local}, Value: a.Value})
		case a.Name.Space == "xmlns", a.Name.Space == "" && a.Name.Local == "xmlns":
			// Namespace declarations live on the root.
		default:
			out.Attrs = append(out.Attrs, xml.Attr{Name: xml.Name{Local: a.Name.Local}, Value: a.Value})
		}
	}
	return e.EncodeElement(out, xml.StartElement{Name: xml.Name{Local: name.Local}})
}
