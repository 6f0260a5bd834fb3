package sip

import "encoding/xml"

func xmlName(local string) xml.Name { return xml.Name{Local: local} }

func xmlAttr(value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Space: XSINamespace, Local: "type"}, Value: value}
}
