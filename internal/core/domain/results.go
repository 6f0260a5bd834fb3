package domain

// ResultsOutcome lists the SIP files created by a run, in creation order.
type ResultsOutcome struct {
	CreatedXMLFiles []string `json:"created_xml_files"`
}
