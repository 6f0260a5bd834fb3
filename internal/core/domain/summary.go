package domain

// SIPSummary is a flat description of a SIP document.
type SIPSummary struct {
	Path                string   `json:"path"`
	ProjectCode         string   `json:"project_code"`
	PrimaryInvestigator string   `json:"primary_investigator"`
	DataProductType     string   `json:"dataproduct_type"`
	DataProductID       string   `json:"dataproduct_id"`
	FileName            string   `json:"file_name"`
	Observations        []string `json:"observations"`
	PipelineRuns        []string `json:"pipeline_runs"`
	RelatedDataProducts []string `json:"related_dataproducts"`
	Parsets             int      `json:"parsets"`
	// Problems lists structural problems found by validation.
	Problems string `json:"problems,omitempty"`
}

// Valid reports whether validation found no problems.
func (s SIPSummary) Valid() bool {
	return s.Problems == ""
}
