package entity

// ExtractionError records a unit that did not yield a ride. FileName carries
// the unit label ("receipt.pdf (page 2)" for PDF pages) so the list is
// self-describing.
type ExtractionError struct {
	FileName string `json:"file_name"`
	Error    string `json:"error"`
}

// ExtractionSummary aggregates one batch call.
type ExtractionSummary struct {
	TotalFiles            int     `json:"total_files"`
	SuccessfulExtractions int     `json:"successful_extractions"`
	FailedExtractions     int     `json:"failed_extractions"`
	AverageConfidence     float64 `json:"average_confidence"`
}

// ExtractResponse is the single-use result of one batch extraction call.
type ExtractResponse struct {
	Success bool              `json:"success"`
	Results []*ExtractedRide  `json:"results"`
	Errors  []ExtractionError `json:"errors"`
	Summary ExtractionSummary `json:"summary"`
}

// ImportedRide references a ride accepted by the import step.
type ImportedRide struct {
	RideID     string `json:"ride_id"`
	ExternalID string `json:"external_id"`
}

// SkippedRide records a ride the import step refused, by position in the
// submitted list.
type SkippedRide struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// ImportResult is the outcome of one import call.
type ImportResult struct {
	Success  bool           `json:"success"`
	Imported []ImportedRide `json:"imported"`
	Skipped  []SkippedRide  `json:"skipped"`
}
