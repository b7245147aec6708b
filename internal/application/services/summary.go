package services

// IngestionSummary reports the outcome of one ingestion run. Counters
// are per stored record, not per source row, since table rows can
// expand into several records.
type IngestionSummary struct {
	Source      string   `json:"source"`
	Created     int      `json:"created"`
	Updated     int      `json:"updated"`
	Skipped     int      `json:"skipped"`
	SkippedRows int      `json:"skipped_rows"`
	Errors      []string `json:"errors,omitempty"`
}

// ErrorsPreview returns at most n error messages for display.
func (s *IngestionSummary) ErrorsPreview(n int) []string {
	if n <= 0 || len(s.Errors) <= n {
		return s.Errors
	}
	return s.Errors[:n]
}

func (s *IngestionSummary) record(outcome Outcome) {
	switch outcome {
	case OutcomeCreated:
		s.Created++
	case OutcomeUpdated:
		s.Updated++
	case OutcomeSkipped:
		s.Skipped++
	}
}
