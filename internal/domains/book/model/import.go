package model

// ImportRowError reports why one CSV row was skipped. Row numbers are
// 1-based file positions including the header row.
type ImportRowError struct {
	Row      int      `json:"row"`
	Messages []string `json:"messages"`
}

// ImportResult summarizes a CSV import. Partial success is the normal
// outcome: valid rows are committed, invalid rows reported and skipped.
type ImportResult struct {
	TotalRows int              `json:"total_rows"`
	Imported  int              `json:"imported"`
	Failed    int              `json:"failed"`
	Errors    []ImportRowError `json:"errors,omitempty"`
}
