package domain

// SearchDebug reports how a query resolved, for frontend troubleshooting.
type SearchDebug struct {
	Term     string  `json:"term"`
	SQLLike  string  `json:"sql_like"`
	IDsFound int     `json:"ids_found"`
	IDsList  []int64 `json:"ids_list"`
	Skipped  int     `json:"skipped"`
}

// SearchResult is the envelope of a search or category browse response.
type SearchResult struct {
	Timestamp  string           `json:"timestamp"`
	Count      int              `json:"count"`
	TotalPages int              `json:"total_pages"`
	Page       int              `json:"page"`
	Products   []ProductSummary `json:"products"`
	Message    string           `json:"message,omitempty"`
	Debug      *SearchDebug     `json:"debug,omitempty"`
}
