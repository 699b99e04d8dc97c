package models

import "time"

// SeriesResponse is the JSON form of a result table.
type SeriesResponse struct {
	Node       string            `json:"node"`
	Market     string            `json:"market"`
	StartDate  string            `json:"start_date"`
	EndDate    string            `json:"end_date"`
	Timezone   string            `json:"timezone"`
	TotalRows  int               `json:"total_rows"`
	Series     []Series          `json:"series"`
	Comparison *MarketComparison `json:"comparison,omitempty"` // only when both markets are selected
}

// Series is one market's hourly prices plus its summary panel.
type Series struct {
	Market  string        `json:"market"`
	Node    string        `json:"node"`
	Points  []Point       `json:"points"`
	Summary SeriesSummary `json:"summary"`
}

// Point is one hourly price in $/MWh.
type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}

// SeriesSummary contains price statistics for one series.
type SeriesSummary struct {
	Count        int       `json:"count"`
	Min          float64   `json:"min"`
	Max          float64   `json:"max"`
	Mean         float64   `json:"mean"`
	P05          float64   `json:"p05"`
	P95          float64   `json:"p95"`
	SpreadP95P05 float64   `json:"spread_p95_p05"`
	MinAt        time.Time `json:"min_at"`
	MaxAt        time.Time `json:"max_at"`
}

// MarketComparison is the hourly RTM - DAM difference.
type MarketComparison struct {
	Count           int       `json:"count"`
	MeanDiff        float64   `json:"mean_diff"`
	MeanAbsDiff     float64   `json:"mean_abs_diff"`
	MaxAbsDiff      float64   `json:"max_abs_diff"`
	MaxAbsDiffAt    time.Time `json:"max_abs_diff_at"`
	HoursRTMAboveDA int       `json:"hours_rtm_above_dam"`
}

// MarketInfo describes a market selection option.
type MarketInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NodeInfo represents a node preset.
type NodeInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
