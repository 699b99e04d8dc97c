package models

// SeriesRequest is the query string of the series endpoints.
// Node and market are validated by the series builder, not by binding, so
// that a blank node or an empty selection maps to its own error code.
type SeriesRequest struct {
	Node      string `form:"node"`
	Market    string `form:"market"`                        // "DAM", "RTM", "Both" or "DAM,RTM"
	StartDate string `form:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   string `form:"end_date" binding:"required"`   // YYYY-MM-DD
}

// ChartRequest adds image dimensions to a SeriesRequest.
type ChartRequest struct {
	SeriesRequest
	Width  int `form:"width"`
	Height int `form:"height"`
}
