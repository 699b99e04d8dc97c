package model

import (
	"strings"
	"time"
)

// GridStatusLMPResponse is the JSON shape of an LMP export saved to disk
// (the GridStatus dataset download format).
//
// Example:
//
//	{
//	  "status_code": 200,
//	  "data": [ ... ]
//	}
type GridStatusLMPResponse struct {
	StatusCode int           `json:"status_code"`
	Data       []LMPInterval `json:"data"`
}

// LMPInterval is one interval row of an export. Timestamps are RFC3339
// strings with offsets.
type LMPInterval struct {
	IntervalStartLocal time.Time `json:"interval_start_local"`
	IntervalStartUTC   time.Time `json:"interval_start_utc"`
	IntervalEndLocal   time.Time `json:"interval_end_local"`
	IntervalEndUTC     time.Time `json:"interval_end_utc"`

	Market       string `json:"market"`
	Location     string `json:"location"`
	LocationType string `json:"location_type"`

	// Prices in $/MWh.
	LMP        float64 `json:"lmp"`
	Energy     float64 `json:"energy"`
	Congestion float64 `json:"congestion"`
	Loss       float64 `json:"loss"`
}

// Start prefers the UTC field because it is unambiguous.
func (i LMPInterval) Start() time.Time {
	if !i.IntervalStartUTC.IsZero() {
		return i.IntervalStartUTC
	}
	return i.IntervalStartLocal
}

// SettlementMarket classifies the export's market string, e.g.
// "DAY_AHEAD_HOURLY" or "REAL_TIME_15_MIN".
func (i LMPInterval) SettlementMarket() (Market, bool) {
	m := strings.ToUpper(i.Market)
	switch {
	case strings.Contains(m, "DAY_AHEAD"), strings.HasPrefix(m, "DAM"):
		return MarketDAM, true
	case strings.Contains(m, "REAL_TIME"), strings.HasPrefix(m, "RTM"):
		return MarketRTM, true
	default:
		return "", false
	}
}
