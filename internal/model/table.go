package model

import "time"

// PricePoint is one hourly price at one node in one market.
// Price is in $/MWh.
type PricePoint struct {
	Timestamp time.Time
	Node      string
	Market    Market
	Price     float64
}

// PriceSeries is an hourly series for a single node and market, strictly
// increasing by timestamp.
type PriceSeries struct {
	Node   string
	Market Market
	Points []PricePoint
}

func (s PriceSeries) Len() int { return len(s.Points) }

func (s PriceSeries) Timestamps() []time.Time {
	out := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Timestamp
	}
	return out
}

func (s PriceSeries) Prices() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Price
	}
	return out
}

// ResultTable is the answer to one query: one series per selected market,
// DAM before RTM, all on the same hour axis.
type ResultTable struct {
	Node      string
	Range     DateRange
	Selection MarketSelection
	Series    []PriceSeries
}

// Lookup returns the series for market m.
func (t *ResultTable) Lookup(m Market) (PriceSeries, bool) {
	for _, s := range t.Series {
		if s.Market == m {
			return s, true
		}
	}
	return PriceSeries{}, false
}

// Len is the total row count across all series.
func (t *ResultTable) Len() int {
	n := 0
	for _, s := range t.Series {
		n += s.Len()
	}
	return n
}

// Rows flattens the table ordered by market, then timestamp. This is the
// row order used for CSV export.
func (t *ResultTable) Rows() []PricePoint {
	out := make([]PricePoint, 0, t.Len())
	for _, s := range t.Series {
		out = append(out, s.Points...)
	}
	return out
}
