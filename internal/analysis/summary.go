package analysis

import (
	"math"
	"sort"
	"time"

	"ercot-lmp-viewer/internal/model"
)

// Summary is the price panel shown next to a chart for one series.
// Prices are in $/MWh.
type Summary struct {
	Node   string
	Market model.Market

	Start time.Time
	End   time.Time

	Count int

	Min   float64
	Max   float64
	Mean  float64
	P05   float64
	P95   float64
	MinAt time.Time
	MaxAt time.Time

	// SpreadP95P05 is a robust measure of intraperiod volatility.
	SpreadP95P05 float64
}

// Summarize computes statistics for one series. An empty series gives a
// zero Summary with only Node and Market set.
func Summarize(s model.PriceSeries) Summary {
	out := Summary{Node: s.Node, Market: s.Market}
	if len(s.Points) == 0 {
		return out
	}
	out.Count = len(s.Points)
	out.Start = s.Points[0].Timestamp
	out.End = s.Points[len(s.Points)-1].Timestamp

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	vals := make([]float64, 0, len(s.Points))
	for _, p := range s.Points {
		v := p.Price
		vals = append(vals, v)
		sum += v
		if v < minv {
			minv = v
			out.MinAt = p.Timestamp
		}
		if v > maxv {
			maxv = v
			out.MaxAt = p.Timestamp
		}
	}
	sort.Float64s(vals)
	out.Min = minv
	out.Max = maxv
	out.Mean = sum / float64(len(vals))
	out.P05 = percentileSorted(vals, 0.05)
	out.P95 = percentileSorted(vals, 0.95)
	out.SpreadP95P05 = out.P95 - out.P05
	return out
}

// SummarizeTable summarizes each series of t, in table order.
func SummarizeTable(t *model.ResultTable) []Summary {
	out := make([]Summary, 0, len(t.Series))
	for _, s := range t.Series {
		out = append(out, Summarize(s))
	}
	return out
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
