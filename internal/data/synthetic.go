package data

import (
	"context"
	"hash/fnv"
	"math"
	"time"

	"ercot-lmp-viewer/internal/model"

	"github.com/shopspring/decimal"
)

// SyntheticSource is the placeholder price generator used until a real feed
// is configured. Prices depend only on (node, market, hour), so repeated and
// overlapping queries agree.
//
// Shape:
// - base curve 50 + 10*sin(h) $/MWh, h = hours since the Unix epoch
// - a per-node basis in [-5, +5) $/MWh
// - RTM adds hash-derived noise in [-6, +6) $/MWh on top of the DAM shape
// - rounded to cents
type SyntheticSource struct{}

func NewSyntheticSource() *SyntheticSource { return &SyntheticSource{} }

func (s *SyntheticSource) Name() string { return "synthetic" }

func (s *SyntheticSource) Prices(_ context.Context, node string, market model.Market, hours []time.Time) ([]float64, error) {
	basis := 10*unitHash(node) - 5
	out := make([]float64, len(hours))
	for i, ts := range hours {
		h := ts.Unix() / 3600
		p := 50 + 10*math.Sin(float64(h)) + basis
		if market == model.MarketRTM {
			p += 12*unitHash(node, string(market), ts.UTC().Format(time.RFC3339)) - 6
		}
		out[i] = decimal.NewFromFloat(p).Round(2).InexactFloat64()
	}
	return out, nil
}

// unitHash maps its inputs to [0, 1).
func unitHash(parts ...string) float64 {
	h := fnv.New64a()
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
		_, _ = h.Write([]byte{0})
	}
	return float64(h.Sum64()>>11) / float64(uint64(1)<<53)
}
