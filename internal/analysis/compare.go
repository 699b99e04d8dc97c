package analysis

import (
	"errors"
	"math"
	"time"

	"ercot-lmp-viewer/internal/model"
)

// ErrAxisMismatch is returned when two series do not share a timestamp axis.
var ErrAxisMismatch = errors.New("series do not share a timestamp axis")

// MarketComparison describes the hourly RTM - DAM difference at one node.
type MarketComparison struct {
	Node  string
	Count int

	MeanDiff        float64
	MeanAbsDiff     float64
	MaxAbsDiff      float64
	MaxAbsDiffAt    time.Time
	HoursRTMAboveDA int
}

// CompareMarkets lines up a DAM and an RTM series hour by hour.
func CompareMarkets(dam, rtm model.PriceSeries) (MarketComparison, error) {
	if len(dam.Points) != len(rtm.Points) {
		return MarketComparison{}, ErrAxisMismatch
	}
	out := MarketComparison{Node: dam.Node, Count: len(dam.Points)}
	if out.Count == 0 {
		return out, nil
	}

	var sum, sumAbs float64
	for i := range dam.Points {
		d, r := dam.Points[i], rtm.Points[i]
		if !d.Timestamp.Equal(r.Timestamp) {
			return MarketComparison{}, ErrAxisMismatch
		}
		diff := r.Price - d.Price
		abs := math.Abs(diff)
		sum += diff
		sumAbs += abs
		if abs > out.MaxAbsDiff || i == 0 {
			out.MaxAbsDiff = abs
			out.MaxAbsDiffAt = d.Timestamp
		}
		if diff > 0 {
			out.HoursRTMAboveDA++
		}
	}
	out.MeanDiff = sum / float64(out.Count)
	out.MeanAbsDiff = sumAbs / float64(out.Count)
	return out, nil
}

// CompareTable compares the DAM and RTM series of t. ok is false unless
// both markets are present.
func CompareTable(t *model.ResultTable) (cmp MarketComparison, ok bool, err error) {
	dam, hasDAM := t.Lookup(model.MarketDAM)
	rtm, hasRTM := t.Lookup(model.MarketRTM)
	if !hasDAM || !hasRTM {
		return MarketComparison{}, false, nil
	}
	cmp, err = CompareMarkets(dam, rtm)
	if err != nil {
		return MarketComparison{}, false, err
	}
	return cmp, true, nil
}
