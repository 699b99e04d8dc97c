package series

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"ercot-lmp-viewer/internal/model"
)

// Builder turns a Query into a ResultTable. It keeps no state between calls.
type Builder struct {
	source Source
	loc    *time.Location
}

// NewBuilder returns a Builder reading prices from source. Hour axes are
// built in loc; a nil loc means the ERCOT standard-time reference zone.
func NewBuilder(source Source, loc *time.Location) *Builder {
	if loc == nil {
		loc = model.ReferenceZone(model.DefaultUTCOffsetHours)
	}
	return &Builder{source: source, loc: loc}
}

// Location is the zone hour axes are built in.
func (b *Builder) Location() *time.Location { return b.loc }

// BuildSeries validates q, then emits one hourly series per selected market
// covering 00:00 on q.Start through 23:00 on q.End. All series share the
// same timestamp axis.
func (b *Builder) BuildSeries(ctx context.Context, q Query) (*model.ResultTable, error) {
	node := strings.TrimSpace(q.Node)
	if node == "" {
		return nil, fmt.Errorf("%w: node identifier is empty", model.ErrInvalidNode)
	}
	if strings.IndexFunc(node, unicode.IsControl) >= 0 {
		return nil, fmt.Errorf("%w: node identifier %q contains control characters", model.ErrInvalidNode, node)
	}
	if err := q.Selection.Validate(); err != nil {
		return nil, err
	}
	rng, err := model.NewDateRange(q.Start, q.End)
	if err != nil {
		return nil, err
	}

	hours := rng.Hours(b.loc)
	table := &model.ResultTable{
		Node:      node,
		Range:     rng,
		Selection: q.Selection,
	}
	for _, m := range q.Selection.Markets() {
		prices, err := b.source.Prices(ctx, node, m, hours)
		if err != nil {
			return nil, fmt.Errorf("%s prices from %s source: %w", m, b.source.Name(), err)
		}
		if err := checkPrices(prices, len(hours)); err != nil {
			return nil, fmt.Errorf("%s prices from %s source: %w", m, b.source.Name(), err)
		}

		points := make([]model.PricePoint, len(hours))
		for i, ts := range hours {
			points[i] = model.PricePoint{
				Timestamp: ts,
				Node:      node,
				Market:    m,
				Price:     prices[i],
			}
		}
		table.Series = append(table.Series, model.PriceSeries{
			Node:   node,
			Market: m,
			Points: points,
		})
	}
	return table, nil
}

func checkPrices(prices []float64, want int) error {
	if len(prices) != want {
		return fmt.Errorf("%w: got %d prices for %d hours", ErrSourceShape, len(prices), want)
	}
	for i, p := range prices {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("%w: non-finite price at hour %d", ErrSourceShape, i)
		}
	}
	return nil
}
