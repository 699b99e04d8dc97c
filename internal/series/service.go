package series

import (
	"context"
	"time"

	"ercot-lmp-viewer/internal/model"
)

// Query is a user's selection: node, markets and an inclusive date range.
// Only the calendar date of Start and End is used.
type Query struct {
	Node      string
	Selection model.MarketSelection
	Start     time.Time
	End       time.Time
}

// Service builds result tables. Builder is the core implementation; the
// logging and instrumenting middlewares wrap it.
type Service interface {
	BuildSeries(ctx context.Context, q Query) (*model.ResultTable, error)
}
