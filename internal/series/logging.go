package series

import (
	"context"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"ercot-lmp-viewer/internal/model"
)

// loggingMiddleware wraps Service and logs one line per query.
type loggingMiddleware struct {
	logger log.Logger
	svc    Service
}

// NewLoggingMiddleware logs successful queries at debug and failures at error level.
func NewLoggingMiddleware(logger log.Logger, svc Service) Service {
	return &loggingMiddleware{
		logger: logger,
		svc:    svc,
	}
}

func (s *loggingMiddleware) BuildSeries(ctx context.Context, q Query) (table *model.ResultTable, err error) {
	defer func(begin time.Time) {
		node, rows := q.Node, 0
		if table != nil {
			node, rows = table.Node, table.Len()
		}
		_ = s.wrap(err).Log(
			"method", "BuildSeries",
			"node", node,
			"market", q.Selection,
			"start", q.Start.Format(model.DateLayout),
			"end", q.End.Format(model.DateLayout),
			"rows", rows,
			"err", err,
			"elapsed", time.Since(begin),
		)
	}(time.Now())
	return s.svc.BuildSeries(ctx, q)
}

func (s *loggingMiddleware) wrap(err error) log.Logger {
	lvl := level.Debug
	if err != nil {
		lvl = level.Error
	}
	return lvl(s.logger)
}
