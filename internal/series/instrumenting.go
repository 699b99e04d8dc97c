package series

import (
	"context"
	"strconv"
	"time"

	"github.com/go-kit/kit/metrics"

	"ercot-lmp-viewer/internal/model"
)

// Labels used by the instrumenting middleware, in With() order.
var MetricLabels = []string{"method", "market", "error"}

// instrumentingMiddleware wraps Service and records request metrics.
type instrumentingMiddleware struct {
	reqCount    metrics.Counter
	reqDuration metrics.Histogram
	svc         Service
}

// NewInstrumentingMiddleware counts queries and observes their latency in seconds.
func NewInstrumentingMiddleware(reqCount metrics.Counter, reqDuration metrics.Histogram, svc Service) Service {
	return &instrumentingMiddleware{
		reqCount:    reqCount,
		reqDuration: reqDuration,
		svc:         svc,
	}
}

func (s *instrumentingMiddleware) BuildSeries(ctx context.Context, q Query) (table *model.ResultTable, err error) {
	defer func(begin time.Time) {
		s.recordMetrics("BuildSeries", string(q.Selection), begin, err)
	}(time.Now())
	return s.svc.BuildSeries(ctx, q)
}

func (s *instrumentingMiddleware) recordMetrics(method, market string, startTime time.Time, err error) {
	labels := []string{
		"method", method,
		"market", market,
		"error", strconv.FormatBool(err != nil),
	}
	s.reqCount.With(labels...).Add(1)
	s.reqDuration.With(labels...).Observe(time.Since(startTime).Seconds())
}
