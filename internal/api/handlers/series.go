package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"ercot-lmp-viewer/internal/analysis"
	"ercot-lmp-viewer/internal/api/models"
	"ercot-lmp-viewer/internal/chart"
	"ercot-lmp-viewer/internal/export"
	"ercot-lmp-viewer/internal/model"
	"ercot-lmp-viewer/internal/series"

	"github.com/gin-gonic/gin"
)

// SeriesHandler serves result tables as JSON, CSV and PNG.
type SeriesHandler struct {
	svc          series.Service
	maxRangeDays int
}

// NewSeriesHandler creates a series handler. maxRangeDays caps the accepted
// range; 0 means no cap.
func NewSeriesHandler(svc series.Service, maxRangeDays int) *SeriesHandler {
	return &SeriesHandler{svc: svc, maxRangeDays: maxRangeDays}
}

// GetSeries handles GET /api/v1/series
func (h *SeriesHandler) GetSeries(c *gin.Context) {
	table, ok := h.build(c)
	if !ok {
		return
	}
	resp, err := buildResponse(table)
	if err != nil {
		abortError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportCSV handles GET /api/v1/series/export
func (h *SeriesHandler) ExportCSV(c *gin.Context) {
	table, ok := h.build(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, table); err != nil {
		abortError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(table)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// GetChart handles GET /api/v1/series/chart
func (h *SeriesHandler) GetChart(c *gin.Context) {
	var req models.ChartRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if req.Width < 0 || req.Height < 0 {
		abortError(c, http.StatusBadRequest, "INVALID_REQUEST", "width and height must be non-negative")
		return
	}

	table, ok := h.build(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := chart.RenderPNG(&buf, table, chart.Options{Width: req.Width, Height: req.Height}); err != nil {
		abortError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// build binds the query, runs the series service and writes the error
// response itself when it returns false.
func (h *SeriesHandler) build(c *gin.Context) (*model.ResultTable, bool) {
	var req models.SeriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return nil, false
	}

	start, err := model.ParseDate(req.StartDate)
	if err != nil {
		abortError(c, http.StatusBadRequest, "INVALID_DATE", "start_date must be in YYYY-MM-DD format")
		return nil, false
	}
	end, err := model.ParseDate(req.EndDate)
	if err != nil {
		abortError(c, http.StatusBadRequest, "INVALID_DATE", "end_date must be in YYYY-MM-DD format")
		return nil, false
	}
	if h.maxRangeDays > 0 && !start.After(end) {
		if days := int(end.Sub(start).Hours()/24) + 1; days > h.maxRangeDays {
			abortErrorDetails(c, http.StatusBadRequest, "RANGE_TOO_LARGE",
				fmt.Sprintf("date range spans %d days, the limit is %d", days, h.maxRangeDays),
				map[string]interface{}{"days": days, "max_range_days": h.maxRangeDays})
			return nil, false
		}
	}

	// An unparseable market is left empty so the builder reports it with
	// the rest of the validation errors, after the node check.
	sel, selErr := model.ParseMarketSelection(req.Market)

	table, err := h.svc.BuildSeries(c.Request.Context(), series.Query{
		Node:      req.Node,
		Selection: sel,
		Start:     start,
		End:       end,
	})
	if err != nil {
		if errors.Is(err, model.ErrEmptySelection) && selErr != nil {
			err = selErr
		}
		writeBuildError(c, err)
		return nil, false
	}
	return table, true
}

func writeBuildError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidRange):
		abortError(c, http.StatusBadRequest, "INVALID_RANGE", err.Error())
	case errors.Is(err, model.ErrInvalidNode):
		abortError(c, http.StatusBadRequest, "INVALID_NODE", err.Error())
	case errors.Is(err, model.ErrEmptySelection):
		abortError(c, http.StatusBadRequest, "EMPTY_SELECTION", err.Error())
	default:
		abortError(c, http.StatusBadGateway, "DATA_SOURCE_ERROR", err.Error())
	}
}

func buildResponse(table *model.ResultTable) (models.SeriesResponse, error) {
	resp := models.SeriesResponse{
		Node:      table.Node,
		Market:    string(table.Selection),
		StartDate: table.Range.Start().Format(model.DateLayout),
		EndDate:   table.Range.End().Format(model.DateLayout),
		TotalRows: table.Len(),
		Series:    make([]models.Series, 0, len(table.Series)),
	}
	for _, s := range table.Series {
		if resp.Timezone == "" && s.Len() > 0 {
			resp.Timezone = s.Points[0].Timestamp.Location().String()
		}
		points := make([]models.Point, len(s.Points))
		for i, p := range s.Points {
			points[i] = models.Point{Timestamp: p.Timestamp, Price: p.Price}
		}
		sum := analysis.Summarize(s)
		resp.Series = append(resp.Series, models.Series{
			Market: string(s.Market),
			Node:   s.Node,
			Points: points,
			Summary: models.SeriesSummary{
				Count:        sum.Count,
				Min:          sum.Min,
				Max:          sum.Max,
				Mean:         sum.Mean,
				P05:          sum.P05,
				P95:          sum.P95,
				SpreadP95P05: sum.SpreadP95P05,
				MinAt:        sum.MinAt,
				MaxAt:        sum.MaxAt,
			},
		})
	}

	cmp, ok, err := analysis.CompareTable(table)
	if err != nil {
		return models.SeriesResponse{}, err
	}
	if ok {
		resp.Comparison = &models.MarketComparison{
			Count:           cmp.Count,
			MeanDiff:        cmp.MeanDiff,
			MeanAbsDiff:     cmp.MeanAbsDiff,
			MaxAbsDiff:      cmp.MaxAbsDiff,
			MaxAbsDiffAt:    cmp.MaxAbsDiffAt,
			HoursRTMAboveDA: cmp.HoursRTMAboveDA,
		}
	}
	return resp, nil
}

func abortError(c *gin.Context, status int, code, message string) {
	abortErrorDetails(c, status, code, message, nil)
}

func abortErrorDetails(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
