package chart

import (
	"errors"
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"ercot-lmp-viewer/internal/model"
)

const (
	DefaultWidth  = 1200
	DefaultHeight = 500

	minSize = 200
	maxSize = 4000
)

var marketColors = map[model.Market]drawing.Color{
	model.MarketDAM: drawing.ColorFromHex("1f77b4"),
	model.MarketRTM: drawing.ColorFromHex("ff7f0e"),
}

// Options controls the rendered image size in pixels. Zero values use the
// defaults; other values are clamped to [200, 4000].
type Options struct {
	Width  int
	Height int
}

func (o Options) size() (int, int) {
	return clampSize(o.Width, DefaultWidth), clampSize(o.Height, DefaultHeight)
}

func clampSize(v, def int) int {
	switch {
	case v == 0:
		return def
	case v < minSize:
		return minSize
	case v > maxSize:
		return maxSize
	default:
		return v
	}
}

// Title is "{market} LMP for {node}".
func Title(t *model.ResultTable) string {
	return fmt.Sprintf("%s LMP for %s", t.Selection, t.Node)
}

// RenderPNG draws one line per market on the shared hour axis.
func RenderPNG(w io.Writer, t *model.ResultTable, opts Options) error {
	if t == nil || len(t.Series) == 0 {
		return errors.New("nothing to chart")
	}

	series := make([]gochart.Series, 0, len(t.Series))
	for _, s := range t.Series {
		if s.Len() < 2 {
			return fmt.Errorf("%s series needs at least 2 points, got %d", s.Market, s.Len())
		}
		col, ok := marketColors[s.Market]
		if !ok {
			col = drawing.ColorBlack
		}
		series = append(series, gochart.TimeSeries{
			Name:    string(s.Market),
			XValues: s.Timestamps(),
			YValues: s.Prices(),
			Style: gochart.Style{
				StrokeColor: col,
				StrokeWidth: 2,
			},
		})
	}

	width, height := opts.size()
	loc := t.Series[0].Points[0].Timestamp.Location()
	ch := gochart.Chart{
		Title:      Title(t),
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name: "Hour (" + loc.String() + ")",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return gochart.TimeFromFloat64(f).In(loc).Format("01-02 15:04")
				}
				return ""
			},
		},
		YAxis: gochart.YAxis{
			Name: "$/MWh",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	return ch.Render(gochart.PNG, w)
}
