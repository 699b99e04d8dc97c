package data

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"ercot-lmp-viewer/internal/model"
)

// ErrNoData is returned when an export has no interval for a requested hour.
var ErrNoData = errors.New("no data for hour")

type hourKey struct {
	node   string
	market model.Market
	hour   int64 // Unix hour
}

type hourAgg struct {
	sum   float64
	count int
}

// FileSource replays LMP exports already on disk. Sub-hourly intervals
// (RTM 15-minute) are averaged into the hour they start in. Rows whose
// market cannot be classified as DAM or RTM are skipped.
type FileSource struct {
	prices map[hourKey]float64
	nodes  map[string]bool
}

// LoadFileSource reads GridStatus JSON exports. A directory path loads every
// .json file directly inside it.
func LoadFileSource(paths ...string) (*FileSource, error) {
	if len(paths) == 0 {
		return nil, errors.New("file source needs at least one path")
	}
	var resps []*model.GridStatusLMPResponse
	for _, p := range paths {
		files, err := expandJSONPaths(p)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			resp, err := LoadGridStatusJSON(f)
			if err != nil {
				return nil, err
			}
			resps = append(resps, resp)
		}
	}
	if len(resps) == 0 {
		return nil, fmt.Errorf("no .json exports found in %s", strings.Join(paths, ", "))
	}
	return NewFileSource(resps...), nil
}

func expandJSONPaths(p string) ([]string, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{p}, nil
	}
	entries, err := os.ReadDir(p)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		out = append(out, filepath.Join(p, e.Name()))
	}
	return out, nil
}

// NewFileSource indexes already-decoded exports.
func NewFileSource(resps ...*model.GridStatusLMPResponse) *FileSource {
	agg := map[hourKey]*hourAgg{}
	nodes := map[string]bool{}
	for _, resp := range resps {
		if resp == nil {
			continue
		}
		for node, intervals := range GroupByLocation(resp) {
			for _, it := range intervals {
				m, ok := it.SettlementMarket()
				if !ok {
					continue
				}
				k := hourKey{node: node, market: m, hour: it.Start().Unix() / 3600}
				a := agg[k]
				if a == nil {
					a = &hourAgg{}
					agg[k] = a
				}
				a.sum += it.LMP
				a.count++
				nodes[node] = true
			}
		}
	}

	prices := make(map[hourKey]float64, len(agg))
	for k, a := range agg {
		prices[k] = a.sum / float64(a.count)
	}
	return &FileSource{prices: prices, nodes: nodes}
}

func (s *FileSource) Name() string { return "file" }

// Nodes lists the locations present in the loaded exports.
func (s *FileSource) Nodes() []string {
	out := make([]string, 0, len(s.nodes))
	for n := range s.nodes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (s *FileSource) Prices(ctx context.Context, node string, market model.Market, hours []time.Time) ([]float64, error) {
	out := make([]float64, len(hours))
	for i, ts := range hours {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, ok := s.prices[hourKey{node: node, market: market, hour: ts.Unix() / 3600}]
		if !ok {
			return nil, fmt.Errorf("%w: %s %s at %s", ErrNoData, node, market, ts.Format(time.RFC3339))
		}
		out[i] = p
	}
	return out, nil
}
