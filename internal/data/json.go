package data

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"ercot-lmp-viewer/internal/model"
)

// LoadGridStatusJSON reads an LMP export saved in GridStatus JSON shape.
func LoadGridStatusJSON(path string) (*model.GridStatusLMPResponse, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var resp model.GridStatusLMPResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &resp, nil
}

// GroupByLocation splits a response into location-keyed slices. Location
// names are trimmed.
func GroupByLocation(resp *model.GridStatusLMPResponse) map[string][]model.LMPInterval {
	out := map[string][]model.LMPInterval{}
	if resp == nil {
		return out
	}
	for _, it := range resp.Data {
		loc := strings.TrimSpace(it.Location)
		out[loc] = append(out[loc], it)
	}
	return out
}
