package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Node is a pricing point offered in the node picker.
type Node struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"` // "HUB", "LOAD_ZONE", "RESOURCE_NODE"
}

// NodeList is the on-disk presets file.
type NodeList struct {
	UpdatedAt string `json:"updated_at"` // ISO 8601 timestamp
	Nodes     []Node `json:"nodes"`
}

// DefaultNodes returns the ERCOT trading hubs and load zones. These are
// suggestions for the picker; any node identifier is accepted by the builder.
func DefaultNodes() *NodeList {
	return &NodeList{
		Nodes: []Node{
			{ID: "HB_HOUSTON", Name: "Houston Hub", Type: "HUB"},
			{ID: "HB_NORTH", Name: "North Hub", Type: "HUB"},
			{ID: "HB_SOUTH", Name: "South Hub", Type: "HUB"},
			{ID: "HB_WEST", Name: "West Hub", Type: "HUB"},
			{ID: "HB_PAN", Name: "Panhandle Hub", Type: "HUB"},
			{ID: "HB_BUSAVG", Name: "Bus Average Hub", Type: "HUB"},
			{ID: "HB_HUBAVG", Name: "Hub Average", Type: "HUB"},
			{ID: "LZ_HOUSTON", Name: "Houston Load Zone", Type: "LOAD_ZONE"},
			{ID: "LZ_NORTH", Name: "North Load Zone", Type: "LOAD_ZONE"},
			{ID: "LZ_SOUTH", Name: "South Load Zone", Type: "LOAD_ZONE"},
			{ID: "LZ_WEST", Name: "West Load Zone", Type: "LOAD_ZONE"},
			{ID: "LZ_AEN", Name: "Austin Energy Load Zone", Type: "LOAD_ZONE"},
			{ID: "LZ_CPS", Name: "CPS Energy Load Zone", Type: "LOAD_ZONE"},
			{ID: "LZ_LCRA", Name: "LCRA Load Zone", Type: "LOAD_ZONE"},
			{ID: "LZ_RAYBN", Name: "Rayburn Load Zone", Type: "LOAD_ZONE"},
		},
	}
}

// LoadNodes loads node presets from a JSON file.
func LoadNodes(filePath string) (*NodeList, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read nodes file: %w", err)
	}

	var list NodeList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse nodes file: %w", err)
	}

	return &list, nil
}

// LoadNodesOrDefault falls back to DefaultNodes when the file does not exist.
func LoadNodesOrDefault(filePath string) (*NodeList, error) {
	list, err := LoadNodes(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultNodes(), nil
		}
		return nil, err
	}
	return list, nil
}

// SaveNodes saves node presets to a JSON file.
func SaveNodes(list *NodeList, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal nodes: %w", err)
	}

	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write nodes file: %w", err)
	}

	return nil
}
