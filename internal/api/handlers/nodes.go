package handlers

import (
	"fmt"
	"net/http"

	"ercot-lmp-viewer/internal/api/models"
	"ercot-lmp-viewer/internal/data"

	"github.com/gin-gonic/gin"
)

// NodeHandler lists node presets for the node picker. It never restricts
// which nodes can be queried.
type NodeHandler struct {
	nodesFile   string
	defaultNode string
	available   []string
}

// NewNodeHandler reads presets from nodesFile (falling back to the ERCOT hub
// list) and appends any node IDs the configured source reports as available.
func NewNodeHandler(nodesFile, defaultNode string, available []string) *NodeHandler {
	return &NodeHandler{nodesFile: nodesFile, defaultNode: defaultNode, available: available}
}

// ListNodes handles GET /api/v1/nodes
func (h *NodeHandler) ListNodes(c *gin.Context) {
	list, err := data.LoadNodesOrDefault(h.nodesFile)
	if err != nil {
		abortError(c, http.StatusInternalServerError, "NODES_LOAD_ERROR", fmt.Sprintf("Failed to load nodes: %v", err))
		return
	}

	seen := make(map[string]bool, len(list.Nodes))
	nodes := make([]models.NodeInfo, 0, len(list.Nodes)+len(h.available))
	for _, n := range list.Nodes {
		seen[n.ID] = true
		nodes = append(nodes, models.NodeInfo{ID: n.ID, Name: n.Name, Type: n.Type})
	}
	for _, id := range h.available {
		if seen[id] {
			continue
		}
		seen[id] = true
		nodes = append(nodes, models.NodeInfo{ID: id, Name: id})
	}

	c.JSON(http.StatusOK, gin.H{
		"nodes":        nodes,
		"default_node": h.defaultNode,
		"updated_at":   list.UpdatedAt,
		"count":        len(nodes),
	})
}
