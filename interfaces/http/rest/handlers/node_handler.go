package handlers

import (
	"net/http"

	"socialgraph/application/queries"
	querybus "socialgraph/application/queries/bus"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NodeHandler handles node-related HTTP requests
type NodeHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *NodeHandler {
	return &NodeHandler{
		queryBus: queryBus,
		logger:   logger,
	}
}

// GetNode handles GET /nodes/{nodeID}
func (h *NodeHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	query := queries.GetNodeQuery{NodeID: chi.URLParam(r, "nodeID")}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	node := result.(*queries.GetNodeResult)
	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, node)
		return
	}
	respondText(w, http.StatusOK, node.Text)
}
