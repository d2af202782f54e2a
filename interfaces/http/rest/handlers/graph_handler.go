package handlers

import (
	"net/http"
	"strconv"

	"socialgraph/application/commands"
	"socialgraph/application/commands/bus"
	"socialgraph/application/queries"
	querybus "socialgraph/application/queries/bus"
	"socialgraph/domain/services"
	pkgerrors "socialgraph/pkg/errors"

	"go.uber.org/zap"
)

// GraphHandler handles graph-related HTTP requests
type GraphHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// GetGraphData handles GET /graph
func (h *GraphHandler) GetGraphData(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetGraphDataQuery{})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// MutualConnections handles GET /graph/mutual?first=&second=
func (h *GraphHandler) MutualConnections(w http.ResponseWriter, r *http.Request) {
	query := queries.MutualConnectionsQuery{
		First:  r.URL.Query().Get("first"),
		Second: r.URL.Query().Get("second"),
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	mutual := result.(*queries.MutualConnectionsResult)
	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, mutual)
		return
	}
	respondText(w, http.StatusOK, mutual.Text)
}

// Communities handles GET /graph/communities
func (h *GraphHandler) Communities(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.DetectCommunitiesQuery{})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	communities := result.(*queries.DetectCommunitiesResult)
	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, communities)
		return
	}
	respondText(w, http.StatusOK, communities.Text)
}

// MostInfluential handles GET /graph/influential
func (h *GraphHandler) MostInfluential(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.MostInfluentialQuery{})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	influential := result.(*queries.MostInfluentialResult)
	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, influential)
		return
	}
	respondText(w, http.StatusOK, influential.Title+"\n"+influential.Subtitle)
}

// reloadResponse summarizes the graph published by a reload
type reloadResponse struct {
	GraphID string              `json:"graph_id"`
	Seed    int64               `json:"seed"`
	Status  string              `json:"status"`
	Stats   services.GraphStats `json:"stats"`
}

// Reload handles POST /graph/reload?seed=
func (h *GraphHandler) Reload(w http.ResponseWriter, r *http.Request) {
	var seed int64
	if raw := r.URL.Query().Get("seed"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, h.logger, pkgerrors.NewValidationError("seed must be an integer"))
			return
		}
		seed = parsed
	}

	if err := h.commandBus.Send(r.Context(), commands.ReloadGraphCommand{Seed: seed}); err != nil {
		h.logger.Warn("Graph reload failed", zap.Int64("seed", seed), zap.Error(err))
		respondError(w, h.logger, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetGraphDataQuery{})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	data := result.(*queries.GetGraphDataResult)
	respondJSON(w, http.StatusOK, reloadResponse{
		GraphID: data.GraphID,
		Seed:    data.Seed,
		Status:  data.Status,
		Stats:   data.Stats,
	})
}
