package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"alchemy-backend/application/services"

	"go.uber.org/zap"
)

// GraphBuilder produces the discovery graph snapshot
type GraphBuilder interface {
	BuildGraph(ctx context.Context) (*services.Graph, error)
}

// GraphHandler handles discovery-graph HTTP requests
type GraphHandler struct {
	graphs GraphBuilder
	logger *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(graphs GraphBuilder, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{
		graphs: graphs,
		logger: logger,
	}
}

// GetGraph handles GET /graph
func (h *GraphHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	graph, err := h.graphs.BuildGraph(r.Context())
	if err != nil {
		h.logger.Error("Failed to build discovery graph", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "Failed to build discovery graph")
		return
	}

	h.respondJSON(w, http.StatusOK, graph)
}

func (h *GraphHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *GraphHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
