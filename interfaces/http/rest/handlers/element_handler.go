package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"alchemy-backend/application/services"
	"alchemy-backend/domain/element"
	"alchemy-backend/infrastructure/config"
	apperrors "alchemy-backend/pkg/errors"
	"alchemy-backend/pkg/utils"

	"go.uber.org/zap"
)

// FusionRunner runs the combination pipeline
type FusionRunner interface {
	Fuse(ctx context.Context, name1, name2 string) (*services.FusionResult, error)
}

// ElementLibrary covers the non-fusion element operations
type ElementLibrary interface {
	GetByName(ctx context.Context, name string) (*element.Element, error)
	SeedElements(ctx context.Context) ([]*element.Element, error)
	Reset(ctx context.Context) (*services.ResetResult, error)
}

// ElementHandler handles element-related HTTP requests
type ElementHandler struct {
	fusion  FusionRunner
	library ElementLibrary
	cfg     *config.Config
	logger  *zap.Logger
}

// NewElementHandler creates a new element handler
func NewElementHandler(fusion FusionRunner, library ElementLibrary, cfg *config.Config, logger *zap.Logger) *ElementHandler {
	return &ElementHandler{
		fusion:  fusion,
		library: library,
		cfg:     cfg,
		logger:  logger,
	}
}

// FuseRequest represents the request body for combining two elements
type FuseRequest struct {
	Name1 string `json:"name1" validate:"required,min=1,max=100"`
	Name2 string `json:"name2" validate:"required,min=1,max=100"`
}

// GetElements handles GET /elements. With a name query parameter it looks
// up that element; without one it returns the four seed roots only - the
// full discovery set is deliberately not exposed here.
func (h *ElementHandler) GetElements(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("name"); name != "" {
		el, err := h.library.GetByName(r.Context(), name)
		if err != nil {
			h.respondAppError(w, err, "Failed to look up element")
			return
		}
		h.respondJSON(w, http.StatusOK, el)
		return
	}

	roots, err := h.library.SeedElements(r.Context())
	if err != nil {
		h.respondAppError(w, err, "Failed to load seed elements")
		return
	}
	h.respondJSON(w, http.StatusOK, roots)
}

// FuseElements handles POST /elements
func (h *ElementHandler) FuseElements(w http.ResponseWriter, r *http.Request) {
	var req FuseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// The generation pipeline calls two models and an object store;
	// bound the whole run rather than each hop.
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.cfg.FusionTimeoutSeconds)*time.Second)
	defer cancel()

	result, err := h.fusion.Fuse(ctx, req.Name1, req.Name2)
	if err != nil {
		h.logger.Error("Fusion failed",
			zap.String("name1", req.Name1),
			zap.String("name2", req.Name2),
			zap.Error(err),
		)
		h.respondAppError(w, err, "Failed to combine elements")
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	h.respondJSON(w, status, result.Element)
}

// ResetElements handles DELETE /elements. Destructive: wipes every element
// and re-seeds the four roots, guarded by a confirmation token.
func (h *ElementHandler) ResetElements(w http.ResponseWriter, r *http.Request) {
	confirm := r.URL.Query().Get("confirm")
	if !h.confirmAccepted(confirm) {
		if confirm == "" {
			h.respondError(w, http.StatusBadRequest, "Reset requires a confirm token")
		} else {
			h.respondError(w, http.StatusForbidden, "Reset confirm token rejected")
		}
		return
	}

	result, err := h.library.Reset(r.Context())
	if err != nil {
		h.logger.Error("Reset failed", zap.Error(err))
		h.respondAppError(w, err, "Failed to reset elements")
		return
	}

	h.logger.Warn("Element store wiped and re-seeded",
		zap.Int("deleted", result.Deleted),
		zap.Int("seeded", result.Seeded),
	)

	h.respondJSON(w, http.StatusOK, result)
}

// confirmAccepted applies the environment-appropriate reset guard:
// production demands the exact configured phrase, development also accepts
// a loose yes/true token.
func (h *ElementHandler) confirmAccepted(confirm string) bool {
	if confirm == "" {
		return false
	}
	if h.cfg.IsProduction() {
		return confirm == h.cfg.ResetConfirmPhrase
	}
	return confirm == "yes" || confirm == "true" || confirm == h.cfg.ResetConfirmPhrase
}

// Helper methods

func (h *ElementHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *ElementHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}

// respondAppError maps the error taxonomy to an HTTP status
func (h *ElementHandler) respondAppError(w http.ResponseWriter, err error, fallback string) {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		h.respondError(w, appErr.HTTPStatus, appErr.Message)
		return
	}
	h.respondError(w, http.StatusInternalServerError, fallback)
}
