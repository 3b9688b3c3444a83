package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/openalpha/venture-fund/api/types"
)

// PositionHandler handles position-related HTTP requests
type PositionHandler struct {
	service types.PositionService
}

// NewPositionHandler creates a new position handler
func NewPositionHandler(service types.PositionService) *PositionHandler {
	return &PositionHandler{service: service}
}

// HandlePosition handles /api/v1/positions/{positionID} endpoint (GET)
func (h *PositionHandler) HandlePosition(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	prefix := "/api/v1/positions/"
	if !strings.HasPrefix(path, prefix) {
		writeError(w, http.StatusBadRequest, "invalid_path", "Invalid path")
		return
	}
	idStr := strings.TrimPrefix(path, prefix)
	if idStr == "" {
		writeError(w, http.StatusBadRequest, "missing_position_id", "Position ID is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getPosition(w, r, idStr)
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
	}
}

// getPosition handles GET /api/v1/positions/{positionID}
func (h *PositionHandler) getPosition(w http.ResponseWriter, r *http.Request, idStr string) {
	positionID, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_position_id", "Position ID must be a number")
		return
	}

	position, err := h.service.GetPosition(r.Context(), positionID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "position_not_found", err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "get_position_failed", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"position": position})
}

// GetAccountPositions handles GET /api/v1/accounts/{address}/positions
// The account address is passed via the X-Account-Address header set by the router.
func (h *PositionHandler) GetAccountPositions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	account := r.Header.Get("X-Account-Address")
	positions, err := h.service.GetAccountPositions(r.Context(), account)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_positions_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"positions": positions,
		"total":     len(positions),
	})
}

// GetCheckpoints handles GET /api/v1/accounts/{address}/checkpoints?fund_id=...
func (h *PositionHandler) GetCheckpoints(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	account := r.Header.Get("X-Account-Address")
	fundID := r.URL.Query().Get("fund_id")
	if fundID == "" {
		writeError(w, http.StatusBadRequest, "missing_fund_id", "fund_id is required")
		return
	}

	checkpoints, err := h.service.GetCheckpoints(r.Context(), fundID, account)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "get_checkpoints_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"fund_id":     fundID,
		"account":     account,
		"checkpoints": checkpoints,
	})
}
