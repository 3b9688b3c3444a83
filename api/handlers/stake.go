package handlers

import (
	"net/http"
	"strings"

	"github.com/openalpha/venture-fund/api/types"
)

// StakeHandler handles boost stake HTTP requests
type StakeHandler struct {
	service types.StakeService
}

// NewStakeHandler creates a new stake handler
func NewStakeHandler(service types.StakeService) *StakeHandler {
	return &StakeHandler{service: service}
}

// GetStake handles GET /api/v1/funds/{fundID}/stakes/{account}
// Fund ID and account are passed via headers set by the router.
func (h *StakeHandler) GetStake(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	fundID := r.Header.Get("X-Fund-ID")
	account := r.Header.Get("X-Account-Address")
	if account == "" {
		writeError(w, http.StatusBadRequest, "missing_account", "account address is required")
		return
	}

	stake, err := h.service.GetStake(r.Context(), fundID, account)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "stake_not_found", err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "get_stake_failed", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, stake)
}

// GetDiscount handles GET /api/v1/funds/{fundID}/discount/{account}
func (h *StakeHandler) GetDiscount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	fundID := r.Header.Get("X-Fund-ID")
	account := r.Header.Get("X-Account-Address")
	if account == "" {
		writeError(w, http.StatusBadRequest, "missing_account", "account address is required")
		return
	}

	discount, err := h.service.GetDiscount(r.Context(), fundID, account)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "get_discount_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, discount)
}
