package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/openalpha/venture-fund/api/types"
)

// FundHandler handles fund-related HTTP requests
type FundHandler struct {
	service types.FundService
}

// NewFundHandler creates a new fund handler
func NewFundHandler(service types.FundService) *FundHandler {
	return &FundHandler{service: service}
}

// HandleFunds handles /api/v1/funds endpoint (GET for list)
func (h *FundHandler) HandleFunds(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listFunds(w, r)
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
	}
}

// listFunds handles GET /api/v1/funds
func (h *FundHandler) listFunds(w http.ResponseWriter, r *http.Request) {
	funds, err := h.service.GetFunds(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_funds_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"funds": funds,
		"total": len(funds),
	})
}

// GetFund handles GET /api/v1/funds/{fundID}
// The fund ID is passed via the X-Fund-ID header set by the router.
func (h *FundHandler) GetFund(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	fundID := r.Header.Get("X-Fund-ID")
	fund, err := h.service.GetFund(r.Context(), fundID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "fund_not_found", err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "get_fund_failed", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, fund)
}

// GetPayouts handles GET /api/v1/funds/{fundID}/payouts
func (h *FundHandler) GetPayouts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	fundID := r.Header.Get("X-Fund-ID")

	offset := 0
	if o := r.URL.Query().Get("offset"); o != "" {
		offset, _ = strconv.Atoi(o)
	}
	limit := 100
	if l := r.URL.Query().Get("limit"); l != "" {
		limit, _ = strconv.Atoi(l)
	}
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	resp, err := h.service.GetPayouts(r.Context(), fundID, offset, limit)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "fund_not_found", err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "get_payouts_failed", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetEntitlement handles GET /api/v1/funds/{fundID}/entitlement/{account}
func (h *FundHandler) GetEntitlement(w http.ResponseWriter, r *http.Request) {
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

	ent, err := h.service.GetEntitlement(r.Context(), fundID, account)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "entitlement_not_found", err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "get_entitlement_failed", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, ent)
}

// GetHolders handles GET /api/v1/funds/{fundID}/holders
func (h *FundHandler) GetHolders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	fundID := r.Header.Get("X-Fund-ID")
	resp, err := h.service.GetHolders(r.Context(), fundID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "fund_not_found", err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "get_holders_failed", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   code,
		"message": message,
	})
}
