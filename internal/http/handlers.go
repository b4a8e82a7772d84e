package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"sumstra/internal/core"
	"sumstra/internal/log"
	"sumstra/internal/store"
)

// incomeFilter exists only at the HTTP layer. The expense views never
// include income rows, so income gets its own selector instead of a
// FilterType.
const incomeFilter = "INCOME"

type handler struct {
	store  *store.Store
	logger *log.Logger
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("filter")
	if raw == "" {
		writeData(w, http.StatusOK, h.store.Transactions())
		return
	}
	if strings.EqualFold(strings.TrimSpace(raw), incomeFilter) {
		rows, _ := h.store.Income()
		writeData(w, http.StatusOK, rows)
		return
	}

	filter, ok := core.ParseFilterType(raw)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown filter %q", raw))
		return
	}
	rows, _ := h.store.Summary(filter, time.Now())
	writeData(w, http.StatusOK, rows)
}

type createRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
}

func (h *handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := core.ParseCategory(req.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	input := core.NewTransaction{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    category,
		Date:        req.Date,
	}
	created, ok := h.store.Add(r.Context(), input)
	if !ok {
		writeStoreError(w, h.store.Err())
		return
	}
	writeData(w, http.StatusCreated, created)
}

type updateRequest struct {
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category"`
	Date        *time.Time       `json:"date"`
}

func (h *handler) updateTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := core.TransactionUpdate{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
	}
	if req.Category != nil {
		category, err := core.ParseCategory(*req.Category)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		update.Category = &category
	}

	if !h.store.Edit(r.Context(), id, update) {
		writeStoreError(w, h.store.Err())
		return
	}

	for _, txn := range h.store.Transactions() {
		if txn.ID == id {
			writeData(w, http.StatusOK, txn)
			return
		}
	}
	writeData(w, http.StatusOK, nil)
}

func (h *handler) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.store.Delete(r.Context(), id) {
		writeStoreError(w, h.store.Err())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type summaryResponse struct {
	Filter string          `json:"filter"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

func (h *handler) summary(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("filter")
	if raw == "" {
		raw = core.FilterAll.String()
	}
	if strings.EqualFold(strings.TrimSpace(raw), incomeFilter) {
		rows, total := h.store.Income()
		writeData(w, http.StatusOK, summaryResponse{
			Filter: incomeFilter,
			Count:  len(rows),
			Total:  total,
		})
		return
	}

	filter, ok := core.ParseFilterType(raw)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown filter %q", raw))
		return
	}
	rows, total := h.store.Summary(filter, time.Now())
	writeData(w, http.StatusOK, summaryResponse{
		Filter: filter.String(),
		Count:  len(rows),
		Total:  total,
	})
}
