package controllers

import (
	"net/http"

	"github.com/angelmondragon/bcf-portal/api/responses"
	"github.com/angelmondragon/bcf-portal/api/validators"
	"github.com/angelmondragon/bcf-portal/pkg/logger"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// SubmitOrder turns the caller's batch into an order record.
func SubmitOrder(reg Workspaces, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := workspaceFor(r, reg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		record, err := ws.Submit(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toOrderResponse(record))
	}
}

// ListOrders returns the caller's history, most recent first.
func ListOrders(reg Workspaces, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := workspaceFor(r, reg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", defaultHistoryLimit, 1, maxHistoryLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := ws.History(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(records) > limit {
			records = records[:limit]
		}
		responses.WriteSuccess(w, toOrderHistoryResponse(records))
	}
}
