package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/bcf-portal/api/responses"
	pkgerrors "github.com/angelmondragon/bcf-portal/pkg/errors"
	"github.com/angelmondragon/bcf-portal/pkg/logger"
)

func GetBatch(reg Workspaces, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := workspaceFor(r, reg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toBatchResponse(ws.Batch()))
	}
}

// RemoveBatchItem deletes one configured item from the draft batch.
func RemoveBatchItem(reg Workspaces, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := workspaceFor(r, reg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		raw := chi.URLParam(r, "itemId")
		id, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id").WithDetails(map[string]any{"reason": "item id must be a uuid", "value": raw}))
			return
		}

		if err := ws.RemoveItem(id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toBatchResponse(ws.Batch()))
	}
}
