package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/bcf-portal/api/responses"
	"github.com/angelmondragon/bcf-portal/api/validators"
	"github.com/angelmondragon/bcf-portal/internal/configurator"
	"github.com/angelmondragon/bcf-portal/internal/workflow"
	"github.com/angelmondragon/bcf-portal/pkg/enums"
	"github.com/angelmondragon/bcf-portal/pkg/logger"
)

const maxResellerMarkLen = 128

type startConfigurationRequest struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
}

// StartConfiguration opens a configuration session for a catalog product.
func StartConfiguration(reg Workspaces, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := workspaceFor(r, reg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload startConfigurationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithProductID(r.Context(), payload.ProductID)
		snap, err := ws.StartConfiguration(ctx, payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		logg.Info(ctx, "configurator.session_started")
		responses.WriteSuccessStatus(w, http.StatusCreated, toSessionResponse(snap, ""))
	}
}

func GetConfiguration(reg Workspaces, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := workspaceFor(r, reg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		snap, err := ws.Session()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSessionResponse(snap, ws.Annotation()))
	}
}

// AbandonConfiguration discards the open session. The batch is untouched.
func AbandonConfiguration(reg Workspaces, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := workspaceFor(r, reg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := ws.AbandonSession(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ToggleMedia adds or removes a photo from the selection.
func ToggleMedia(reg Workspaces, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := workspaceFor(r, reg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		raw := chi.URLParam(r, "mediaRef")
		ref, err := strconv.Atoi(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, configurator.ErrMediaOutOfRange.WithDetails(map[string]any{"reason": "media ref must be an integer", "value": raw}))
			return
		}

		toggle, snap, err := ws.SelectMedia(ref)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, mediaToggleResponse{MediaToggle: toggle, Session: toSessionResponse(snap, ws.Annotation())})
	}
}

type updateSelectionRequest struct {
	Style        *enums.BudStyle        `json:"style,omitempty"`
	Theme        *enums.BackgroundTheme `json:"theme,omitempty"`
	Typography   *enums.Typography      `json:"typography,omitempty"`
	Packaging    *enums.PackagingFormat `json:"packaging,omitempty"`
	Quantity     *int                   `json:"quantity,omitempty" validate:"omitempty,max=10000"`
	QuantityStep int                    `json:"quantity_step,omitempty" validate:"omitempty,oneof=-1 1"`
	ResellerMark *string                `json:"reseller_mark,omitempty"`
}

func (req updateSelectionRequest) toPatch() workflow.SelectionPatch {
	patch := workflow.SelectionPatch{
		Style:        req.Style,
		Theme:        req.Theme,
		Typography:   req.Typography,
		Packaging:    req.Packaging,
		Quantity:     req.Quantity,
		QuantityStep: req.QuantityStep,
	}
	if req.ResellerMark != nil {
		mark := validators.SanitizeString(*req.ResellerMark, maxResellerMarkLen)
		patch.ResellerMark = &mark
	}
	return patch
}

// UpdateSelection applies a partial branding/packaging/quantity update.
func UpdateSelection(reg Workspaces, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := workspaceFor(r, reg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateSelectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := ws.UpdateSelection(r.Context(), payload.toPatch())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSessionResponse(snap, ws.Annotation()))
	}
}

func AdvanceConfiguration(reg Workspaces, logg *logger.Logger) http.HandlerFunc {
	return navigate(reg, logg, (*workflow.Workspace).Advance)
}

func RetreatConfiguration(reg Workspaces, logg *logger.Logger) http.HandlerFunc {
	return navigate(reg, logg, (*workflow.Workspace).Retreat)
}

func navigate(reg Workspaces, logg *logger.Logger, move func(*workflow.Workspace) (configurator.Snapshot, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := workspaceFor(r, reg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		snap, err := move(ws)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		logg.Debug(logg.WithStep(r.Context(), string(snap.Step)), "configurator.step_changed")
		responses.WriteSuccess(w, toSessionResponse(snap, ws.Annotation()))
	}
}

// CommitConfiguration moves the reviewed selection into the batch.
func CommitConfiguration(reg Workspaces, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := workspaceFor(r, reg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := ws.CommitSession()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithFields(logg.WithProductID(r.Context(), item.Product.ID), map[string]any{
			"item_id":  item.AssignedID.String(),
			"quantity": item.Selection.Quantity,
		})
		logg.Info(ctx, "configurator.item_committed")
		responses.WriteSuccessStatus(w, http.StatusCreated, toItemResponse(item))
	}
}
