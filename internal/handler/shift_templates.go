package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
	"github.com/wachplan-dev/wachplan/backend/internal/utils"
)

func (h *Handler) GetShiftTemplates(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)

	templates, err := h.repository.GetShiftTemplatesByStation(membership.StationID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched shift templates", templates)
}

func (h *Handler) CreateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)

	// labels are free-form; only the generator insists on DAY and NIGHT
	var req struct {
		Label     string `json:"label" validate:"required"`
		StartTime string `json:"startTime" validate:"required"`
		EndTime   string `json:"endTime" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	st := &domain.ShiftTemplate{
		StationID: membership.StationID,
		Label:     req.Label,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if err := utils.ValidateShiftTemplateTimes(st); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateShiftTemplate(st); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "shift_templates_station_id_label_key":
			h.badRequest(w, r, errors.New("a template with this label already exists"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "shift template created", st)
}

func (h *Handler) GetShiftTemplate(w http.ResponseWriter, r *http.Request) {
	st := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)
	h.successResponse(w, r, "fetched shift template", st)
}

func (h *Handler) UpdateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	st := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)

	var req struct {
		StartTime *string `json:"startTime"`
		EndTime   *string `json:"endTime"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.StartTime != nil {
		st.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		st.EndTime = *req.EndTime
	}

	if err := utils.ValidateShiftTemplateTimes(st); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateShiftTemplate(st); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "template update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "shift template updated", st)
}

func (h *Handler) DeleteShiftTemplate(w http.ResponseWriter, r *http.Request) {
	st := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)

	if err := h.repository.DeleteShiftTemplate(st.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift template deleted", nil)
}
