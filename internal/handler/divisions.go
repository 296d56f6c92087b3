package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

func (h *Handler) GetDivisions(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)

	divisions, err := h.repository.GetDivisionsByStation(membership.StationID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched divisions", divisions)
}

func (h *Handler) CreateDivision(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)

	var req struct {
		Name  string  `json:"name" validate:"required"`
		Color *string `json:"color" validate:"omitempty,hexcolor"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	division := &domain.Division{
		StationID: membership.StationID,
		Name:      req.Name,
		Color:     req.Color,
	}

	if err := h.repository.CreateDivision(division); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "division created", division)
}

func (h *Handler) GetDivision(w http.ResponseWriter, r *http.Request) {
	division := r.Context().Value(DivisionCtx).(*domain.Division)
	h.successResponse(w, r, "fetched division", division)
}

func (h *Handler) UpdateDivision(w http.ResponseWriter, r *http.Request) {
	division := r.Context().Value(DivisionCtx).(*domain.Division)

	var req struct {
		Name  *string `json:"name"`
		Color *string `json:"color" validate:"omitempty,hexcolor"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		division.Name = *req.Name
	}
	if req.Color != nil {
		division.Color = req.Color
	}

	if err := h.repository.UpdateDivision(division); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "division update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "division updated", division)
}

func (h *Handler) DeleteDivision(w http.ResponseWriter, r *http.Request) {
	division := r.Context().Value(DivisionCtx).(*domain.Division)

	if err := h.repository.DeleteDivision(division.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "division deleted", nil)
}
