package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
	"github.com/wachplan-dev/wachplan/backend/internal/utils"
)

func (h *Handler) GetScheduleCycle(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)

	cycle, err := h.repository.GetScheduleCycleByStation(membership.StationID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.successResponse(w, r, "no rotation configured yet", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "fetched rotation", cycle)
}

// UpsertScheduleCycle saves the station's rotation anchor: the start date,
// the division order and the day/night switch offset.
func (h *Handler) UpsertScheduleCycle(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)

	var req struct {
		StartDate        string   `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
		OrderDivisionIDs []string `json:"orderDivisionIds" validate:"required,min=1,dive,uuid"`
		SwitchHours      *int32   `json:"switchHours" validate:"omitempty,min=1,max=168"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	orderDivisionIDs := make([]uuid.UUID, 0, len(req.OrderDivisionIDs))
	for _, raw := range req.OrderDivisionIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.errorResponse(w, r, "invalid division id")
			return
		}
		orderDivisionIDs = append(orderDivisionIDs, id)
	}

	divisions, err := h.repository.GetDivisionsByStation(membership.StationID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := utils.ValidateCycleDivisions(orderDivisionIDs, divisions); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// the start date defaults to today, the switch offset to noon
	startDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.StartDate != "" {
		startDate, err = time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			h.errorResponse(w, r, "invalid start date")
			return
		}
	}

	switchHours := int32(domain.DefaultSwitchHours)
	if req.SwitchHours != nil {
		switchHours = *req.SwitchHours
	}

	cycle := &domain.ScheduleCycle{
		StationID:        membership.StationID,
		StartDate:        startDate,
		OrderDivisionIDs: orderDivisionIDs,
		SwitchHours:      switchHours,
	}

	if err := h.repository.UpsertScheduleCycle(cycle); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "rotation saved", cycle)
}
