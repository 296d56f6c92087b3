package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/wachplan-dev/wachplan/backend/internal/domain"
	"github.com/wachplan-dev/wachplan/backend/internal/scheduler"
)

// GenerateShifts materializes the rotation for the coming window. Running
// it twice is harmless: rows that already exist are skipped by the store.
func (h *Handler) GenerateShifts(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)

	cycle, err := h.repository.GetScheduleCycleByStation(membership.StationID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "no rotation configured for this station")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	templates, err := h.repository.GetShiftTemplatesByStation(membership.StationID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	s, err := scheduler.New(cycle, templates, scheduler.Parameters{
		WindowDays: h.config.Rotation.WindowDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrEmptyRotation):
			h.errorResponse(w, r, "the rotation order contains no divisions")
		case errors.Is(err, scheduler.ErrMissingDayTemplate):
			h.errorResponse(w, r, "no DAY shift template configured")
		case errors.Is(err, scheduler.ErrMissingNightTemplate):
			h.errorResponse(w, r, "no NIGHT shift template configured")
		default:
			h.badRequest(w, r, err)
		}
		return
	}

	generated := s.Generate()

	inserted, err := h.repository.InsertShiftsSkipConflicts(generated)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateDisplayCache(membership.StationID)

	h.successResponse(w, r, "shifts generated", map[string]int64{
		"generated": int64(len(generated)),
		"inserted":  inserted,
		"skipped":   int64(len(generated)) - inserted,
	})
}
