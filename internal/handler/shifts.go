package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
	"github.com/wachplan-dev/wachplan/backend/internal/scheduler"
)

func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)

	// default window: today until the end of the rotation horizon
	from := time.Now().UTC().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, h.config.Rotation.WindowDays)

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.errorResponse(w, r, "invalid from date")
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.errorResponse(w, r, "invalid to date")
			return
		}
		to = parsed
	}

	shifts, err := h.repository.GetShiftsByStation(membership.StationID, from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched shifts", shifts)
}

// CreateShift adds a single shift by hand. Hand-made shifts go live
// immediately, unlike generated ones which stay drafts.
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)

	var req struct {
		DivisionID string `json:"divisionId" validate:"required,uuid"`
		Date       string `json:"date" validate:"required,datetime=2006-01-02"`
		StartTime  string `json:"startTime" validate:"required,datetime=15:04"`
		EndTime    string `json:"endTime" validate:"required,datetime=15:04"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	divisionID, err := uuid.Parse(req.DivisionID)
	if err != nil {
		h.errorResponse(w, r, "invalid division id")
		return
	}

	division, err := h.repository.GetDivisionByID(divisionID)
	if err != nil || division.StationID != membership.StationID {
		h.errorResponse(w, r, "division not found")
		return
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	start, _ := time.Parse("15:04", req.StartTime)
	end, _ := time.Parse("15:04", req.EndTime)

	startsAt := time.Date(date.Year(), date.Month(), date.Day(), start.Hour(), start.Minute(), 0, 0, time.UTC)
	endsAt := time.Date(date.Year(), date.Month(), date.Day(), end.Hour(), end.Minute(), 0, 0, time.UTC)
	if !endsAt.After(startsAt) {
		endsAt = endsAt.AddDate(0, 0, 1)
	}

	shift := &domain.Shift{
		StationID:  membership.StationID,
		DivisionID: divisionID,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
		Label:      scheduler.DeriveLabel(startsAt),
		Status:     domain.ShiftStatusPublished,
	}

	if err := h.repository.CreateShift(shift); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "shifts_division_id_starts_at_key":
			h.badRequest(w, r, errors.New("this division already has a shift starting at this time"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	shift.DivisionName = division.Name
	h.invalidateDisplayCache(membership.StationID)
	h.successResponse(w, r, "shift created", shift)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)
	h.successResponse(w, r, "fetched shift", shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req struct {
		DivisionID *string `json:"divisionId" validate:"omitempty,uuid"`
		Status     *string `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.DivisionID != nil {
		divisionID, err := uuid.Parse(*req.DivisionID)
		if err != nil {
			h.errorResponse(w, r, "invalid division id")
			return
		}

		division, err := h.repository.GetDivisionByID(divisionID)
		if err != nil || division.StationID != membership.StationID {
			h.errorResponse(w, r, "division not found")
			return
		}
		shift.DivisionID = divisionID
		shift.DivisionName = division.Name
	}
	if req.Status != nil {
		shift.Status = domain.ShiftStatus(*req.Status)
	}

	if err := h.repository.UpdateShift(shift); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "shifts_division_id_starts_at_key":
			h.badRequest(w, r, errors.New("this division already has a shift starting at this time"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidateDisplayCache(membership.StationID)
	h.successResponse(w, r, "shift updated", shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateDisplayCache(membership.StationID)
	h.successResponse(w, r, "shift deleted", nil)
}

// DuplicateShift copies the shift and its crew to the next day.
func (h *Handler) DuplicateShift(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	sub, err := uuid.Parse(r.Context().Value(SubCtxKey).(string))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	copied, err := h.repository.DuplicateShift(shift.ID, sub)
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "shifts_division_id_starts_at_key":
			h.badRequest(w, r, errors.New("the next day already has a shift for this division"))
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "shift not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidateDisplayCache(membership.StationID)
	h.successResponse(w, r, "shift duplicated", copied)
}
