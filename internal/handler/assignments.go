package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

func (h *Handler) GetAssignments(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	assignments, err := h.repository.GetAssignmentsByShift(shift.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched assignments", assignments)
}

// UpsertAssignment fills one vehicle seat. A seat takes either a person or
// a free-text placeholder, never both.
func (h *Handler) UpsertAssignment(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req struct {
		VehicleKey      string  `json:"vehicleKey" validate:"required"`
		SlotKey         string  `json:"slotKey" validate:"required"`
		PersonID        *string `json:"personId" validate:"omitempty,uuid"`
		PlaceholderText *string `json:"placeholderText"`
		FromTruppKey    *string `json:"fromTruppKey"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.PersonID != nil && req.PlaceholderText != nil {
		h.errorResponse(w, r, "a slot takes either a person or a placeholder, not both")
		return
	}

	var personID *uuid.UUID
	if req.PersonID != nil {
		parsed, err := uuid.Parse(*req.PersonID)
		if err != nil {
			h.errorResponse(w, r, "invalid person id")
			return
		}

		person, err := h.repository.GetPersonByID(parsed)
		if err != nil || person.StationID != membership.StationID {
			h.errorResponse(w, r, "person not found")
			return
		}

		taken, err := h.repository.IsPersonAssignedElsewhere(shift.ID, parsed, req.VehicleKey, req.SlotKey)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if taken {
			h.errorResponse(w, r, person.Name+" is already assigned to another slot on this shift")
			return
		}

		personID = &parsed
	}

	sub, err := uuid.Parse(r.Context().Value(SubCtxKey).(string))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	assignment := &domain.Assignment{
		ShiftID:         shift.ID,
		VehicleKey:      req.VehicleKey,
		SlotKey:         req.SlotKey,
		PersonID:        personID,
		PlaceholderText: req.PlaceholderText,
		FromTruppKey:    req.FromTruppKey,
		UpdatedBy:       &sub,
	}

	if err := h.repository.UpsertAssignment(assignment); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateDisplayCache(membership.StationID)
	h.successResponse(w, r, "assignment saved", assignment)
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)

	assignmentID, err := uuid.Parse(chi.URLParam(r, "assignmentID"))
	if err != nil {
		h.errorResponse(w, r, "invalid assignment id")
		return
	}

	if err := h.repository.DeleteAssignment(assignmentID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateDisplayCache(membership.StationID)
	h.successResponse(w, r, "assignment removed", nil)
}
