package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
	"github.com/wachplan-dev/wachplan/backend/internal/utils"
)

func (h *Handler) GetVehicles(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)

	vehicles, err := h.repository.GetVehicleConfigsByStation(membership.StationID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched vehicles", vehicles)
}

func (h *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)

	var req struct {
		Key      string               `json:"key" validate:"required"`
		Title    string               `json:"title" validate:"required"`
		Position int32                `json:"position"`
		Layout   domain.VehicleLayout `json:"config"`
		ImageURL *string              `json:"imageUrl" validate:"omitempty,url"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := utils.ValidateVehicleLayout(&req.Layout); err != nil {
		h.badRequest(w, r, err)
		return
	}

	vehicle := &domain.VehicleConfig{
		StationID: membership.StationID,
		Key:       req.Key,
		Title:     req.Title,
		Position:  req.Position,
		Layout:    req.Layout,
		ImageURL:  req.ImageURL,
	}

	if err := h.repository.CreateVehicleConfig(vehicle); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "vehicle created", vehicle)
}

func (h *Handler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle := r.Context().Value(VehicleCtx).(*domain.VehicleConfig)
	h.successResponse(w, r, "fetched vehicle", vehicle)
}

func (h *Handler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle := r.Context().Value(VehicleCtx).(*domain.VehicleConfig)

	var req struct {
		Key      *string               `json:"key"`
		Title    *string               `json:"title"`
		Layout   *domain.VehicleLayout `json:"config"`
		ImageURL *string               `json:"imageUrl" validate:"omitempty,url"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Key != nil {
		vehicle.Key = *req.Key
	}
	if req.Title != nil {
		vehicle.Title = *req.Title
	}
	if req.Layout != nil {
		if err := utils.ValidateVehicleLayout(req.Layout); err != nil {
			h.badRequest(w, r, err)
			return
		}
		vehicle.Layout = *req.Layout
	}
	if req.ImageURL != nil {
		vehicle.ImageURL = req.ImageURL
	}

	if err := h.repository.UpdateVehicleConfig(vehicle); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "vehicle updated", vehicle)
}

func (h *Handler) UpdateVehicleOrder(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)

	var req struct {
		OrderedIDs []string `json:"orderedIds" validate:"required,min=1,dive,uuid"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	orderedIDs := make([]uuid.UUID, 0, len(req.OrderedIDs))
	for _, raw := range req.OrderedIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.errorResponse(w, r, "invalid vehicle id")
			return
		}
		orderedIDs = append(orderedIDs, id)
	}

	if err := h.repository.UpdateVehicleOrder(membership.StationID, orderedIDs); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "vehicle order updated", nil)
}

func (h *Handler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle := r.Context().Value(VehicleCtx).(*domain.VehicleConfig)

	if err := h.repository.DeleteVehicleConfig(vehicle.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "vehicle deleted", nil)
}
