package handler

import (
	"database/sql"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

func (h *Handler) GetAllStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.repository.GetAllStations()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched stations", stations)
}

// CreateStation founds a new station; the caller becomes its first admin.
func (h *Handler) CreateStation(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Name     string  `json:"name" validate:"required"`
		OrgName  string  `json:"orgName"`
		CrestURL *string `json:"crestUrl" validate:"omitempty,url"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// one membership per user, so founding a second station is out
	if _, err := h.repository.GetMembershipByUserID(myInfo.ID); err == nil {
		h.errorResponse(w, r, "you already belong to a station")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		h.internalServerError(w, r, err)
		return
	}

	station := &domain.Station{
		Name:     req.Name,
		CrestURL: req.CrestURL,
	}

	if err := h.repository.CreateStationWithAdmin(station, req.OrgName, myInfo.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "stations_name_key":
			h.badRequest(w, r, errors.New("a station with this name already exists"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "station created", station)
}

func (h *Handler) GetMyStation(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)

	station, err := h.repository.GetStationByID(membership.StationID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched station", station)
}

func (h *Handler) UpdateStation(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)

	var req struct {
		Name     *string `json:"name"`
		CrestURL *string `json:"crestUrl" validate:"omitempty,url"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	station, err := h.repository.GetStationByID(membership.StationID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if req.Name != nil {
		station.Name = *req.Name
	}
	if req.CrestURL != nil {
		station.CrestURL = req.CrestURL
	}

	if err := h.repository.UpdateStation(station); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "station update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "station updated", station)
}

func (h *Handler) CreateJoinRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		StationID string `json:"stationId" validate:"required,uuid"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, err := h.repository.GetMembershipByUserID(myInfo.ID); err == nil {
		h.errorResponse(w, r, "you already belong to a station")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		h.internalServerError(w, r, err)
		return
	}

	stationID, err := uuid.Parse(req.StationID)
	if err != nil {
		h.errorResponse(w, r, "invalid station id")
		return
	}

	station, err := h.repository.GetStationByID(stationID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "station not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	jr := &domain.JoinRequest{
		UserID:    myInfo.ID,
		StationID: station.ID,
		Status:    domain.JoinRequestPending,
	}

	if err := h.repository.CreateJoinRequest(jr); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "join_requests_user_id_station_id_key":
			h.badRequest(w, r, errors.New("you already requested to join this station"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "join request submitted", jr)
}

func (h *Handler) GetPendingJoinRequests(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)

	requests, err := h.repository.GetPendingJoinRequests(membership.StationID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched join requests", requests)
}

// AcceptJoinRequest turns a pending request into a membership. The admin
// may pick a role and division in the body; an empty body means VIEWER
// without a division.
func (h *Handler) AcceptJoinRequest(w http.ResponseWriter, r *http.Request) {
	jr := r.Context().Value(JoinRequestCtx).(*domain.JoinRequest)

	if jr.Status != domain.JoinRequestPending {
		h.errorResponse(w, r, "join request has already been handled")
		return
	}

	var req struct {
		Role       *domain.Role `json:"role" validate:"omitempty,oneof=ADMIN EDITOR VIEWER"`
		DivisionID *string      `json:"divisionId" validate:"omitempty,uuid"`
	}

	if err := h.readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	role := domain.RoleViewer
	if req.Role != nil {
		role = *req.Role
	}

	var divisionID *uuid.UUID
	if req.DivisionID != nil {
		id, err := uuid.Parse(*req.DivisionID)
		if err != nil {
			h.errorResponse(w, r, "invalid division id")
			return
		}

		division, err := h.repository.GetDivisionByID(id)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "division not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}
		if division.StationID != jr.StationID {
			h.errorResponse(w, r, "division not found")
			return
		}
		divisionID = &division.ID
	}

	newMembership := &domain.Membership{
		UserID:     jr.UserID,
		StationID:  jr.StationID,
		DivisionID: divisionID,
		Role:       role,
	}

	if err := h.repository.CreateMembership(newMembership); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "memberships_user_id_key":
			h.badRequest(w, r, errors.New("user already belongs to a station"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.UpdateJoinRequestStatus(jr.ID, domain.JoinRequestApproved); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "join request accepted", newMembership)
}

func (h *Handler) RejectJoinRequest(w http.ResponseWriter, r *http.Request) {
	jr := r.Context().Value(JoinRequestCtx).(*domain.JoinRequest)

	if jr.Status != domain.JoinRequestPending {
		h.errorResponse(w, r, "join request has already been handled")
		return
	}

	if err := h.repository.UpdateJoinRequestStatus(jr.ID, domain.JoinRequestRejected); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "join request rejected", nil)
}
