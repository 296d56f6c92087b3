package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

func (h *Handler) GetPeople(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)

	people, err := h.repository.GetPeopleByStation(membership.StationID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched people", people)
}

func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)

	var req struct {
		Name     string   `json:"name" validate:"required"`
		PhotoURL *string  `json:"photoUrl" validate:"omitempty,url"`
		Rank     *string  `json:"rank"`
		Tags     []string `json:"tags"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Tags == nil {
		req.Tags = []string{}
	}

	person := &domain.Person{
		StationID: membership.StationID,
		Name:      req.Name,
		PhotoURL:  req.PhotoURL,
		Rank:      req.Rank,
		Tags:      req.Tags,
		Active:    true,
	}

	if err := h.repository.CreatePerson(person); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "person created", person)
}

func (h *Handler) GetPerson(w http.ResponseWriter, r *http.Request) {
	person := r.Context().Value(PersonCtx).(*domain.Person)
	h.successResponse(w, r, "fetched person", person)
}

func (h *Handler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	person := r.Context().Value(PersonCtx).(*domain.Person)

	var req struct {
		Name     *string  `json:"name"`
		PhotoURL *string  `json:"photoUrl" validate:"omitempty,url"`
		Rank     *string  `json:"rank"`
		Tags     []string `json:"tags"`
		Active   *bool    `json:"active"`
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
		person.Name = *req.Name
	}
	if req.PhotoURL != nil {
		person.PhotoURL = req.PhotoURL
	}
	if req.Rank != nil {
		person.Rank = req.Rank
	}
	if req.Tags != nil {
		person.Tags = req.Tags
	}
	if req.Active != nil {
		person.Active = *req.Active
	}

	if err := h.repository.UpdatePerson(person); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "person update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "person updated", person)
}

func (h *Handler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	person := r.Context().Value(PersonCtx).(*domain.Person)

	if err := h.repository.DeletePerson(person.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "person deleted", nil)
}
