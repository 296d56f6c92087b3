package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/wachplan-dev/wachplan/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetMyInfo(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	// membership is optional here: a fresh account has none yet
	data := struct {
		*domain.User
		Membership *domain.Membership `json:"membership"`
	}{User: myInfo}

	membership, err := h.repository.GetMembershipByUserID(myInfo.ID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		h.internalServerError(w, r, err)
		return
	}
	data.Membership = membership

	h.successResponse(w, r, "fetched account", data)
}

func (h *Handler) UpdateMyPassword(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		OldPassword string `json:"oldPassword" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required,min=8"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(myInfo.PasswordHash), []byte(req.OldPassword)); err != nil {
		h.errorResponse(w, r, "wrong old password")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	myInfo.PasswordHash = string(hashedPassword)

	if err := h.repository.UpdateUser(myInfo); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "password update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "password updated", nil)
}

// DeleteMyAccount removes the caller's account and station membership. A
// station admin has to hand over administration first, so no station is
// left without one.
func (h *Handler) DeleteMyAccount(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	membership, err := h.repository.GetMembershipByUserID(myInfo.ID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		h.internalServerError(w, r, err)
		return
	}

	if membership != nil {
		if membership.Role == domain.RoleAdmin {
			h.errorResponse(w, r, "hand over station administration before deleting your account")
			return
		}
		if err := h.repository.DeleteMembership(membership.ID); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	if err := h.repository.DeleteUser(myInfo.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:    "__wachplan_token",
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
		Path:    "/",
	})

	h.successResponse(w, r, "account deleted", nil)
}
