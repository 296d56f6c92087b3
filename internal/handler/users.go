package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
	"github.com/wachplan-dev/wachplan/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetStationMembers(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)

	members, err := h.repository.GetStationMembers(membership.StationID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched members", members)
}

// InviteUser creates an account with a generated password, adds it to the
// station and mails the credentials to the new member.
func (h *Handler) InviteUser(w http.ResponseWriter, r *http.Request) {
	membership := r.Context().Value(MembershipCtx).(*domain.Membership)

	var req struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required,email"`
		Role  string `json:"role" validate:"required,oneof=ADMIN EDITOR VIEWER"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	password := utils.GenerateRandomPassword(h.config.NewUser.PasswordLength)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}

	if err := h.repository.CreateUser(user); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "users_email_key":
			h.badRequest(w, r, errors.New("email is already registered"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	newMembership := &domain.Membership{
		UserID:    user.ID,
		StationID: membership.StationID,
		Role:      domain.Role(req.Role),
	}

	if err := h.repository.CreateMembership(newMembership); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	station, err := h.repository.GetStationByID(membership.StationID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	mailMessage := domain.MailMessage{
		Type: "invite_user",
		To:   user.Email,
		Data: domain.InviteUserMailData{
			Name:     user.Name,
			Station:  station.Name,
			Email:    user.Email,
			Password: password,
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "user invited", user)
}

func (h *Handler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(MemberCtx).(*domain.Membership)
	myMembership := r.Context().Value(MembershipCtx).(*domain.Membership)

	var req struct {
		Role       *string `json:"role" validate:"omitempty,oneof=ADMIN EDITOR VIEWER"`
		DivisionID *string `json:"divisionId" validate:"omitempty,uuid"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// an admin cannot demote themselves, or a station could end up
	// without anyone able to manage it
	if member.ID == myMembership.ID && req.Role != nil && domain.Role(*req.Role) != domain.RoleAdmin {
		h.errorResponse(w, r, "you cannot change your own role")
		return
	}

	if req.Role != nil {
		member.Role = domain.Role(*req.Role)
	}
	if req.DivisionID != nil {
		divisionID, err := uuid.Parse(*req.DivisionID)
		if err != nil {
			h.errorResponse(w, r, "invalid division id")
			return
		}

		division, err := h.repository.GetDivisionByID(divisionID)
		if err != nil || division.StationID != myMembership.StationID {
			h.errorResponse(w, r, "division not found")
			return
		}
		member.DivisionID = &divisionID
	}

	if err := h.repository.UpdateMembership(member); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "member updated", member)
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(MemberCtx).(*domain.Membership)
	myMembership := r.Context().Value(MembershipCtx).(*domain.Membership)

	if member.ID == myMembership.ID {
		h.errorResponse(w, r, "you cannot remove yourself")
		return
	}

	if err := h.repository.DeleteMembership(member.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "member removed", nil)
}
