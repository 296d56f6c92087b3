package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleViewer Role = "VIEWER"
)

// Membership binds a user to a station. A user holds at most one
// membership; the role governs everything the user may do there.
type Membership struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"userId"`
	StationID  uuid.UUID  `json:"stationId"`
	DivisionID *uuid.UUID `json:"divisionId"`
	Role       Role       `json:"role"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// StationMember is a membership joined with the member's account data,
// as listed on the station's user management screen.
type StationMember struct {
	Membership
	Name  string `json:"name"`
	Email string `json:"email"`
}

type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "PENDING"
	JoinRequestApproved JoinRequestStatus = "APPROVED"
	JoinRequestRejected JoinRequestStatus = "REJECTED"
)

type JoinRequest struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.UUID         `json:"userId"`
	UserName  string            `json:"userName"`
	UserEmail string            `json:"userEmail"`
	StationID uuid.UUID         `json:"stationId"`
	Status    JoinRequestStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}
