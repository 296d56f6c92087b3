package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // slog would mangle the multi-line trace
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("__wachplan_token")
		if err != nil {
			switch {
			case errors.Is(err, http.ErrNoCookie):
				h.errorResponse(w, r, "not logged in")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		tokenString := cookie.Value
		claims := &AuthClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.JWT.Secret), nil
		})
		if err != nil {
			h.errorResponse(w, r, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), SubCtxKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) myInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subString := r.Context().Value(SubCtxKey).(string)

		sub, err := uuid.Parse(subString)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		myInfo, err := h.repository.GetUserByID(sub)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "account not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), MyInfoCtx, myInfo)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// membership resolves the caller's station membership from the database on
// every request, so role changes take effect without a new login.
func (h *Handler) membership(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subString := r.Context().Value(SubCtxKey).(string)

		sub, err := uuid.Parse(subString)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		membership, err := h.repository.GetMembershipByUserID(sub)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "you are not a member of any station")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), MembershipCtx, membership)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) RequiredRole(roles []domain.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			membership := r.Context().Value(MembershipCtx).(*domain.Membership)
			if !slices.Contains(roles, membership.Role) {
				h.errorResponse(w, r, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (h *Handler) memberInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		membershipID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			h.errorResponse(w, r, "invalid member id")
			return
		}

		member, err := h.repository.GetMembershipByID(membershipID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "member not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		myMembership := r.Context().Value(MembershipCtx).(*domain.Membership)
		if member.StationID != myMembership.StationID {
			h.errorResponse(w, r, "member not found")
			return
		}

		ctx := context.WithValue(r.Context(), MemberCtx, member)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) joinRequestInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			h.errorResponse(w, r, "invalid join request id")
			return
		}

		jr, err := h.repository.GetJoinRequestByID(requestID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "join request not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		membership := r.Context().Value(MembershipCtx).(*domain.Membership)
		if jr.StationID != membership.StationID {
			h.errorResponse(w, r, "join request not found")
			return
		}

		ctx := context.WithValue(r.Context(), JoinRequestCtx, jr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) divisionInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		divisionID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			h.errorResponse(w, r, "invalid division id")
			return
		}

		division, err := h.repository.GetDivisionByID(divisionID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "division not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		membership := r.Context().Value(MembershipCtx).(*domain.Membership)
		if division.StationID != membership.StationID {
			h.errorResponse(w, r, "division not found")
			return
		}

		ctx := context.WithValue(r.Context(), DivisionCtx, division)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) personInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		personID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			h.errorResponse(w, r, "invalid person id")
			return
		}

		person, err := h.repository.GetPersonByID(personID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "person not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		membership := r.Context().Value(MembershipCtx).(*domain.Membership)
		if person.StationID != membership.StationID {
			h.errorResponse(w, r, "person not found")
			return
		}

		ctx := context.WithValue(r.Context(), PersonCtx, person)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) vehicleInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vehicleID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			h.errorResponse(w, r, "invalid vehicle id")
			return
		}

		vehicle, err := h.repository.GetVehicleConfigByID(vehicleID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "vehicle not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		membership := r.Context().Value(MembershipCtx).(*domain.Membership)
		if vehicle.StationID != membership.StationID {
			h.errorResponse(w, r, "vehicle not found")
			return
		}

		ctx := context.WithValue(r.Context(), VehicleCtx, vehicle)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) shiftTemplateInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		templateID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			h.errorResponse(w, r, "invalid template id")
			return
		}

		st, err := h.repository.GetShiftTemplateByID(templateID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "template not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		membership := r.Context().Value(MembershipCtx).(*domain.Membership)
		if st.StationID != membership.StationID {
			h.errorResponse(w, r, "template not found")
			return
		}

		ctx := context.WithValue(r.Context(), ShiftTemplateCtx, st)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) shiftInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		shiftID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			h.errorResponse(w, r, "invalid shift id")
			return
		}

		shift, err := h.repository.GetShiftByID(shiftID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "shift not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		membership := r.Context().Value(MembershipCtx).(*domain.Membership)
		if shift.StationID != membership.StationID {
			h.errorResponse(w, r, "shift not found")
			return
		}

		ctx := context.WithValue(r.Context(), ShiftCtx, shift)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
