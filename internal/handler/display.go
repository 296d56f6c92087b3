package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

type displayShift struct {
	*domain.Shift
	Assignments []*domain.Assignment `json:"assignments"`
}

type displayData struct {
	Station  *domain.Station         `json:"station"`
	Shifts   []*displayShift         `json:"shifts"`
	Vehicles []*domain.VehicleConfig `json:"vehicles"`
}

func displayCacheKey(stationID uuid.UUID) string {
	return fmt.Sprintf("display_%s", stationID)
}

// invalidateDisplayCache is best effort: the cache entry expires on its
// own within the TTL anyway.
func (h *Handler) invalidateDisplayCache(stationID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	if err := h.redisClient.Del(ctx, displayCacheKey(stationID)).Err(); err != nil {
		slog.Warn("failed to invalidate display cache", "stationID", stationID, "error", err)
	}
}

// GetDisplay serves the public wall display: the station, the published
// shifts currently running or up next, their crews and the vehicle
// layouts. Responses are cached briefly since displays poll continuously.
func (h *Handler) GetDisplay(w http.ResponseWriter, r *http.Request) {
	stationID, err := uuid.Parse(chi.URLParam(r, "stationID"))
	if err != nil {
		h.errorResponse(w, r, "invalid station id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	cached, err := h.redisClient.Get(ctx, displayCacheKey(stationID)).Result()
	if err == nil {
		var data displayData
		if err := json.Unmarshal([]byte(cached), &data); err == nil {
			h.successResponse(w, r, "fetched display", data)
			return
		}
	} else if err != redis.Nil {
		slog.Warn("display cache read failed", "stationID", stationID, "error", err)
	}

	station, err := h.repository.GetStationByID(stationID)
	if err != nil {
		h.errorResponse(w, r, "station not found")
		return
	}

	shifts, err := h.repository.GetCurrentAndNextShifts(stationID, time.Now().UTC())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	displayShifts := make([]*displayShift, 0, len(shifts))
	for _, s := range shifts {
		assignments, err := h.repository.GetAssignmentsByShift(s.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		displayShifts = append(displayShifts, &displayShift{Shift: s, Assignments: assignments})
	}

	vehicles, err := h.repository.GetVehicleConfigsByStation(stationID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	data := displayData{
		Station:  station,
		Shifts:   displayShifts,
		Vehicles: vehicles,
	}

	if encoded, err := json.Marshal(data); err == nil {
		if err := h.redisClient.Set(ctx, displayCacheKey(stationID), encoded, time.Duration(h.config.Display.CacheTTL)*time.Second).Err(); err != nil {
			slog.Warn("display cache write failed", "stationID", stationID, "error", err)
		}
	}

	h.successResponse(w, r, "fetched display", data)
}
