package http

import (
	"errors"
	"math"
	"net/http"
	"restaurant-backend/internal/core/domain/models"
	"restaurant-backend/internal/core/port"
	"restaurant-backend/pkg/logger"
	"strconv"
)

type GeocodeHandle struct {
	svc port.GeocodeService
	log logger.Logger
}

func NewGeocodeHandle(svc port.GeocodeService, log logger.Logger) *GeocodeHandle {
	return &GeocodeHandle{svc: svc, log: log}
}

func (h *GeocodeHandle) GetAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		lat, errLat := parseCoord(r.URL.Query().Get("lat"))
		lng, errLng := parseCoord(r.URL.Query().Get("lng"))
		if errLat != nil || errLng != nil {
			writeError(ctx, h.log, w, http.StatusUnprocessableEntity, "lat and lng must be numbers")
			return
		}

		address, err := h.svc.Resolve(ctx, lat, lng)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrorGeocodingNotConfigured):
				writeError(ctx, h.log, w, http.StatusInternalServerError, "OpenCage API key not configured")
			case errors.Is(err, models.ErrorAddressNotFound):
				writeError(ctx, h.log, w, http.StatusNotFound, "address not found")
			default:
				writeError(ctx, h.log, w, http.StatusBadGateway, "failed to fetch address")
			}
			return
		}

		writeJSON(ctx, h.log, w, http.StatusOK, map[string]string{"address": address})
	}
}

func parseCoord(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}
