package geocode

import (
	"context"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/internal/core/port"
	"restaurant-backend/pkg/logger"
)

type Service struct {
	log      logger.Logger
	geocoder port.Geocoder
}

func NewGeocodeService(geocoder port.Geocoder, log logger.Logger) *Service {
	return &Service{log: log, geocoder: geocoder}
}

// Resolve turns coordinates into a human-readable address.
func (svc *Service) Resolve(ctx context.Context, lat, lng float64) (string, error) {
	address, err := svc.geocoder.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		svc.log.Error(ctx, types.ActionGeocodeFailed, "reverse geocoding failed", err, "lat", lat, "lng", lng)
		return "", err
	}
	svc.log.Debug(ctx, types.ActionGeocodeResolved, "address resolved", "lat", lat, "lng", lng)
	return address, nil
}
