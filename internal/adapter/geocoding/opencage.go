package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"restaurant-backend/internal/core/domain/models"
	"restaurant-backend/pkg/config"
	"strconv"
	"time"
)

const DefaultTimeout = 10 * time.Second

// OpenCage reverse-geocodes coordinates with the OpenCage Data API.
type OpenCage struct {
	cfg  config.OpenCageConfig
	http *http.Client
}

func NewOpenCage(cfg config.OpenCageConfig, timeout time.Duration) *OpenCage {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OpenCage{cfg: cfg, http: &http.Client{Timeout: timeout}}
}

// ReverseGeocode returns the formatted address of the best match.
func (o *OpenCage) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	if !o.cfg.GeocodingConfigured() {
		return "", models.ErrorGeocodingNotConfigured
	}

	u, err := url.Parse(o.cfg.Endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrorGeocodingUpstream, err)
	}
	q := u.Query()
	// a space encodes as "+", giving the lat+lng query form
	q.Set("q", formatCoord(lat)+" "+formatCoord(lng))
	q.Set("key", o.cfg.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrorGeocodingUpstream, err)
	}

	resp, err := o.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrorGeocodingUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", models.ErrorGeocodingUpstream, resp.StatusCode)
	}

	var result struct {
		Results []struct {
			Formatted string `json:"formatted"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrorGeocodingUpstream, err)
	}

	if len(result.Results) == 0 || result.Results[0].Formatted == "" {
		return "", models.ErrorAddressNotFound
	}
	return result.Results[0].Formatted, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
