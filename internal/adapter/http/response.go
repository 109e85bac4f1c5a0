package http

import (
	"context"
	"encoding/json"
	"net/http"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/pkg/logger"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(ctx context.Context, log logger.Logger, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error(ctx, types.ActionResponseFailed, "failed to encode response", err)
	}
}

func writeError(ctx context.Context, log logger.Logger, w http.ResponseWriter, status int, detail string) {
	writeJSON(ctx, log, w, status, errorResponse{Detail: detail})
}

// decodeBody reads a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
