package http

import (
	"context"
	"errors"
	"net/http"
	"restaurant-backend/internal/core/domain/models"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/internal/core/port"
	"restaurant-backend/pkg/logger"
)

type OrderHandle struct {
	svc port.OrderService
	log logger.Logger
}

func NewOrderHandle(svc port.OrderService, log logger.Logger) *OrderHandle {
	return &OrderHandle{
		svc: svc,
		log: log,
	}
}

func (h *OrderHandle) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// the order flow must finish even if the client goes away
		ctx := context.WithoutCancel(r.Context())

		var newOrder models.CreateOrder
		if err := decodeBody(r, &newOrder); err != nil {
			h.log.Warn(ctx, types.ActionValidationFailed, "invalid order body", "reason", err.Error())
			writeError(ctx, h.log, w, http.StatusUnprocessableEntity, "invalid request body")
			return
		}

		h.log.Debug(ctx, types.ActionOrderReceived, "order received", "item", newOrder.Item)

		resp, err := h.svc.CreateOrder(ctx, newOrder)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrorValidationFailed):
				writeError(ctx, h.log, w, http.StatusUnprocessableEntity, err.Error())
			case errors.Is(err, models.ErrorDbTransactionFailed):
				writeError(ctx, h.log, w, http.StatusInternalServerError, "database error")
			default:
				writeError(ctx, h.log, w, http.StatusInternalServerError, "internal server error")
			}
			return
		}

		writeJSON(ctx, h.log, w, http.StatusCreated, resp)
	}
}

func (h *OrderHandle) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		orders, err := h.svc.ListOrders(ctx, models.DefaultListLimit)
		if err != nil {
			writeError(ctx, h.log, w, http.StatusInternalServerError, "database error")
			return
		}
		if orders == nil {
			orders = []models.Order{}
		}

		writeJSON(ctx, h.log, w, http.StatusOK, orders)
	}
}
