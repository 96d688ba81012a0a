package controllers

import (
	"net/http"
	"strings"

	"github.com/rabuste-coffee/rabuste-backend/api/responses"
	"github.com/rabuste-coffee/rabuste-backend/api/validators"
	"github.com/rabuste-coffee/rabuste-backend/internal/orders"
	"github.com/rabuste-coffee/rabuste-backend/pkg/enums"
	pkgerrors "github.com/rabuste-coffee/rabuste-backend/pkg/errors"
	"github.com/rabuste-coffee/rabuste-backend/pkg/logger"
)

type updateOrderStatusPayload struct {
	Status string `json:"status" validate:"required,oneof=pending completed cancelled"`
}

// AdminOrdersList returns orders across all users, optionally filtered by
// status.
func AdminOrdersList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var status *enums.OrderStatus
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			parsed, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			status = &parsed
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		page, err := svc.AdminList(ctx, status, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// AdminOrderUpdateStatus moves an order through its status machine. Completing
// an order with artwork lines also reports the purge outcome.
func AdminOrderUpdateStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		orderID, err := parseOrderIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateOrderStatusPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(payload.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		result, err := svc.AdminUpdateStatus(ctx, orderID, status)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
