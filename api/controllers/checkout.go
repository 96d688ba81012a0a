package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rabuste-coffee/rabuste-backend/api/responses"
	"github.com/rabuste-coffee/rabuste-backend/api/validators"
	"github.com/rabuste-coffee/rabuste-backend/internal/checkout"
	"github.com/rabuste-coffee/rabuste-backend/pkg/enums"
	pkgerrors "github.com/rabuste-coffee/rabuste-backend/pkg/errors"
	"github.com/rabuste-coffee/rabuste-backend/pkg/logger"
	"github.com/rabuste-coffee/rabuste-backend/pkg/types"
)

type checkoutPayload struct {
	OrderType       string         `json:"order_type" validate:"omitempty,oneof=menu art mixed"`
	ItemIDs         []string       `json:"item_ids" validate:"omitempty,dive,uuid"`
	CustomerName    string         `json:"customer_name" validate:"required"`
	CustomerEmail   string         `json:"customer_email" validate:"required,email"`
	PaymentMethod   string         `json:"payment_method" validate:"required,oneof=online cash cod"`
	PaymentID       *string        `json:"payment_id"`
	DeliveryAddress *types.Address `json:"delivery_address"`
	Notes           *string        `json:"notes"`
}

// Checkout converts the selected cart items into a pending order.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := requireUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload checkoutPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := checkout.Input{
			CustomerName:    payload.CustomerName,
			CustomerEmail:   payload.CustomerEmail,
			PaymentID:       payload.PaymentID,
			DeliveryAddress: payload.DeliveryAddress,
			Notes:           payload.Notes,
		}

		if payload.OrderType != "" {
			orderType, err := enums.ParseOrderType(payload.OrderType)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order type"))
				return
			}
			input.OrderType = orderType
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}
		input.PaymentMethod = method

		for _, raw := range payload.ItemIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
				return
			}
			input.ItemIDs = append(input.ItemIDs, id)
		}

		order, err := svc.Checkout(ctx, userID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
