package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/stylehaven/stylehaven-backend/api/middleware"
	"github.com/stylehaven/stylehaven-backend/api/responses"
	"github.com/stylehaven/stylehaven-backend/api/validators"
	"github.com/stylehaven/stylehaven-backend/internal/checkout"
	pkgerrors "github.com/stylehaven/stylehaven-backend/pkg/errors"
	"github.com/stylehaven/stylehaven-backend/pkg/logger"
)

// Checkout converts the signed-in shopper's cart into an order. An empty cart
// is not an error: the storefront is told to send the shopper back to the
// catalog.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		raw := middleware.UserIDFromContext(r.Context())
		userID, err := uuid.Parse(raw)
		if raw == "" || err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to check out"))
			return
		}

		var body checkout.ShippingInfo
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Checkout(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if result.EmptyCart {
			responses.WriteSuccess(w, map[string]any{
				"status":   "empty_cart",
				"redirect": "/products",
			})
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"status": "placed",
			"order":  result.Order,
		})
	}
}
