package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stylehaven/stylehaven-backend/api/middleware"
	"github.com/stylehaven/stylehaven-backend/api/responses"
	"github.com/stylehaven/stylehaven-backend/api/validators"
	"github.com/stylehaven/stylehaven-backend/internal/cart"
	"github.com/stylehaven/stylehaven-backend/pkg/enums"
	pkgerrors "github.com/stylehaven/stylehaven-backend/pkg/errors"
	"github.com/stylehaven/stylehaven-backend/pkg/logger"
)

// cartOwner resolves the cart identity for the request: the authenticated
// user when a bearer token was presented, otherwise the anonymous cart
// session token.
func cartOwner(r *http.Request) (cart.Owner, error) {
	if raw := middleware.UserIDFromContext(r.Context()); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return cart.Owner{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid user identity")
		}
		return cart.ForUser(userID), nil
	}
	if token := middleware.CartSessionFromContext(r.Context()); token != "" {
		return cart.ForSession(token), nil
	}
	return cart.Owner{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "cart identity required")
}

// CartGet returns the current cart without creating one.
func CartGet(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		owner, err := cartOwner(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.GetCart(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"cart": result})
	}
}

// CartAddItem adds one unit of a product variant to the cart.
func CartAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		owner, err := cartOwner(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body cart.AddItemInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AddItem(r.Context(), owner, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"cart": result})
	}
}

// CartMutateItem applies an increase, decrease, or remove action to a line.
func CartMutateItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		owner, err := cartOwner(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := parseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		action, err := enums.ParseCartAction(chi.URLParam(r, "action"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown cart action"))
			return
		}

		result, err := svc.MutateItem(r.Context(), owner, itemID, action)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"cart": result})
	}
}
