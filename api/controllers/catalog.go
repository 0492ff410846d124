package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/stylehaven/stylehaven-backend/api/responses"
	"github.com/stylehaven/stylehaven-backend/internal/catalog"
	"github.com/stylehaven/stylehaven-backend/pkg/enums"
	pkgerrors "github.com/stylehaven/stylehaven-backend/pkg/errors"
	"github.com/stylehaven/stylehaven-backend/pkg/logger"
)

// CatalogListProducts serves the storefront listing with optional filters.
func CatalogListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		filters, err := parseProductFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.ListProducts(r.Context(), *filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

// CatalogGetProduct serves a single active product detail by slug.
func CatalogGetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required"))
			return
		}

		product, err := svc.GetProduct(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"product": product})
	}
}

// CatalogLookups returns the category, size, and color filter options.
func CatalogLookups(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		section, err := parseSectionParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lookups, err := svc.GetLookups(r.Context(), section)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, lookups)
	}
}

func parseProductFilters(r *http.Request) (*catalog.ProductListFilters, error) {
	filters := catalog.ProductListFilters{
		CategorySlug: strings.TrimSpace(r.URL.Query().Get("category")),
		Query:        strings.TrimSpace(r.URL.Query().Get("q")),
		Sort:         catalog.ParseSort(r.URL.Query().Get("sort")),
	}

	section, err := parseSectionParam(r)
	if err != nil {
		return nil, err
	}
	filters.Section = section

	if raw := strings.TrimSpace(r.URL.Query().Get("max_price")); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil || price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "max_price must be a non-negative number")
		}
		filters.MaxPrice = &price
	}

	return &filters, nil
}

func parseSectionParam(r *http.Request) (*enums.CatalogSection, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("section"))
	if raw == "" {
		return nil, nil
	}
	section, err := enums.ParseCatalogSection(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown catalog section").WithDetails(map[string]any{"section": raw})
	}
	return &section, nil
}
