package controllers

import (
	"net/http"
	"strings"

	"github.com/rabuste-coffee/rabuste-backend/api/responses"
	"github.com/rabuste-coffee/rabuste-backend/internal/catalog"
	"github.com/rabuste-coffee/rabuste-backend/pkg/enums"
	pkgerrors "github.com/rabuste-coffee/rabuste-backend/pkg/errors"
	"github.com/rabuste-coffee/rabuste-backend/pkg/logger"
)

// MenuList returns available menu items, optionally filtered by category.
func MenuList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var category *enums.MenuCategory
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			parsed, err := enums.ParseMenuCategory(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			category = &parsed
		}

		items, err := svc.ListMenu(ctx, category)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// ArtworkList returns available artworks, optionally filtered by category.
func ArtworkList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var category *enums.ArtworkCategory
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			parsed, err := enums.ParseArtworkCategory(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			category = &parsed
		}

		artworks, err := svc.ListArtworks(ctx, category)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, artworks)
	}
}
