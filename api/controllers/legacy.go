package controllers

import (
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"github.com/cognitiondigest/digest-backend/api/responses"
	"github.com/cognitiondigest/digest-backend/api/validators"
	"github.com/cognitiondigest/digest-backend/internal/reports"
	pkgerrors "github.com/cognitiondigest/digest-backend/pkg/errors"
	"github.com/cognitiondigest/digest-backend/pkg/logger"
)

var legacyCreatedAtPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?Z$`)

type legacyUpsertRequest struct {
	Title     *string `json:"title,omitempty"`
	CreatedAt *string `json:"createdAt,omitempty"`
}

type legacyGetResponse struct {
	ID      string                `json:"id"`
	Report  *reports.LegacyReport `json:"report"`
	Message string                `json:"message"`
}

type legacyUpsertResponse struct {
	ID      string `json:"id"`
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// LegacyGetReport serves the old report lookup. Unknown ids are not an
// error; the report field is simply null.
func LegacyGetReport(store *reports.LegacyStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "legacy report store unavailable"))
			return
		}

		id := chi.URLParam(r, "reportId")
		resp := legacyGetResponse{
			ID:      id,
			Message: "placeholder – implement data source later",
		}
		if report, ok := store.Get(id); ok {
			resp.Report = &report
		}
		responses.WriteJSON(w, http.StatusOK, resp)
	}
}

// LegacyUpsertReport merges the payload into the record under the given id.
// Only title and createdAt are accepted; anything else is rejected, and
// omitted fields preserve what is already stored.
func LegacyUpsertReport(store *reports.LegacyStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "legacy report store unavailable"))
			return
		}

		var payload legacyUpsertRequest
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		if payload.CreatedAt != nil && *payload.CreatedAt != "" && !legacyCreatedAtPattern.MatchString(*payload.CreatedAt) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation,
				"Invalid payload: createdAt must be ISO-8601 string (e.g., 2025-01-05T10:15:00Z)"))
			return
		}

		id := chi.URLParam(r, "reportId")
		store.Upsert(id, payload.Title, payload.CreatedAt)
		responses.WriteJSON(w, http.StatusOK, legacyUpsertResponse{
			ID:      id,
			OK:      true,
			Message: "placeholder – create/update not implemented",
		})
	}
}
