package controllers

import (
	"net/http"

	"github.com/cognitiondigest/digest-backend/api/responses"
)

// Healthz is the unauthenticated liveness probe.
func Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}
