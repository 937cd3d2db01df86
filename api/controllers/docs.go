package controllers

import (
	"net/http"

	"github.com/cognitiondigest/digest-backend/openapi"
)

// Docs serves the swagger page over the embedded API description.
func Docs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(openapi.DocsHTML))
	}
}

// OpenAPISpec serves the embedded openapi.yaml.
func OpenAPISpec() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(openapi.Spec)
	}
}
