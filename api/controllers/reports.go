package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cognitiondigest/digest-backend/api/responses"
	"github.com/cognitiondigest/digest-backend/api/validators"
	"github.com/cognitiondigest/digest-backend/internal/reports"
	pkgerrors "github.com/cognitiondigest/digest-backend/pkg/errors"
	"github.com/cognitiondigest/digest-backend/pkg/logger"
)

type createDeliveryRequest struct {
	Method     string `json:"method" validate:"required"`
	Address    string `json:"address,omitempty"`
	WebhookURL string `json:"webhook_url,omitempty"`
}

type createReportRequest struct {
	Source    string                `json:"source" validate:"required"`
	ChannelID string                `json:"channel_id,omitempty"`
	VideoID   string                `json:"video_id,omitempty"`
	URL       string                `json:"url,omitempty"`
	Format    string                `json:"format" validate:"required"`
	Language  string                `json:"language" validate:"required"`
	Delivery  createDeliveryRequest `json:"delivery" validate:"required"`
}

func (r createReportRequest) toInput() reports.CreateReportInput {
	return reports.CreateReportInput{
		Source:    r.Source,
		ChannelID: r.ChannelID,
		VideoID:   r.VideoID,
		URL:       r.URL,
		Format:    r.Format,
		Language:  r.Language,
		Delivery: reports.DeliveryInput{
			Method:     r.Delivery.Method,
			Address:    r.Delivery.Address,
			WebhookURL: r.Delivery.WebhookURL,
		},
	}
}

type createReportResponse struct {
	Status         string           `json:"status"`
	ReportID       string           `json:"report_id"`
	Summary        *reports.Summary `json:"summary,omitempty"`
	DeliveryStatus string           `json:"delivery_status"`
	Timestamp      string           `json:"timestamp"`
}

// CreateReport accepts a digest submission and returns the processing
// acknowledgement. The summary is produced later by the worker, so the
// response never carries one.
func CreateReport(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		var payload createReportRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusCreated, createReportResponse{
			Status:         "success",
			ReportID:       result.ReportID,
			DeliveryStatus: string(result.DeliveryStatus),
			Timestamp:      result.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
}

// GetReport returns the client-visible projection of a report.
func GetReport(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		id := chi.URLParam(r, "reportId")
		report, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if report == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Report %s not found", id)))
			return
		}

		responses.WriteJSON(w, http.StatusOK, reports.Project(report))
	}
}
