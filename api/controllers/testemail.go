package controllers

import (
	"fmt"
	"net/http"

	"github.com/cognitiondigest/digest-backend/api/responses"
	"github.com/cognitiondigest/digest-backend/api/validators"
	pkgerrors "github.com/cognitiondigest/digest-backend/pkg/errors"
	"github.com/cognitiondigest/digest-backend/pkg/logger"
	"github.com/cognitiondigest/digest-backend/pkg/mailer"
)

type testEmailRequest struct {
	Email string `json:"email" validate:"required"`
}

type testEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TestEmail sends a canned digest to the given address so operators can
// verify the mail transport end to end.
func TestEmail(m mailer.Mailer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "mailer unavailable"))
			return
		}

		var payload testEmailRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := m.SendTest(r.Context(), payload.Email); err != nil {
			if logg != nil {
				logg.Error(r.Context(), "test email send failed", err)
			}
			responses.WriteJSON(w, http.StatusInternalServerError, testEmailResponse{
				Success: false,
				Message: "Failed to send test email",
			})
			return
		}

		responses.WriteJSON(w, http.StatusOK, testEmailResponse{
			Success: true,
			Message: fmt.Sprintf("Test email sent to %s", payload.Email),
		})
	}
}
