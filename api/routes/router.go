package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cognitiondigest/digest-backend/api/controllers"
	"github.com/cognitiondigest/digest-backend/api/middleware"
	"github.com/cognitiondigest/digest-backend/internal/reports"
	pkgAuth "github.com/cognitiondigest/digest-backend/pkg/auth"
	"github.com/cognitiondigest/digest-backend/pkg/config"
	"github.com/cognitiondigest/digest-backend/pkg/logger"
	"github.com/cognitiondigest/digest-backend/pkg/mailer"
)

// NewRouter assembles the full HTTP surface: public probes, docs, and the
// OAuth flow, plus the token-or-session gated /api subtree.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	reportService reports.Service,
	legacyStore *reports.LegacyStore,
	mail mailer.Mailer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Get("/healthz", controllers.Healthz())
	r.Get("/docs", controllers.Docs())
	r.Get("/openapi.yaml", controllers.OpenAPISpec())

	r.Route("/auth", func(r chi.Router) {
		if cfg.Google.Configured() {
			oauthCfg := pkgAuth.NewGoogleOAuthConfig(cfg.Google, cfg.App.PublicBaseURL())
			r.Get("/google", controllers.GoogleLogin(oauthCfg, cfg.App.IsProd()))
			r.Get("/google/callback", controllers.GoogleCallback(cfg, oauthCfg, logg))
		} else if logg != nil {
			logg.Warn(context.Background(), "google oauth not configured, login routes not mounted")
		}
		r.Get("/me", controllers.AuthMe(cfg.Auth))
		r.Post("/logout", controllers.AuthLogout(cfg.Auth))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Auth, logg))

		r.Post("/reports", controllers.CreateReport(reportService, logg))
		r.Get("/reports/{reportId}", controllers.GetReport(reportService, logg))

		r.Get("/report/{reportId}", controllers.LegacyGetReport(legacyStore, logg))
		r.Post("/report/{reportId}", controllers.LegacyUpsertReport(legacyStore, logg))

		r.Post("/test/email", controllers.TestEmail(mail, logg))
	})

	return r
}
