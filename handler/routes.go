package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phbpx/leadgate"
	_ "github.com/phbpx/leadgate/docs" // OpenAPI description
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riandyrn/otelchi"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

// APIConfig contains all the mandatory systems required by handlers.
type APIConfig struct {
	ServerName     string
	Log            *otelzap.SugaredLogger
	Leads          leadgate.LeadService
	DBCheck        StatusChecker
	AdminToken     string
	AllowedOrigins []string
	IntakeLimit    RateLimitConfig
}

// API constructs the router with all application routes defined.
//
//	@title						Leads API
//	@version					1.0
//	@description				Captures emails and gates the app download behind operator approval.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Admin token. Format: "Bearer {token}".
func API(cfg APIConfig) http.Handler {
	leadHandler := NewLeadHandler(cfg.Leads, cfg.Log)
	healthHandler := NewHealthHandler(cfg.DBCheck, cfg.Log)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(otelchi.Middleware(cfg.ServerName, otelchi.WithChiRoutes(r)))
	r.Use(Metrics)
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		}))
	}

	r.Get("/livez", healthHandler.Livez)
	r.Get("/readyz", healthHandler.Readyz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	r.Route("/leads", func(r chi.Router) {
		r.With(RateLimit(cfg.IntakeLimit, cfg.Log)).Post("/", leadHandler.Create)
		r.Get("/{id}", leadHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(AdminOnly(cfg.AdminToken))
			r.Get("/", leadHandler.List)
			r.Patch("/", leadHandler.SetApproved)
			r.Patch("/{id}", leadHandler.SetApproved)
		})
	})

	return r
}
