package routes

import (
	"net/http"

	"github.com/Dosada05/manager-directory/handlers"
	"github.com/Dosada05/manager-directory/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	submissionHandler *handlers.SubmissionHandler,
	managerHandler *handlers.ManagerHandler,
	maintenanceHandler *handlers.MaintenanceHandler,
	webSocketHandler *handlers.WebSocketHandler,
	healthHandler *handlers.HealthHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	// The public site is a static frontend on another origin; CORS stays
	// wide open and answers every OPTIONS preflight.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	router.Post("/auth/signin", authHandler.SignIn)

	router.Route("/api/submissions", func(r chi.Router) {
		// Public intake.
		r.Post("/", submissionHandler.Create)

		// Reviewer-only listing and transitions.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.RequireAdmin)

			r.Get("/", submissionHandler.List)
			r.Put("/", submissionHandler.Review)
		})
	})

	router.Route("/api/managers", func(r chi.Router) {
		r.Get("/", managerHandler.List)
		r.Get("/manager", managerHandler.GetByID)
	})

	// Both jobs rewrite whole sheets: POST-only, admin-only.
	router.Route("/api/maintenance", func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Use(middleware.RequireAdmin)

		r.Post("/rebuild", maintenanceHandler.Rebuild)
		r.Post("/repair", maintenanceHandler.Repair)
	})

	router.Get("/ws/review", webSocketHandler.ServeWs)

	router.Get("/healthz", healthHandler.Check)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}
