package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/technova/leave-management/internal/dashboard"
	"github.com/technova/leave-management/internal/employee"
	"github.com/technova/leave-management/internal/identity"
	"github.com/technova/leave-management/internal/leave"
	"github.com/technova/leave-management/internal/transport/middleware"
	"github.com/technova/leave-management/internal/transport/swagger"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, identityHandler *identity.Handler, employeeHandler *employee.Handler, leaveHandler *leave.Handler, dashboardHandler *dashboard.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.Metrics)

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Prometheus scrape endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", identityHandler.Login)
			sr.Post("/refresh", identityHandler.RefreshToken)
			sr.Post("/logout", identityHandler.Logout)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(identityHandler.AuthMiddleware)

			pr.Get("/dashboard", dashboardHandler.GetDashboard)

			// Employee directory is administrator-only
			pr.Route("/employees", func(er chi.Router) {
				er.Use(identityHandler.RequireAdmin)

				er.Get("/", employeeHandler.ListEmployees)
				er.Post("/", employeeHandler.CreateEmployee)
				er.Get("/{id}", employeeHandler.GetEmployee)
				er.Put("/{id}", employeeHandler.UpdateEmployee)
				er.Delete("/{id}", employeeHandler.DeleteEmployee)
			})

			// Leave requests: visible scope depends on the caller's role
			pr.Route("/leaves", func(lr chi.Router) {
				lr.Get("/", leaveHandler.ListLeaves)
				lr.Post("/", leaveHandler.CreateLeave)
				lr.Get("/{id}", leaveHandler.GetLeave)
				lr.Put("/{id}", leaveHandler.UpdateLeave)
				lr.Delete("/{id}", leaveHandler.CancelLeave)

				// Decision routes with admin protection
				lr.Group(func(dr chi.Router) {
					dr.Use(identityHandler.RequireAdmin)
					dr.Patch("/{id}/approve", leaveHandler.ApproveLeave)
					dr.Patch("/{id}/reject", leaveHandler.RejectLeave)
				})
			})
		})
	})
}
