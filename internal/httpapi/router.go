package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eternavista/internal/api"
	"eternavista/internal/audit"
	"eternavista/internal/auth"
	"eternavista/internal/booking"
	"eternavista/internal/catalog"
	"eternavista/internal/dashboard"
	"eternavista/internal/user"
	"eternavista/pkg/config"
)

type Dependencies struct {
	Cfg config.Config
	DB  *pgxpool.Pool
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	usersRepo := user.NewRepository(deps.DB)
	auditRepo := audit.NewRepository(deps.DB)
	catalogRepo := catalog.NewRepository(deps.DB)
	bookingsRepo := booking.NewRepository(deps.DB)

	authHandlers := auth.Handlers{
		Cfg:   deps.Cfg,
		Users: usersRepo,
		Audit: auditRepo,
	}
	catalogHandlers := catalog.Handlers{
		Catalog: catalogRepo,
		Audit:   auditRepo,
	}
	bookingHandlers := booking.Handlers{
		Bookings: booking.NewWorkflow(catalogRepo, bookingsRepo),
	}
	statsHandlers := dashboard.Handlers{
		Stats: dashboard.NewRepository(deps.DB),
	}
	auditHandlers := audit.Handlers{Log: auditRepo}

	if len(deps.Cfg.AllowedOrigins) > 0 {
		r.Use(api.CORSMiddleware(api.CORSOptions{
			AllowedOrigins: deps.Cfg.AllowedOrigins,
			AllowedHeaders: []string{"Content-Type"},
		}))
	}
	r.Use(api.SessionAuth(deps.Cfg, usersRepo))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/register", authHandlers.Register)
	r.Post("/login", authHandlers.Login)
	r.Get("/logout", authHandlers.Logout)

	r.Route("/api", func(r chi.Router) {
		// Catalog reads are public so the landing pages work logged out.
		r.Get("/destinations", catalogHandlers.ListDestinations)
		r.Get("/venues", catalogHandlers.ListVenues)

		// Booking endpoints need an identity; role scoping happens inside.
		r.Group(func(r chi.Router) {
			r.Use(api.RequireAuth)

			r.Get("/bookings", bookingHandlers.List)
			r.Post("/bookings", bookingHandlers.Create)
			r.Get("/bookings/summary", bookingHandlers.Summary)
			r.Post("/bookings/{id}/pay", bookingHandlers.Pay)
		})

		// Admin-only mutations and reporting.
		r.Group(func(r chi.Router) {
			r.Use(api.RequireRole(user.RoleAdmin))

			r.Post("/destinations", catalogHandlers.CreateDestination)
			r.Put("/destinations/{id}", catalogHandlers.UpdateDestination)
			r.Delete("/destinations/{id}", catalogHandlers.DeleteDestination)

			r.Post("/venues", catalogHandlers.CreateVenue)
			r.Put("/venues/{id}", catalogHandlers.UpdateVenue)
			r.Delete("/venues/{id}", catalogHandlers.DeleteVenue)

			r.Patch("/bookings/{id}", bookingHandlers.PatchStatus)
			r.Delete("/bookings/{id}", bookingHandlers.Delete)

			r.Get("/users", authHandlers.ListUsers)
			r.Delete("/users/{id}", authHandlers.DeleteUser)

			r.Get("/admin/stats", statsHandlers.Get)
			r.Get("/admin/audit", auditHandlers.List)
		})
	})

	return r
}
