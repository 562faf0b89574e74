package httpapi

import (
	"ImaniConsole/internal/auth"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures the operator HTTP router.
func NewRouter(h *Handlers, gate *auth.Gate, trustedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(trustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   trustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})

	// Auth routes (public)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// Protected routes (require a session token)
	r.Route("/api", func(r chi.Router) {
		r.Use(RequireAuth(gate))

		r.Get("/dashboard", h.Dashboard)
		r.Get("/accounts", h.Accounts)
		r.Get("/listings", h.Listings)
		r.Post("/refresh", h.Refresh)

		r.Post("/listings/{id}/approve", h.ApproveListing)
		r.Post("/listings/{id}/reject", h.RejectListing)
		r.Post("/sellers/{id}/approve", h.ApproveSeller)
		r.Post("/sellers/{id}/reject", h.RejectSeller)
	})

	return r
}
