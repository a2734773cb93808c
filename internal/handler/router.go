package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/payam/backend/pkg/auth"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router assembles the full API surface. Admin routes are wrapped in
// RequireAuth + RequireAdmin; everything else is public.
func Router(h *Handler, authHandler *AuthHandler, subHandler *SubmissionHandler, sessionSecret []byte) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger)
	r.Use(SecurityHeaders)

	r.Get("/api/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/api/contact", subHandler.Submit)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.SignUp)
		r.Post("/signin", authHandler.SignIn)
		r.Post("/signout", authHandler.SignOut)
		r.Get("/me", authHandler.Me)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(auth.RequireAuth(sessionSecret))
		r.Use(auth.RequireAdmin)
		r.Get("/submissions", subHandler.AdminList)
		r.Patch("/submissions/{id}/status", subHandler.UpdateStatus)
	})

	return h.CORS(r)
}
