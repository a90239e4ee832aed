package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"voicebot-backend/internal/handlers"
	"voicebot-backend/internal/middleware"
)

func New(
	sessionAuth *middleware.SessionAuth,
	authHandler *handlers.AuthHandler,
	chatHandler *handlers.ChatHandler,
	userHandler *handlers.UserHandler,
	adminHandler *handlers.AdminHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(sessionAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── AI Routes ────
		r.Route("/ai", func(r chi.Router) {
			r.Get("/status", chatHandler.AIStatus) // Public

			r.Group(func(r chi.Router) {
				r.Use(sessionAuth.Middleware)
				r.Get("/test", chatHandler.TestCompletion)
			})
		})

		// ──── Chat Routes ────
		r.Route("/chat", func(r chi.Router) {
			r.Use(sessionAuth.Middleware)
			r.Post("/message", chatHandler.ProcessMessage)
			r.Get("/history", userHandler.History)
		})

		// ──── User Routes ────
		r.Route("/user", func(r chi.Router) {
			r.Use(sessionAuth.Middleware)
			r.Get("/me", userHandler.Me)
		})

		// ──── Admin Routes ────
		r.Route("/admin", func(r chi.Router) {
			r.Use(sessionAuth.Middleware)
			r.Get("/database", adminHandler.Database)
		})
	})

	return r
}
