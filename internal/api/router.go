package api

import (
	"net/http"

	"github.com/devconnect/devconnect-api/internal/api/handlers"
	"github.com/devconnect/devconnect-api/internal/api/middleware"
	"github.com/devconnect/devconnect-api/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handlers.NewAuthHandler(services.Auth)
	profileHandler := handlers.NewProfileHandler(services.Profile, services.Github)

	authGate := middleware.Auth(services.Token)

	r.Route("/api", func(r chi.Router) {
		// Registration
		r.Post("/users", authHandler.Register)

		// Login and identity
		r.Route("/auth", func(r chi.Router) {
			r.Post("/", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(authGate)
				r.Get("/", authHandler.Me)
			})
		})

		r.Route("/profile", func(r chi.Router) {
			// Public profile routes
			r.Get("/", profileHandler.List)
			r.Get("/user/{userID}", profileHandler.GetByUserID)
			r.Get("/github/{username}", profileHandler.GithubRepos)

			// Protected profile routes
			r.Group(func(r chi.Router) {
				r.Use(authGate)
				r.Get("/me", profileHandler.Me)
				r.Post("/", profileHandler.Upsert)
				r.Delete("/", profileHandler.Delete)
				r.Put("/experience", profileHandler.AddExperience)
				r.Delete("/experience/{entryID}", profileHandler.RemoveExperience)
				r.Put("/education", profileHandler.AddEducation)
				r.Delete("/education/{entryID}", profileHandler.RemoveEducation)
			})
		})
	})

	return r
}
