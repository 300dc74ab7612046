package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	appMiddleware "github.com/devconnector/backend/internal/middleware"
)

// NewRouter wires every API route. Registration, login, the public profile
// reads and the GitHub proxy are open; everything else sits behind the token
// guard.
func NewRouter(
	jwtSecret string,
	authHandler *AuthHandler,
	profileHandler *ProfileHandler,
	postHandler *PostHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", appMiddleware.TokenHeader},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	tokenAuth := appMiddleware.TokenAuth(jwtSecret)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", authHandler.Register)
		r.Post("/auth", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(tokenAuth)
			r.Get("/auth", authHandler.Me)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", profileHandler.List)
			r.Get("/user/{userID}", profileHandler.GetByUserID)
			r.Get("/github/{username}", profileHandler.Github)

			r.Group(func(r chi.Router) {
				r.Use(tokenAuth)
				r.Get("/me", profileHandler.Me)
				r.Post("/", profileHandler.Upsert)
				r.Delete("/", profileHandler.DeleteAccount)
				r.Put("/experience", profileHandler.AddExperience)
				r.Delete("/experience/{expID}", profileHandler.RemoveExperience)
				r.Put("/education", profileHandler.AddEducation)
				r.Delete("/education/{eduID}", profileHandler.RemoveEducation)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Use(tokenAuth)
			r.Post("/", postHandler.Create)
			r.Get("/", postHandler.List)
			r.Get("/{postID}", postHandler.Get)
			r.Delete("/{postID}", postHandler.Delete)
			r.Put("/like/{postID}", postHandler.Like)
			r.Put("/unlike/{postID}", postHandler.Unlike)
		})
	})

	return r
}
