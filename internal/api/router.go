package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"quadsolver/internal/auth"
)

// SetupRouter настраивает маршруты для API
func SetupRouter(authHandler *AuthHandler, solverHandler *SolverHandler, tokens *auth.Manager) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// Публичные маршруты
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Get("/token-info", authHandler.TokenInfo)
		r.Post("/validate", solverHandler.Validate)

		// Защищенные маршруты
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware(AuthError))
			r.Post("/solve", solverHandler.Solve)
			r.Get("/history", solverHandler.History)
			r.Get("/history/{id}", solverHandler.HistoryItem)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		SendErrorResponse(w, http.StatusNotFound, "Not found")
	})

	return r
}
