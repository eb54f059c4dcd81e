package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sahilphalke/PlayTurf/internal/config"
	"github.com/Sahilphalke/PlayTurf/internal/handler"
	"github.com/Sahilphalke/PlayTurf/internal/middleware"
	"github.com/Sahilphalke/PlayTurf/internal/model"
)

type Handlers struct {
	Auth *handler.AuthHandler
	User *handler.UserHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, handlers Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", handlers.Auth.Register)
			auth.Post("/login", handlers.Auth.Login)
			auth.Post("/refresh", handlers.Auth.Refresh)
			auth.With(authMiddleware.RequireAuth).Get("/me", handlers.Auth.Me)
		})

		api.Route("/users", func(users chi.Router) {
			users.Use(authMiddleware.RequireAuth)
			users.With(authMiddleware.RequireRoles(model.RoleOwner)).Get("/", handlers.User.List)
			users.Put("/me", handlers.User.UpdateMe)
			users.With(authMiddleware.RequireRoles(model.RoleOwner)).Delete("/{user_id}", handlers.User.Delete)
		})
	})

	return r
}
