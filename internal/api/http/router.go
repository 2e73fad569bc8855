package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devconnector/api/internal/api/http/handlers"
	"github.com/devconnector/api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Auth           *handlers.AuthHandler
	Profiles       *handlers.ProfileHandler
	Posts          *handlers.PostsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")
	protect := cfg.AuthMiddleware.Handle

	api.Post("/users", cfg.Users.Register)

	api.Post("/auth", cfg.Auth.Login)
	api.Get("/auth", protect, cfg.Auth.Me)

	profile := api.Group("/profile")
	profile.Get("/", cfg.Profiles.List)
	profile.Get("/me", protect, cfg.Profiles.Me)
	profile.Get("/user/:user_id", cfg.Profiles.ByUser)
	profile.Get("/github/:username", cfg.Profiles.GitHubRepos)
	profile.Post("/", protect, cfg.Profiles.Upsert)
	profile.Delete("/", protect, cfg.Profiles.DeleteAccount)
	profile.Put("/experience", protect, cfg.Profiles.AddExperience)
	profile.Delete("/experience/:exp_id", protect, cfg.Profiles.RemoveExperience)
	profile.Put("/education", protect, cfg.Profiles.AddEducation)
	profile.Delete("/education/:edu_id", protect, cfg.Profiles.RemoveEducation)

	posts := api.Group("/posts", protect)
	posts.Post("/", cfg.Posts.Create)
	posts.Get("/", cfg.Posts.List)
	posts.Get("/:id", cfg.Posts.Get)
	posts.Delete("/:id", cfg.Posts.Delete)
	posts.Put("/like/:id", cfg.Posts.Like)
	posts.Put("/unlike/:id", cfg.Posts.Unlike)
	posts.Post("/comment/:id", cfg.Posts.Comment)
	posts.Delete("/comment/:id/:comment_id", cfg.Posts.Uncomment)
}
