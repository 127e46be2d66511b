package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devconnect/profile-service/internal/handlers"
)

// Setup wires the API surface. authMW guards protected routes; limiter
// shields the two credential endpoints.
func Setup(app *fiber.App, h *handlers.Handler, authMW, limiter fiber.Handler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	api.Post("/users", limiter, h.Register)
	api.Post("/auth", limiter, h.Login)
	api.Get("/auth", authMW, h.Me)

	profile := api.Group("/profile")
	profile.Get("/me", authMW, h.MyProfile)
	profile.Post("/", authMW, h.UpsertProfile)
	profile.Get("/", h.ListProfiles)
	profile.Get("/user/:user_id", h.ProfileByUser)
	profile.Delete("/", authMW, h.DeleteProfile)

	profile.Put("/experience", authMW, h.AddExperience)
	profile.Delete("/experience/:exp_id", authMW, h.DeleteExperience)
	profile.Put("/education", authMW, h.AddEducation)
	profile.Delete("/education/:edu_id", authMW, h.DeleteEducation)

	profile.Get("/github/:username", h.GithubRepos)
}
