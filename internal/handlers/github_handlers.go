package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/devconnect/profile-service/internal/github"
)

// GithubRepos relays a user's latest GitHub repositories.
// GET /api/profile/github/:username
func (h *Handler) GithubRepos(c *fiber.Ctx) error {
	repos, err := h.github.Repos(c.Context(), c.Params("username"))
	if err != nil {
		if errors.Is(err, github.ErrNoProfile) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"msg": "No GitHub profile found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "server error"})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(repos)
}
