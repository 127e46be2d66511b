package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/devconnect/profile-service/internal/service"
	"github.com/devconnect/profile-service/internal/utils"
)

type registerReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Register creates a user account and returns a signed token.
// POST /api/users
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "invalid body"})
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	token, err := h.users.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": []fiber.Map{{"msg": "Email already exists."}},
			})
		}
		h.log.Error("register failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "server error"})
	}

	return c.JSON(fiber.Map{"message": "user registered!", "token": token})
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates credentials and returns a signed token.
// POST /api/auth
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "invalid body"})
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	token, err := h.users.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": []fiber.Map{{"msg": "email does not exist"}},
			})
		case errors.Is(err, service.ErrWrongPassword):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": []fiber.Map{{"msg": "wrong password"}},
			})
		}
		h.log.Error("login failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "server error"})
	}

	return c.JSON(fiber.Map{"message": "user authenticated!", "token": token})
}

// Me returns the authenticated user's record without the password.
// GET /api/auth
func (h *Handler) Me(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	u, err := h.users.CurrentUser(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "user not found"})
		}
		h.log.Error("current user lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "server error"})
	}
	return c.JSON(u)
}
