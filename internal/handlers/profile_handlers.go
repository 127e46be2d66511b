package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/devconnect/profile-service/internal/repository"
	"github.com/devconnect/profile-service/internal/service"
	"github.com/devconnect/profile-service/internal/utils"
)

// MyProfile returns the caller's profile joined with name and avatar.
// GET /api/profile/me
func (h *Handler) MyProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	p, err := h.profiles.GetOwn(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoProfile) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "There is no profile for this user"})
		}
		h.log.Error("get own profile failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "server error"})
	}
	return c.JSON(p)
}

type upsertProfileReq struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status" validate:"required"`
	Skills         string `json:"skills" validate:"required"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// UpsertProfile creates or partially updates the caller's profile.
// POST /api/profile
func (h *Handler) UpsertProfile(c *fiber.Ctx) error {
	var req upsertProfileReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "invalid body"})
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	userID := c.Locals("user_id").(string)
	p, err := h.profiles.Upsert(c.Context(), userID, service.ProfileInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         req.Skills,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	})
	if err != nil {
		h.log.Error("profile upsert failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "server error"})
	}
	return c.JSON(p)
}

// ListProfiles returns every profile joined with owner name/avatar.
// GET /api/profile
func (h *Handler) ListProfiles(c *fiber.Ctx) error {
	out, err := h.profiles.ListAll(c.Context())
	if err != nil {
		h.log.Error("list profiles failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "server error"})
	}
	return c.JSON(out)
}

// ProfileByUser returns the profile owned by the user id in the path.
// Malformed and unknown ids share one response shape.
// GET /api/profile/user/:user_id
func (h *Handler) ProfileByUser(c *fiber.Ctx) error {
	p, err := h.profiles.GetByUser(c.Context(), c.Params("user_id"))
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Profile not found"})
		}
		h.log.Error("get profile by user failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "server error"})
	}
	return c.JSON(p)
}

// DeleteProfile removes the caller's profile and user record.
// DELETE /api/profile
func (h *Handler) DeleteProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	if err := h.profiles.DeleteOwn(c.Context(), userID); err != nil {
		h.log.Error("delete profile failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "server error"})
	}
	return c.JSON(fiber.Map{"msg": "User deleted"})
}

type experienceReq struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location"`
	From        string `json:"from" validate:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// AddExperience prepends a new experience entry.
// PUT /api/profile/experience
func (h *Handler) AddExperience(c *fiber.Ctx) error {
	var req experienceReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "invalid body"})
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}
	from, err := parseDate(req.From)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "invalid from date"})
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "invalid to date"})
	}

	userID := c.Locals("user_id").(string)
	p, err := h.profiles.AddExperience(c.Context(), userID, service.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return h.profileMutationError(c, err)
	}
	return c.JSON(p)
}

// DeleteExperience removes an experience entry by id.
// DELETE /api/profile/experience/:exp_id
func (h *Handler) DeleteExperience(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	p, err := h.profiles.RemoveExperience(c.Context(), userID, c.Params("exp_id"))
	if err != nil {
		if errors.Is(err, service.ErrBadEntryID) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Bad experience ID"})
		}
		return h.profileMutationError(c, err)
	}
	return c.JSON(p)
}

type educationReq struct {
	School       string `json:"school" validate:"required"`
	Degree       string `json:"degree" validate:"required"`
	FieldOfStudy string `json:"fieldofstudy" validate:"required"`
	From         string `json:"from" validate:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// AddEducation prepends a new education entry.
// PUT /api/profile/education
func (h *Handler) AddEducation(c *fiber.Ctx) error {
	var req educationReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "invalid body"})
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}
	from, err := parseDate(req.From)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "invalid from date"})
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "invalid to date"})
	}

	userID := c.Locals("user_id").(string)
	p, err := h.profiles.AddEducation(c.Context(), userID, service.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		return h.profileMutationError(c, err)
	}
	return c.JSON(p)
}

// DeleteEducation removes an education entry by id.
// DELETE /api/profile/education/:edu_id
func (h *Handler) DeleteEducation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	p, err := h.profiles.RemoveEducation(c.Context(), userID, c.Params("edu_id"))
	if err != nil {
		if errors.Is(err, service.ErrBadEntryID) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Bad education ID"})
		}
		return h.profileMutationError(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) profileMutationError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrNoProfile) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "There is no profile for this user"})
	}
	h.log.Error("profile mutation failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "server error"})
}

// parseDate accepts both plain dates and full RFC3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
