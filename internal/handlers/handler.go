package handlers

import (
	"go.uber.org/zap"

	"github.com/devconnect/profile-service/internal/github"
	"github.com/devconnect/profile-service/internal/service"
)

// Handler bundles the request handlers for the whole API surface.
type Handler struct {
	users    *service.UserService
	profiles *service.ProfileService
	github   *github.Client
	log      *zap.Logger
}

func NewHandler(users *service.UserService, profiles *service.ProfileService, gh *github.Client, logger *zap.Logger) *Handler {
	return &Handler{users: users, profiles: profiles, github: gh, log: logger}
}
