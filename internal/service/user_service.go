package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/devconnect/profile-service/internal/auth"
	"github.com/devconnect/profile-service/internal/models"
	"github.com/devconnect/profile-service/internal/repository"
	"github.com/devconnect/profile-service/internal/utils"
)

var (
	ErrEmailTaken    = errors.New("email already exists")
	ErrEmailNotFound = errors.New("email does not exist")
	ErrWrongPassword = errors.New("wrong password")
	ErrUserNotFound  = errors.New("user not found")
)

// UserService handles registration, login and identity lookup.
type UserService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
	log    *zap.Logger
}

func NewUserService(users repository.UserRepository, tokens *auth.TokenService, logger *zap.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, log: logger}
}

// Register creates a user with a bcrypt-hashed password and a gravatar
// avatar, and returns a signed token for the new account.
func (s *UserService) Register(ctx context.Context, name, email, password string) (string, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return "", ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	u := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Avatar:   utils.GravatarURL(email),
	}
	if err := s.users.Create(ctx, u); err != nil {
		// the unique index wins races the FindByEmail check missed
		if errors.Is(err, repository.ErrEmailTaken) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	return s.tokens.Issue(u.ID.Hex())
}

// Login verifies the credentials and returns a signed token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrEmailNotFound
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", ErrWrongPassword
	}

	return s.tokens.Issue(u.ID.Hex())
}

// CurrentUser resolves the user record behind a verified token id.
func (s *UserService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}
