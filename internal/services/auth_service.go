package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SAP-F-2025/assessment-console/internal/client"
	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/SAP-F-2025/assessment-console/internal/validator"
)

const (
	loginPath    = "/auth/login/"
	registerPath = "/users/register/"
	mePath       = "/users/me/"
)

var ErrMissingToken = errors.New("login response carried no token")

// userPayload accepts both a display name and first/last name pairs.
type userPayload struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Role      models.UserRole `json:"role"`
}

func (u userPayload) user() models.User {
	name := u.Name
	if name == "" {
		name = strings.TrimSpace(u.FirstName + " " + u.LastName)
	}
	if name == "" {
		name, _, _ = strings.Cut(u.Email, "@")
	}
	return models.User{ID: u.ID, Email: u.Email, Name: name, Role: u.Role}
}

type authService struct {
	api       *client.Client
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewAuthService(api *client.Client, logger *ServiceLogger, validator *validator.Validator) AuthService {
	return &authService{
		api:       api,
		logger:    logger,
		validator: validator,
	}
}

// Login exchanges credentials for a token. It never sends the stored token.
func (s *authService) Login(ctx context.Context, draft models.LoginDraft) (_ *models.Session, err error) {
	defer s.logger.LogOperation(ctx, "login", "session", "", time.Now(), &err)

	if err = s.validator.Validate(draft); err != nil {
		return nil, err
	}

	var resp struct {
		Token string      `json:"token"`
		User  userPayload `json:"user"`
	}
	anonymous := s.api.WithTokens(client.StaticToken(""))
	if err = anonymous.Post(ctx, loginPath, draft, &resp); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if resp.Token == "" {
		return nil, ErrMissingToken
	}

	user := resp.User.user()
	if user.Email == "" {
		user.Email = draft.Email
	}
	return &models.Session{Token: resp.Token, User: user}, nil
}

func (s *authService) Register(ctx context.Context, draft models.RegisterDraft) (_ *models.User, err error) {
	defer s.logger.LogOperation(ctx, "register", "user", "", time.Now(), &err)

	if err = s.validator.Validate(draft); err != nil {
		return nil, err
	}

	var resp userPayload
	anonymous := s.api.WithTokens(client.StaticToken(""))
	if err = anonymous.Post(ctx, registerPath, draft, &resp); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	user := resp.user()
	return &user, nil
}

func (s *authService) Me(ctx context.Context) (_ *models.User, err error) {
	defer s.logger.LogOperation(ctx, "me", "user", "", time.Now(), &err)

	var resp userPayload
	if err = s.api.Get(ctx, mePath, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to load current user: %w", err)
	}
	user := resp.user()
	return &user, nil
}
