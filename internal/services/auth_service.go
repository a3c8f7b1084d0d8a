// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/catalog-admin/internal/config"
	"github.com/javajoker/catalog-admin/internal/gate"
	"github.com/javajoker/catalog-admin/internal/models"
	"github.com/javajoker/catalog-admin/internal/repository"
	"github.com/javajoker/catalog-admin/internal/utils"
)

var (
	// ErrInvalidCredentials covers unknown email, wrong password and a
	// malformed email address.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAdminEmailMissing disables sign-in when no admin email is configured.
	ErrAdminEmailMissing = errors.New("admin email is not configured")
)

type AuthService struct {
	users repository.UserRepository
	cfg   *config.Config
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // in seconds
	State       gate.State   `json:"state"`
	View        gate.View    `json:"view"`
}

// SessionResponse is the gate decision for a presented token.
type SessionResponse struct {
	State gate.State `json:"state"`
	View  gate.View  `json:"view"`
	Email string     `json:"email,omitempty"`
}

func NewAuthService(users repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		users: users,
		cfg:   cfg,
	}
}

// SignIn makes one credential attempt. Credential problems return
// ErrInvalidCredentials; anything else is a generic failure.
func (s *AuthService) SignIn(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if !s.cfg.AdminConfigured() {
		return nil, ErrAdminEmailMissing
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"error":   err,
		}).Warn("Failed to record last login")
	}

	accessToken, err := utils.GenerateJWT(user.ID, user.Email, s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	state := gate.Evaluate(&gate.Identity{UserID: user.ID.String(), Email: user.Email}, s.cfg.Admin.Email)
	return &AuthResponse{
		User:        user,
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   s.cfg.JWT.AccessTokenTTL * 3600,
		State:       state,
		View:        state.View(),
	}, nil
}

// Identify resolves a bearer token to an identity, or nil when the token is
// absent or invalid.
func (s *AuthService) Identify(token string) *gate.Identity {
	if token == "" {
		return nil
	}
	claims, err := utils.ValidateJWT(token)
	if err != nil {
		return nil
	}
	return &gate.Identity{UserID: claims.UserID, Email: claims.Email}
}

// Session runs the gate for a token.
func (s *AuthService) Session(token string) (*SessionResponse, error) {
	if !s.cfg.AdminConfigured() {
		return nil, ErrAdminEmailMissing
	}

	g := gate.New(s.cfg.Admin.Email)
	g.Begin()
	identity := s.Identify(token)
	state := g.Resolve(identity)

	resp := &SessionResponse{State: state, View: state.View()}
	if identity != nil {
		resp.Email = identity.Email
	}
	return resp, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", userID, err)
	}
	return user, nil
}

// EnsureAdminAccount creates the admin's account from ADMIN_EMAIL and
// ADMIN_PASSWORD when it does not exist yet.
func (s *AuthService) EnsureAdminAccount(ctx context.Context) error {
	if !s.cfg.AdminConfigured() || s.cfg.Admin.Password == "" {
		return nil
	}

	_, err := s.users.FindByEmail(ctx, s.cfg.Admin.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("look up admin account: %w", err)
	}

	user := &models.User{Email: strings.ToLower(s.cfg.Admin.Email)}
	if err := user.SetPassword(s.cfg.Admin.Password); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	logrus.WithField("email", user.Email).Info("Admin account created")
	return nil
}
