package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/stwalsh4118/room4rent/internal/auth"
	"github.com/stwalsh4118/room4rent/internal/logger"
	"github.com/stwalsh4118/room4rent/internal/models"
	"github.com/stwalsh4118/room4rent/internal/repository"
)

// LoginResult is a successful login.
type LoginResult struct {
	Token     string      `json:"token"`
	TokenType string      `json:"token_type"`
	User      models.User `json:"user"`
	TenantID  *int64      `json:"tenant_id,omitempty"`
	ExpiresIn int         `json:"expires_in"`
}

// AuthService defines login and session operations.
type AuthService interface {
	// Login checks credentials and issues a session token. Unknown email
	// and wrong password both return ErrUnauthorized.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Me returns the user behind a session.
	Me(ctx context.Context, session auth.Session) (*models.User, error)
	// EnsureAdmin creates the admin account when no user has the email.
	EnsureAdmin(ctx context.Context, name, email, password string) error
}

type authService struct {
	users   repository.UserRepository
	tenants repository.TenantRepository
	tokens  *auth.TokenManager
	log     *logger.Logger
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(
	users repository.UserRepository,
	tenants repository.TenantRepository,
	tokens *auth.TokenManager,
	log *logger.Logger,
) AuthService {
	return &authService{
		users:   users,
		tenants: tenants,
		tokens:  tokens,
		log:     log.Component("auth"),
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidArgument)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to query user", err, nil)
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		s.log.Warn("Failed login attempt", map[string]interface{}{"email": email})
		return nil, ErrUnauthorized
	}

	session := auth.Session{UserID: user.ID, Email: user.Email, Role: user.Role}
	if user.Role == models.RoleTenant {
		tenant, err := s.tenants.FindActiveByUserID(ctx, user.ID)
		if err != nil {
			s.log.Error("Failed to query tenancy", err, map[string]interface{}{"user_id": user.ID})
			return nil, fmt.Errorf("failed to log in: %w", err)
		}
		if tenant != nil {
			id := tenant.ID
			session.TenantID = &id
		}
	}

	token, err := s.tokens.GenerateToken(session)
	if err != nil {
		s.log.Error("Failed to sign token", err, map[string]interface{}{"user_id": user.ID})
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	s.log.Info("User logged in", map[string]interface{}{"user_id": user.ID, "role": user.Role})
	return &LoginResult{
		Token:     token,
		TokenType: "Bearer",
		User:      *user,
		TenantID:  session.TenantID,
		ExpiresIn: int(s.tokens.TTL().Seconds()),
	}, nil
}

func (s *authService) Me(ctx context.Context, session auth.Session) (*models.User, error) {
	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		s.log.Error("Failed to query user", err, map[string]interface{}{"user_id": session.UserID})
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if user == nil {
		return nil, notFound("user", session.UserID)
	}
	return user, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to query admin user: %w", err)
	}
	if existing != nil {
		s.log.Debug("Admin user already exists", map[string]interface{}{"email": email})
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	admin := &models.User{Name: name, Email: email, PasswordHash: hash, Role: models.RoleAdmin}
	if err := s.users.Create(ctx, admin); err != nil {
		// Another instance created it first
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	s.log.Info("Admin user created", map[string]interface{}{"user_id": admin.ID, "email": email})
	return nil
}
