package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/devconnector/api/internal/auth"
	"github.com/devconnector/api/internal/config"
	"github.com/devconnector/api/internal/domain"
	"github.com/devconnector/api/internal/events"
	"github.com/devconnector/api/internal/repository"
	apperrors "github.com/devconnector/api/pkg/util"
)

const (
	MessageUserExists         = "User already exists"
	MessageInvalidCredentials = "Invalid Credentials"
)

// TokenIssuer signs access tokens for an identity.
type TokenIssuer interface {
	Issue(claim domain.IdentityClaim) (string, time.Time, error)
}

// AuthService coordinates registration, login and account removal.
type AuthService struct {
	users      repository.UserRepository
	profiles   repository.ProfileRepository
	dispatcher events.Dispatcher
	tokens     TokenIssuer
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	ProfileRepo repository.ProfileRepository
	Dispatcher  events.Dispatcher
	Tokens      TokenIssuer
	Logger      *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		profiles:   deps.ProfileRepo,
		dispatcher: deps.Dispatcher,
		tokens:     deps.Tokens,
		logger:     logger,
		bcryptCost: cfg.BcryptCost,
	}
}

// RegisterUser creates a new account and returns a token for it.
func (s *AuthService) RegisterUser(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	email = normalizeEmail(email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", apperrors.NewValidationError(apperrors.FieldError{Msg: MessageUserExists})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		Avatar:       GravatarURL(email),
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// LoginUser authenticates by email and password. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperrors.NewValidationError(apperrors.FieldError{Msg: MessageInvalidCredentials})
	}
	if err != nil {
		return "", err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if !auth.IsPasswordMismatch(err) {
			s.logger.Warn("password comparison failed", zap.String("user_id", user.ID), zap.Error(err))
		}
		return "", apperrors.NewValidationError(apperrors.FieldError{Msg: MessageInvalidCredentials})
	}
	return s.issue(user.ID)
}

// CurrentUser loads the account behind an authenticated identity.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("User not found")
	}
	return user, err
}

// DeleteAccount removes the profile and the user, then announces the removal
// so dependent content can be cleaned up.
func (s *AuthService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("User not found")
		}
		return err
	}

	if s.dispatcher == nil {
		return nil
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserDeleted,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Error("user deleted cleanup failed", zap.String("user_id", userID), zap.Error(err))
	}
	return nil
}

func (s *AuthService) issue(userID string) (string, error) {
	token, _, err := s.tokens.Issue(domain.IdentityClaim{ID: userID})
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
