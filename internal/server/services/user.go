// Package services contains server-side business logic. This file implements
// UserService, which handles signup, login, session-token issuance, and
// account lookups on top of the users repository.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/authd/internal/common"
	"github.com/dmitrijs2005/authd/internal/server/auth"
	"github.com/dmitrijs2005/authd/internal/server/config"
	"github.com/dmitrijs2005/authd/internal/server/models"
	"github.com/dmitrijs2005/authd/internal/server/repositories/users"
)

// UserService provides account and session operations:
// - Register: create users with bcrypt-hashed passwords
// - Login: verify credentials and mint a session token
// - Reissue: mint a session token for a known username without a password
// - WhoAmI / GetByUsername / CheckUsername: lookups
type UserService struct {
	repo                         users.Repository
	jwtSecret                    []byte
	sessionTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using the users repository and
// server config.
func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:                         repo,
		jwtSecret:                    []byte(cfg.SecretKey),
		sessionTokenValidityDuration: cfg.SessionTokenValidityDuration,
	}
}

// Register creates a new account. Empty username or password yields
// common.ErrorValidation; a taken username yields common.ErrorAlreadyExists,
// whether caught by the pre-check or by the uniqueness constraint when two
// signups race to the insert.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, common.ErrorValidation
	}

	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking username: %w", err)
	}

	digest, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := s.repo.Create(ctx, username, digest)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and, on success, returns a session token and
// the account. An unknown username and a wrong password both return
// common.ErrorInvalidCredentials; the unknown-username path still burns a
// bcrypt verification so the two are not distinguishable by timing either.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.CheckDummyPassword(password)
			return "", nil, common.ErrorInvalidCredentials
		}
		return "", nil, common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", nil, common.ErrorInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Username, s.jwtSecret, s.sessionTokenValidityDuration)
	if err != nil {
		return "", nil, common.ErrorInternal
	}

	return token, user, nil
}

// Reissue mints a fresh session token for a known username without checking a
// password. This is not an authentication step: callers must gate it behind
// their own trust boundary. Returns common.ErrorNotFound for an unknown
// username (existence is not a secret on this path).
func (s *UserService) Reissue(ctx context.Context, username string) (string, *models.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorNotFound
		}
		return "", nil, common.ErrorInternal
	}

	token, err := auth.GenerateToken(user.ID, user.Username, s.jwtSecret, s.sessionTokenValidityDuration)
	if err != nil {
		return "", nil, common.ErrorInternal
	}

	return token, user, nil
}

// WhoAmI resolves verified session claims to the stored account. A session
// whose user has since disappeared yields common.ErrorNotFound; the caller
// treats that as anonymous, not as an error.
func (s *UserService) WhoAmI(ctx context.Context, claims *auth.Claims) (*models.User, error) {
	if claims == nil || claims.Username == "" {
		return nil, common.ErrorNotFound
	}

	user, err := s.repo.GetByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

// GetByUsername returns the account for a public profile lookup.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// CheckUsername reports whether the username is still available.
func (s *UserService) CheckUsername(ctx context.Context, username string) (bool, error) {
	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, common.ErrorNotFound) {
		return true, nil
	}
	return false, common.ErrorInternal
}
