package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/opencouncil/deskd/internal/domain"
	"github.com/opencouncil/deskd/internal/store"
	"github.com/opencouncil/deskd/pkg/cryptox"
	"github.com/opencouncil/deskd/pkg/idx"
	"github.com/opencouncil/deskd/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers both "no such user" and "wrong password".
	// Callers must not distinguish the two, to avoid user enumeration.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrEmailTaken reports a duplicate registration.
	ErrEmailTaken = errors.New("email already registered")
)

// TokenIssuer signs identity claims into a bearer token. Satisfied by
// *jwtx.HS256; an interface so tests can substitute a stub.
type TokenIssuer interface {
	Issue(subject, email, role string) (string, error)
}

type AuthService struct {
	Store  store.Store
	Tokens TokenIssuer
}

// Register creates a new identity. The role string is validated against the
// closed set (empty defaults to "user"); the password is hashed before it
// ever touches the store.
func (s *AuthService) Register(
	ctx context.Context,
	name, email, password, role string,
	contactInfo *string,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	parsedRole, err := domain.ParseRole(role)
	if err != nil {
		return domain.User{}, err
	}

	email = normalizeEmail(email)

	// Pre-check for a friendlier error; the unique index still backstops
	// concurrent registrations.
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, fmt.Errorf("lookup existing user: %w", err)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         parsedRole,
		ContactInfo:  contactInfo,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	created, err := s.Store.Users().GetUserByID(ctx, user.ID)
	if err != nil {
		return domain.User{}, fmt.Errorf("reload created user: %w", err)
	}

	log.Info("user registered",
		slog.String("user_id", created.ID),
		slog.String("role", created.Role.String()),
	)
	return created, nil
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password return the identical ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.User{}, ErrInvalidCredentials
		}
		return "", domain.User{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Info("login rejected", slog.String("user_id", user.ID))
			return "", domain.User{}, ErrInvalidCredentials
		}
		// Anything else means the stored hash is corrupt.
		return "", domain.User{}, fmt.Errorf("verify password: %w", err)
	}

	token, err := s.Tokens.Issue(user.ID, user.Email, user.Role.String())
	if err != nil {
		return "", domain.User{}, fmt.Errorf("issue token: %w", err)
	}

	log.Info("login succeeded", slog.String("user_id", user.ID))
	return token, user, nil
}

// Profile loads the full record for an authenticated subject.
func (s *AuthService) Profile(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
