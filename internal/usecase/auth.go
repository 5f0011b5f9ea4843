package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users       repository.UserRepository
	hasher      pkgAuth.PasswordHasher
	tokens      pkgAuth.Strategy
	adminEmails []string
}

// NewAuthUseCase constructs AuthUseCase. Users registering with one of
// adminEmails receive the admin role.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, adminEmails []string) *AuthUseCase {
	normalized := make([]string, 0, len(adminEmails))
	for _, e := range adminEmails {
		normalized = append(normalized, normalizeEmail(e))
	}
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, adminEmails: normalized}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user and returns auth token.
func (u *AuthUseCase) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("%w: email %q is malformed", domainErrors.ErrValidation, email)
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	role := model.RoleUser
	if slices.Contains(u.adminEmails, email) {
		role = model.RoleAdmin
	}

	usr, err := u.users.Create(ctx, &model.User{Name: name, Email: email, PasswordHash: hash, Role: role})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}
