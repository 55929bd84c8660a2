package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"docvault/internal/model"
	"docvault/internal/password"
	"docvault/internal/repository"
)

// AuthService defines the credential-store use cases: account creation and
// password verification. Session lifecycle is transport concern and lives in
// the session registry, not here.
type AuthService interface {
	// Register creates an account. The plaintext password is hashed before it
	// leaves this call; a taken email yields ErrDuplicateAccount.
	Register(ctx context.Context, name, email, plainPassword string) (*model.Account, error)

	// Login verifies credentials. An unknown email and a wrong password both
	// yield ErrInvalidCredentials.
	Login(ctx context.Context, email, plainPassword string) (*model.Account, error)

	// Account returns the account for an ID, for session introspection.
	Account(ctx context.Context, id string) (*model.Account, error)
}

type authService struct {
	accounts repository.AccountRepository
}

// NewAuthService constructs a new AuthService.
func NewAuthService(accounts repository.AccountRepository) AuthService {
	return &authService{accounts: accounts}
}

func (s *authService) Register(ctx context.Context, name, email, plainPassword string) (*model.Account, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if plainPassword == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acc := &model.Account{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.accounts.Create(ctx, acc)
	if err != nil {
		// The unique index on lower(email) is the only duplicate check; a
		// concurrent signup race loses here, not in application logic.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}
	return stored, nil
}

func (s *authService) Login(ctx context.Context, email, plainPassword string) (*model.Account, error) {
	acc, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := password.Compare(acc.PasswordHash, plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}
	return acc, nil
}

func (s *authService) Account(ctx context.Context, id string) (*model.Account, error) {
	acc, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return acc, nil
}
