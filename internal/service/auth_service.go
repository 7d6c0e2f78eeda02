package service

import (
	"context"
	"errors"

	"localgym/gym-admin/internal/config"
	"localgym/gym-admin/internal/domain"
	"localgym/gym-admin/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrAuthenticationFailed = errors.New("authentication failed: invalid username or password")
	ErrHashingFailed        = errors.New("failed to hash password")
)

// AuthService checks staff credentials against the account store.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.Account, error)
	// EnsureAdminAccount seeds the configured admin account when the store
	// holds no accounts yet. Without it a fresh deployment has no way in.
	EnsureAdminAccount(ctx context.Context, admin config.AdminConfig) error
}

type authService struct {
	accountRepo repository.AccountRepository
}

// NewAuthService creates a new auth service.
func NewAuthService(accountRepo repository.AccountRepository) AuthService {
	return &authService{accountRepo: accountRepo}
}

// Login verifies the username and password. Unknown usernames and wrong
// passwords both map to ErrAuthenticationFailed.
func (s *authService) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	if username == "" || password == "" {
		return nil, ErrAuthenticationFailed
	}

	account, err := s.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrAuthenticationFailed
	}

	account.PasswordHash = ""
	return account, nil
}

func (s *authService) EnsureAdminAccount(ctx context.Context, admin config.AdminConfig) error {
	count, err := s.accountRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 || admin.Password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return ErrHashingFailed
	}
	_, err = s.accountRepo.Insert(ctx, &domain.Account{
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: string(hash),
	})
	if errors.Is(err, repository.ErrDuplicateKey) {
		// Another instance seeded first.
		return nil
	}
	return err
}
