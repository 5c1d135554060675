package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jobboard/internal/domain/account"
	"jobboard/internal/domain/provider"
	"jobboard/internal/domain/seeker"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/repository"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterSeekerInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Phonenumber *string
	CityID      *uuid.UUID
}

type RegisterProviderInput struct {
	Email       string
	Password    string
	CompanyName string
	Phonenumber *string
	CityID      *uuid.UUID
}

type LoginInput struct {
	Email    string
	Password string
}

// TokenPair is what every successful login or refresh returns. The refresh
// token is signed with a separate secret so it cannot pass access validation.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	AccountID uuid.UUID
	Email     string
	Role      account.Role
	Tokens    TokenPair
}

type AuthUsecase interface {
	RegisterSeeker(ctx context.Context, in RegisterSeekerInput) (LoginResult, error)
	RegisterProvider(ctx context.Context, in RegisterProviderInput) (LoginResult, error)
	Login(ctx context.Context, in LoginInput) (LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
}

// TokenRevoker stores logged-out tokens until their natural expiry. A nil
// revoker downgrades logout to client-side only.
type TokenRevoker interface {
	RevokeToken(ctx context.Context, token string, ttl time.Duration) error
}

type Service struct {
	accounts  repository.AccountRepository
	seekers   repository.SeekerRepository
	providers repository.ProviderRepository
	tokens    jwt.Service
	revoker   TokenRevoker
}

func NewService(
	accounts repository.AccountRepository,
	seekers repository.SeekerRepository,
	providers repository.ProviderRepository,
	tokens jwt.Service,
	revoker TokenRevoker,
) *Service {
	return &Service{
		accounts:  accounts,
		seekers:   seekers,
		providers: providers,
		tokens:    tokens,
		revoker:   revoker,
	}
}

func (s *Service) RegisterSeeker(ctx context.Context, in RegisterSeekerInput) (LoginResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !isValidPassword(in.Password) {
		return LoginResult{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return LoginResult{}, ErrInvalidInput
	}

	acc, err := s.createAccount(ctx, email, in.Password, account.RoleSeeker)
	if err != nil {
		return LoginResult{}, err
	}

	sk := seeker.Seeker{
		ID:          acc.ID,
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Email:       email,
		Phonenumber: in.Phonenumber,
		CityID:      in.CityID,
	}
	if err := s.seekers.Create(ctx, sk); err != nil {
		return LoginResult{}, ErrInternal
	}

	return s.issue(acc)
}

func (s *Service) RegisterProvider(ctx context.Context, in RegisterProviderInput) (LoginResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !isValidPassword(in.Password) {
		return LoginResult{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.CompanyName) == "" {
		return LoginResult{}, ErrInvalidInput
	}

	acc, err := s.createAccount(ctx, email, in.Password, account.RoleProvider)
	if err != nil {
		return LoginResult{}, err
	}

	pr := provider.Provider{
		ID:          acc.ID,
		CompanyName: strings.TrimSpace(in.CompanyName),
		Email:       email,
		Phonenumber: in.Phonenumber,
		CityID:      in.CityID,
	}
	if err := s.providers.Create(ctx, pr); err != nil {
		return LoginResult{}, ErrInternal
	}

	return s.issue(acc)
}

func (s *Service) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	acc, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(in.Password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	return s.issue(acc)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	if !s.tokens.IsRefreshToken(claims) {
		return TokenPair{}, ErrInvalidCredentials
	}

	// Re-read the account so a deleted or re-roled account cannot keep
	// minting tokens from an old refresh token.
	acc, err := s.accounts.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, ErrInternal
	}

	access, err := s.tokens.GenerateAccessToken(acc.ID, acc.Email, string(acc.Role))
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	refresh, err := s.tokens.GenerateRefreshToken(acc.ID, string(acc.Role))
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Logout denylists the presented access token for the rest of its lifetime.
// An already-expired token needs no entry, the middleware rejects it anyway.
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.tokens.ValidateToken(accessToken)
	if err != nil {
		return ErrInvalidCredentials
	}
	if s.tokens.IsRefreshToken(claims) {
		return ErrInvalidCredentials
	}
	if s.revoker == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiredAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.revoker.RevokeToken(ctx, accessToken, ttl); err != nil {
		return ErrInternal
	}
	return nil
}

func (s *Service) createAccount(ctx context.Context, email, password string, role account.Role) (account.Account, error) {
	exists, err := s.accounts.ExistsByEmail(ctx, email)
	if err != nil {
		return account.Account{}, ErrInternal
	}
	if exists {
		return account.Account{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return account.Account{}, ErrInternal
	}

	acc := account.Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.accounts.Create(ctx, acc); err != nil {
		exists, exErr := s.accounts.ExistsByEmail(ctx, email)
		if exErr == nil && exists {
			return account.Account{}, ErrEmailAlreadyRegistered
		}
		return account.Account{}, ErrInternal
	}
	return acc, nil
}

func (s *Service) issue(acc account.Account) (LoginResult, error) {
	access, err := s.tokens.GenerateAccessToken(acc.ID, acc.Email, string(acc.Role))
	if err != nil {
		return LoginResult{}, ErrInternal
	}
	refresh, err := s.tokens.GenerateRefreshToken(acc.ID, string(acc.Role))
	if err != nil {
		return LoginResult{}, ErrInternal
	}
	return LoginResult{
		AccountID: acc.ID,
		Email:     acc.Email,
		Role:      acc.Role,
		Tokens:    TokenPair{AccessToken: access, RefreshToken: refresh},
	}, nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	pw = strings.TrimSpace(pw)
	return len(pw) >= 8
}
