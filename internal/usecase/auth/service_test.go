package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/domain/account"
	"jobboard/internal/domain/provider"
	"jobboard/internal/domain/seeker"
	"jobboard/internal/pkg/jwt"
)

type memAccounts struct {
	byEmail map[string]account.Account
	byID    map[uuid.UUID]account.Account
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byEmail: map[string]account.Account{}, byID: map[uuid.UUID]account.Account{}}
}

func (m *memAccounts) Create(_ context.Context, a account.Account) error {
	m.byEmail[a.Email] = a
	m.byID[a.ID] = a
	return nil
}

func (m *memAccounts) GetByID(_ context.Context, id uuid.UUID) (account.Account, error) {
	a, ok := m.byID[id]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	return a, nil
}

func (m *memAccounts) GetByEmail(_ context.Context, email string) (account.Account, error) {
	a, ok := m.byEmail[email]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	return a, nil
}

func (m *memAccounts) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

type memSeekers struct{ created []seeker.Seeker }

func (m *memSeekers) Create(_ context.Context, s seeker.Seeker) error {
	m.created = append(m.created, s)
	return nil
}
func (m *memSeekers) Update(context.Context, seeker.Seeker) error { return nil }
func (m *memSeekers) GetByID(context.Context, uuid.UUID) (seeker.Seeker, error) {
	return seeker.Seeker{}, nil
}
func (m *memSeekers) ListAll(context.Context) ([]seeker.Seeker, error) { return nil, nil }

type memProviders struct{ created []provider.Provider }

func (m *memProviders) Create(_ context.Context, p provider.Provider) error {
	m.created = append(m.created, p)
	return nil
}
func (m *memProviders) Update(context.Context, provider.Provider) error { return nil }
func (m *memProviders) GetByID(context.Context, uuid.UUID) (provider.Provider, error) {
	return provider.Provider{}, nil
}

type memRevoker struct {
	revoked map[string]time.Duration
}

func (m *memRevoker) RevokeToken(_ context.Context, token string, ttl time.Duration) error {
	if m.revoked == nil {
		m.revoked = map[string]time.Duration{}
	}
	m.revoked[token] = ttl
	return nil
}

func newTestService() (*Service, *memAccounts) {
	accounts := newMemAccounts()
	tokens := jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	return NewService(accounts, &memSeekers{}, &memProviders{}, tokens, nil), accounts
}

func TestRegisterSeeker_IssuesRoleScopedTokens(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.RegisterSeeker(context.Background(), RegisterSeekerInput{
		Email:     "  Jane@Example.COM ",
		Password:  "secret-password",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Email != "jane@example.com" {
		t.Fatalf("email not normalized: %q", res.Email)
	}
	if res.Role != account.RoleSeeker {
		t.Fatalf("expected seeker role, got %s", res.Role)
	}

	tokens := jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	claims, err := tokens.ValidateToken(res.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("access token invalid: %v", err)
	}
	if claims.Role != string(account.RoleSeeker) {
		t.Fatalf("access token carries wrong role: %q", claims.Role)
	}
}

func TestRegisterSeeker_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	in := RegisterSeekerInput{Email: "jane@example.com", Password: "secret-password", FirstName: "Jane", LastName: "Doe"}
	if _, err := svc.RegisterSeeker(context.Background(), in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.RegisterSeeker(context.Background(), in)
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestRegisterSeeker_ShortPassword(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.RegisterSeeker(context.Background(), RegisterSeekerInput{
		Email: "jane@example.com", Password: "short", FirstName: "Jane", LastName: "Doe",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.RegisterProvider(context.Background(), RegisterProviderInput{
		Email: "acme@example.com", Password: "secret-password", CompanyName: "Acme",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(context.Background(), LoginInput{Email: "acme@example.com", Password: "wrong-password"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	res, err := svc.Login(context.Background(), LoginInput{Email: "acme@example.com", Password: "secret-password"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Role != account.RoleProvider {
		t.Fatalf("expected provider role, got %s", res.Role)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Login(context.Background(), LoginInput{Email: "missing@example.com", Password: "whatever-pw"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, _ := newTestService()
	res, err := svc.RegisterSeeker(context.Background(), RegisterSeekerInput{
		Email: "jane@example.com", Password: "secret-password", FirstName: "Jane", LastName: "Doe",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), res.Tokens.AccessToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for access token, got %v", err)
	}

	pair, err := svc.Refresh(context.Background(), res.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("refresh returned empty tokens")
	}
}

func TestLogout_RevokesAccessTokenForRemainingLifetime(t *testing.T) {
	accounts := newMemAccounts()
	tokens := jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	revoker := &memRevoker{}
	svc := NewService(accounts, &memSeekers{}, &memProviders{}, tokens, revoker)

	res, err := svc.RegisterSeeker(context.Background(), RegisterSeekerInput{
		Email: "jane@example.com", Password: "secret-password", FirstName: "Jane", LastName: "Doe",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.Logout(context.Background(), res.Tokens.AccessToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	ttl, ok := revoker.revoked[res.Tokens.AccessToken]
	if !ok {
		t.Fatalf("access token not denylisted")
	}
	if ttl <= 0 || ttl > 15*time.Minute {
		t.Fatalf("denylist ttl outside token lifetime: %v", ttl)
	}
}

func TestLogout_RejectsRefreshAndGarbageTokens(t *testing.T) {
	accounts := newMemAccounts()
	tokens := jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	revoker := &memRevoker{}
	svc := NewService(accounts, &memSeekers{}, &memProviders{}, tokens, revoker)

	res, err := svc.RegisterSeeker(context.Background(), RegisterSeekerInput{
		Email: "jane@example.com", Password: "secret-password", FirstName: "Jane", LastName: "Doe",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.Logout(context.Background(), res.Tokens.RefreshToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for refresh token, got %v", err)
	}
	if err := svc.Logout(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for garbage token, got %v", err)
	}
	if len(revoker.revoked) != 0 {
		t.Fatalf("nothing should have been denylisted, got %d entries", len(revoker.revoked))
	}
}

func TestLogout_WithoutRevokerStillSucceeds(t *testing.T) {
	svc, _ := newTestService()
	res, err := svc.RegisterSeeker(context.Background(), RegisterSeekerInput{
		Email: "jane@example.com", Password: "secret-password", FirstName: "Jane", LastName: "Doe",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Logout(context.Background(), res.Tokens.AccessToken); err != nil {
		t.Fatalf("logout without revoker: %v", err)
	}
}
