package middleware

import (
	"context"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"jobboard/internal/pkg/jwt"
)

type memDenylist struct {
	revoked map[string]bool
}

func (m *memDenylist) IsTokenRevoked(_ context.Context, token string) (bool, error) {
	return m.revoked[token], nil
}

func newAuthTestApp(t *testing.T, denylist TokenDenylist) (*fiber.App, string) {
	t.Helper()

	tokens := jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	access, err := tokens.GenerateAccessToken(uuid.New(), "jane@example.com", "seeker")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	app := fiber.New()
	app.Use(NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	app.Get("/ping", NewAuthMiddleware(tokens, denylist).Middleware(), func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app, access
}

func TestAuthMiddleware_RejectsDenylistedToken(t *testing.T) {
	denylist := &memDenylist{revoked: map[string]bool{}}
	app, access := newAuthTestApp(t, denylist)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 before logout, got %d", res.StatusCode)
	}

	denylist.revoked[access] = true

	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for denylisted token, got %d", res.StatusCode)
	}
}

func TestAuthMiddleware_NilDenylistSkipsCheck(t *testing.T) {
	app, access := newAuthTestApp(t, nil)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
}
