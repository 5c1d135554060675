package middleware

import (
	"context"
	"errors"
	"strings"

	"jobboard/internal/domain/account"
	"jobboard/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxAccountIDKey = "account_id"
	CtxEmailKey     = "email"
	CtxRoleKey      = "role"
)

// TokenDenylist answers whether a token was logged out before its expiry.
// A nil denylist disables the check.
type TokenDenylist interface {
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
}

type AuthMiddleware struct {
	jwt      jwt.Service
	denylist TokenDenylist
}

func NewAuthMiddleware(jwtSvc jwt.Service, denylist TokenDenylist) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc, denylist: denylist}
}

// Middleware validates the bearer token and stores account id, email and role
// in Locals. Route groups narrow further with RequireRole.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, nil)
		}

		if m.denylist != nil {
			revoked, err := m.denylist.IsTokenRevoked(c.Context(), token)
			if err == nil && revoked {
				return NewAppError(fiber.StatusUnauthorized, "Token revoked", nil, nil)
			}
		}

		role, ok := account.ParseRole(claims.Role)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, nil)
		}

		c.Locals(CtxAccountIDKey, claims.AccountID)
		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxRoleKey, role)

		return c.Next()
	}
}

// RequireRole rejects tokens carrying a different role than the route expects.
// Admin passes everywhere.
func RequireRole(roles ...account.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		role, ok := c.Locals(CtxRoleKey).(account.Role)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		if role == account.RoleAdmin {
			return c.Next()
		}
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
	}
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
