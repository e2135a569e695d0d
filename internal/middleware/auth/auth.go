package auth

import (
	"net/http"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/tokens"
)

const (
	CtxClaims = "claims"
	CtxUserID = "user_id"
	CtxRole   = "role"
)

type TokenVerifier interface {
	Verify(token string) (*tokens.Claims, error)
}

// Authorize admits a request only when its bearer token verifies and carries one of roles.
func Authorize(v TokenVerifier, roles ...tokens.Role) echo.MiddlewareFunc {
	allowed := slices.Clone(roles)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := logging.FromContext(c.Request().Context()).With("mw", "auth")

			raw := BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				l.Warn("auth_failed", "status", http.StatusUnauthorized, "reason", "missing_token")
				return echo.NewHTTPError(http.StatusUnauthorized, "No token")
			}

			claims, err := v.Verify(raw)
			if err != nil || claims == nil {
				l.Warn("auth_failed", "status", http.StatusUnauthorized, "reason", "invalid_token", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			if !claims.Role.Valid() || !slices.Contains(allowed, claims.Role) {
				l.Warn("auth_failed", "status", http.StatusForbidden, "reason", "role_not_allowed", "role", string(claims.Role))
				return echo.NewHTTPError(http.StatusForbidden, "Access denied")
			}

			c.Set(CtxClaims, claims)
			c.Set(CtxUserID, claims.SubjectID)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}

// BearerToken returns the credential of a "Bearer <token>" header value, or "".
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func ClaimsFrom(c echo.Context) (*tokens.Claims, bool) {
	claims, ok := c.Get(CtxClaims).(*tokens.Claims)
	return claims, ok
}
