package middlewares

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Identity is the caller resolved once from the session token. Handlers read
// it instead of re-deriving user/role/teacher linkage per call. TeacherID is
// nil for accounts without a linked teacher profile.
type Identity struct {
	UserID    uint
	Role      string
	Name      string
	TeacherID *uint
}

// Claims as signed by the auth handler.
type Claims struct {
	Sub       uint   `json:"sub"`
	Role      string `json:"role"`
	Name      string `json:"name"`
	TeacherID *uint  `json:"tid,omitempty"`
	jwt.RegisteredClaims
}

const identityKey = "auth.identity"

// SetIdentity attaches the resolved identity to the request context.
func SetIdentity(c echo.Context, ident Identity) {
	c.Set(identityKey, ident)
}

// IdentityFrom returns the identity attached by RequireAuth.
func IdentityFrom(c echo.Context) (Identity, bool) {
	ident, ok := c.Get(identityKey).(Identity)
	return ident, ok
}

func extractBearer(c echo.Context) (string, error) {
	h := c.Request().Header.Get("Authorization")
	if h == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "MISSING_AUTH_HEADER"})
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_AUTH_HEADER"})
	}
	return parts[1], nil
}

// RequireAuth verifies the HS256 bearer token and attaches the resolved
// Identity to the context.
func RequireAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok, err := extractBearer(c)
			if err != nil {
				return err
			}
			token, err := jwt.ParseWithClaims(tok, &Claims{}, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN_METHOD"})
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN"})
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CLAIMS"})
			}
			if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
				return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "TOKEN_EXPIRED"})
			}
			SetIdentity(c, Identity{
				UserID:    claims.Sub,
				Role:      claims.Role,
				Name:      claims.Name,
				TeacherID: claims.TeacherID,
			})
			return next(c)
		}
	}
}

// RequireRole passes the request through when the caller's role matches at
// least one of roles, e.g. RequireRole("staff", "admin").
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "MISSING_IDENTITY"})
			}
			if _, ok := allowed[strings.ToLower(ident.Role)]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
			}
			return next(c)
		}
	}
}
