package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"dbexplorer/internal/apperrors"
	"dbexplorer/internal/auth"
	"dbexplorer/internal/responses"
)

const principalKey = "principal"

// Authenticate rejects the request with 401 unless the session cookie, or
// failing that an "Authorization: Bearer" header, carries a valid token.
func Authenticate(validator auth.SessionValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := sessionToken(c, cookieName)
		if err != nil {
			responses.Abort(c, err)
			return
		}

		principal, err := validator.Verify(token)
		if err != nil {
			if apperrors.KindOf(err) != apperrors.KindUnauthenticated {
				err = apperrors.Unauthenticated("invalid or expired session token")
			}
			responses.Abort(c, err)
			return
		}
		if principal == nil {
			responses.Abort(c, apperrors.Unauthenticated("invalid or expired session token"))
			return
		}

		// Store the principal in context for handlers
		c.Set(principalKey, principal)

		c.Next()
	}
}

func sessionToken(c *gin.Context, cookieName string) (string, error) {
	if cookieName != "" {
		if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
			return cookie, nil
		}
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", apperrors.Unauthenticated("missing session")
	}

	// Expected format: "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", apperrors.Unauthenticated("invalid Authorization format")
	}

	return parts[1], nil
}

// PrincipalFrom returns the principal set by Authenticate.
func PrincipalFrom(c *gin.Context) (*auth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*auth.Principal)
	return p, ok
}
