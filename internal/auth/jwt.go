package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"dbexplorer/internal/apperrors"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID    uuid.UUID
	SessionID string
}

// SessionValidator turns an opaque session token into a principal.
type SessionValidator interface {
	Verify(token string) (*Principal, error)
}

// Claims represents JWT claims.
type Claims struct {
	jwt.RegisteredClaims
}

// JWTValidator verifies HS256 session tokens signed with a shared secret.
type JWTValidator struct {
	secret []byte
}

func NewJWTValidator(secret string) *JWTValidator {
	return &JWTValidator{secret: []byte(secret)}
}

// Verify parses and validates a token. Expired, malformed or foreign-signed
// tokens fail with Unauthenticated.
func (v *JWTValidator) Verify(tokenStr string) (*Principal, error) {
	if tokenStr == "" {
		return nil, apperrors.Unauthenticated("missing session token")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, apperrors.Unauthenticated("invalid or expired session token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.Unauthenticated("invalid or expired session token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperrors.Unauthenticated("session token has no valid subject")
	}

	return &Principal{UserID: userID, SessionID: claims.ID}, nil
}

// Issue signs a session token for userID valid for ttl. The explorer never
// issues tokens on its own; this serves the CLI and tests.
func (v *JWTValidator) Issue(userID uuid.UUID, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", errors.New("token ttl must be positive")
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
