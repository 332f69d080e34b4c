package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbexplorer/internal/apperrors"
)

func TestJWTValidator_RoundTrip(t *testing.T) {
	v := NewJWTValidator("test-secret")
	userID := uuid.New()

	token, err := v.Issue(userID, time.Minute)
	require.NoError(t, err)

	p, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, p.UserID)
	assert.NotEmpty(t, p.SessionID)
}

func TestJWTValidator_Rejects(t *testing.T) {
	v := NewJWTValidator("test-secret")
	userID := uuid.New()

	foreign, err := NewJWTValidator("other-secret").Issue(userID, time.Minute)
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"empty":       "",
		"garbage":     "not-a-jwt",
		"foreign":     foreign,
		"expired":     expired,
		"no expiry":   noExpiry,
		"bad subject": badSubject,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := v.Verify(token)
			assert.Nil(t, p)
			assert.Equal(t, apperrors.KindUnauthenticated, apperrors.KindOf(err))
		})
	}
}

func TestJWTValidator_IssueRejectsNonPositiveTTL(t *testing.T) {
	_, err := NewJWTValidator("s").Issue(uuid.New(), 0)
	assert.Error(t, err)
}
