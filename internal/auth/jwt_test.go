package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotedesk/internal/config"
	"quotedesk/internal/domain"
)

const testSecret = "test-secret"

func signed(t *testing.T, method jwt.SigningMethod, key interface{}, mutate func(*Claims)) string {
	t.Helper()
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "quotedesk",
			Subject:   "user",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			Audience:  jwt.ClaimStrings{AccessAudience},
		},
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Email:    "sales@example.com",
		Role:     domain.RoleMember,
	}
	if mutate != nil {
		mutate(claims)
	}
	tok, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return tok
}

func newTestVerifier() *Verifier {
	return NewVerifier(config.JWTConfig{Secret: testSecret, Issuer: "quotedesk"})
}

func TestValidateToken_Valid(t *testing.T) {
	tok := signed(t, jwt.SigningMethodHS256, []byte(testSecret), nil)

	claims, err := newTestVerifier().ValidateToken(tok)

	require.NoError(t, err)
	assert.Equal(t, "sales@example.com", claims.Email)
	assert.Equal(t, domain.RoleMember, claims.Role)
	assert.NotEqual(t, uuid.Nil, claims.TenantID)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tok := signed(t, jwt.SigningMethodHS256, []byte("other"), nil)

	_, err := newTestVerifier().ValidateToken(tok)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	tok := signed(t, jwt.SigningMethodHS256, []byte(testSecret), func(c *Claims) {
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	})

	_, err := newTestVerifier().ValidateToken(tok)
	assert.Error(t, err)
}

func TestValidateToken_RefreshAudienceRejected(t *testing.T) {
	tok := signed(t, jwt.SigningMethodHS256, []byte(testSecret), func(c *Claims) {
		c.Audience = jwt.ClaimStrings{"refresh"}
	})

	_, err := newTestVerifier().ValidateToken(tok)
	assert.Error(t, err)
}

func TestValidateToken_IssuerMismatch(t *testing.T) {
	tok := signed(t, jwt.SigningMethodHS256, []byte(testSecret), func(c *Claims) {
		c.Issuer = "someone-else"
	})

	_, err := newTestVerifier().ValidateToken(tok)
	assert.Error(t, err)

	// no issuer configured: accepted
	v := NewVerifier(config.JWTConfig{Secret: testSecret})
	_, err = v.ValidateToken(tok)
	assert.NoError(t, err)
}

func TestValidateToken_MissingTenant(t *testing.T) {
	tok := signed(t, jwt.SigningMethodHS256, []byte(testSecret), func(c *Claims) {
		c.TenantID = uuid.Nil
	})

	_, err := newTestVerifier().ValidateToken(tok)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidateToken_NoneAlgorithmRejected(t *testing.T) {
	tok := signed(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, nil)

	_, err := newTestVerifier().ValidateToken(tok)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := newTestVerifier().ValidateToken("not-a-token")
	assert.Error(t, err)
}
