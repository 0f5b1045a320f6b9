package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/rolodex/internal/config"
	"github.com/thenoetrevino/rolodex/internal/models"
)

func newSecretAuth(t *testing.T) *Authenticator {
	t.Helper()
	a, err := New(config.AuthConfig{Secret: "test-secret", Audience: "rolodex", Issuer: "https://issuer/"})
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestNew_RequiresKeys(t *testing.T) {
	_, err := New(config.AuthConfig{})
	assert.ErrorIs(t, err, errNoKeys)
}

func TestIssueAndAuthenticate(t *testing.T) {
	a := newSecretAuth(t)

	token, err := a.IssueToken("user-123", 5*time.Minute)
	require.NoError(t, err)

	session, err := a.SessionFromHeader("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", session.UserID)
}

func TestSessionFromHeader_Rejects(t *testing.T) {
	a := newSecretAuth(t)
	valid, err := a.IssueToken("user-123", 5*time.Minute)
	require.NoError(t, err)

	sign := func(secret string, claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}
	base := func() jwt.MapClaims {
		return jwt.MapClaims{
			"sub": "user-123",
			"aud": "rolodex",
			"iss": "https://issuer/",
			"exp": time.Now().Add(5 * time.Minute).Unix(),
		}
	}

	expired := base()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	wrongAud := base()
	wrongAud["aud"] = "someone-else"
	noSub := base()
	delete(noSub, "sub")

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc.def.ghi"},
		{"not a jwt", "Bearer nope"},
		{"wrong secret", "Bearer " + sign("other-secret", base())},
		{"expired", "Bearer " + sign("test-secret", expired)},
		{"wrong audience", "Bearer " + sign("test-secret", wrongAud)},
		{"missing subject", "Bearer " + sign("test-secret", noSub)},
		{"tampered", "Bearer " + valid + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := a.SessionFromHeader(tt.header)
			assert.Nil(t, session)
			assert.True(t, errors.Is(err, models.ErrUnauthenticated), "Expected ErrUnauthenticated, got %v", err)
		})
	}
}

func TestAuthenticate_JWKS(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	jwks := map[string]any{
		"keys": []map[string]string{{
			"kty": "RSA",
			"kid": "test-key",
			"alg": "RS256",
			"use": "sig",
			"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(jwks)
	}))
	defer srv.Close()

	a, err := New(config.AuthConfig{JWKSURL: srv.URL})
	require.NoError(t, err)
	defer a.Close()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": "user-rsa",
		"exp": time.Now().Add(5 * time.Minute).Unix(),
	})
	token.Header["kid"] = "test-key"
	signed, err := token.SignedString(key)
	require.NoError(t, err)

	session, err := a.Authenticate(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-rsa", session.UserID)

	// HS256 tokens are refused when verifying against published keys
	hs, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-rsa",
		"exp": time.Now().Add(5 * time.Minute).Unix(),
	}).SignedString([]byte("whatever"))
	require.NoError(t, err)
	_, err = a.Authenticate(hs)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	_, err = a.IssueToken("user-rsa", time.Minute)
	assert.Error(t, err)
}

func TestRequire(t *testing.T) {
	_, err := Require(nil)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	_, err = Require(&Session{})
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	id, err := Require(NewSession("u1"))
	require.NoError(t, err)
	assert.Equal(t, "u1", id)
}

func TestSessionContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, FromContext(ctx))

	s := NewSession("u1")
	assert.Same(t, s, FromContext(WithSession(ctx, s)))
}
