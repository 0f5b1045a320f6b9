package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"

	"github.com/thenoetrevino/rolodex/internal/config"
	"github.com/thenoetrevino/rolodex/internal/models"
)

var (
	errMissingAuthorization = errors.New("missing authorization header")
	errBadAuthorization     = errors.New("bad auth header")
	errNoKeys               = errors.New("auth secret or jwks url must be configured")
)

// Authenticator validates JWTs issued by the identity provider. With a JWKS
// url it verifies RS256 tokens against the provider's published keys,
// otherwise HS256 tokens signed with the shared secret.
type Authenticator struct {
	jwks     *keyfunc.JWKS
	secret   []byte
	audience string
	issuer   string
	parser   *jwt.Parser
}

// New builds an Authenticator from config. The JWKS is fetched once here and
// refreshed in the background until Close.
func New(cfg config.AuthConfig) (*Authenticator, error) {
	a := &Authenticator{audience: cfg.Audience, issuer: cfg.Issuer}

	switch {
	case cfg.JWKSURL != "":
		jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
			RefreshInterval:   time.Hour,
			RefreshUnknownKID: true,
			RefreshErrorHandler: func(err error) {
				slog.Warn("jwks refresh failed", "url", cfg.JWKSURL, "error", err)
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load jwks: %w", err)
		}
		a.jwks = jwks
		a.parser = jwt.NewParser(jwt.WithValidMethods([]string{"RS256"}))
	case cfg.Secret != "":
		a.secret = []byte(cfg.Secret)
		a.parser = jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	default:
		return nil, errNoKeys
	}

	return a, nil
}

// Close stops the background JWKS refresh
func (a *Authenticator) Close() {
	if a.jwks != nil {
		a.jwks.EndBackground()
	}
}

// SessionFromHeader authenticates an Authorization header value
func (a *Authenticator) SessionFromHeader(header string) (*Session, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, fmt.Errorf("%w: %v", models.ErrUnauthenticated, errMissingAuthorization)
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.Count(token, ".") != 2 {
		return nil, fmt.Errorf("%w: %v", models.ErrUnauthenticated, errBadAuthorization)
	}
	return a.Authenticate(token)
}

// Authenticate verifies a raw token and returns the session of its subject
func (a *Authenticator) Authenticate(token string) (*Session, error) {
	sub, err := a.subject(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnauthenticated, err)
	}
	return NewSession(sub), nil
}

// IssueToken signs a token for userID with the shared secret. Only available
// in shared secret mode; used for local development and tests.
func (a *Authenticator) IssueToken(userID string, ttl time.Duration) (string, error) {
	if a.secret == nil {
		return "", errors.New("token issuing requires a shared secret")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if a.audience != "" {
		claims["aud"] = a.audience
	}
	if a.issuer != "" {
		claims["iss"] = a.issuer
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Authenticator) subject(tokenStr string) (string, error) {
	token, err := a.parser.Parse(tokenStr, a.key)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	now := time.Now().Add(time.Minute).Unix()
	if !claims.VerifyExpiresAt(now, true) {
		return "", errors.New("token expired")
	}
	if !claims.VerifyNotBefore(now, false) {
		return "", errors.New("token not valid yet")
	}
	if a.audience != "" && !claims.VerifyAudience(a.audience, true) {
		return "", errors.New("invalid audience")
	}
	if a.issuer != "" && !claims.VerifyIssuer(a.issuer, true) {
		return "", errors.New("invalid issuer")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("missing sub")
	}
	return sub, nil
}

func (a *Authenticator) key(t *jwt.Token) (any, error) {
	if a.jwks != nil {
		return a.jwks.Keyfunc(t)
	}
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("invalid signing method")
	}
	return a.secret, nil
}
