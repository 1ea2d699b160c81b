package auth

import (
	"context"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/teamtrack/internal/domain/user"
	"github.com/riskibarqy/teamtrack/internal/usecase"
)

const defaultTokenTTL = 24 * time.Hour

type TokenConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	clock  clockwork.Clock
}

func NewTokenManager(cfg TokenConfig, clock clockwork.Clock) (*TokenManager, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, crerr.New("jwt secret is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTokenTTL
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TokenManager{
		secret: []byte(secret),
		issuer: strings.TrimSpace(cfg.Issuer),
		ttl:    cfg.TTL,
		clock:  clock,
	}, nil
}

func (m *TokenManager) Issue(principal user.Principal) (string, time.Time, error) {
	now := m.clock.Now().UTC()
	expiresAt := now.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		Email: principal.Email,
		Role:  principal.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, crerr.Wrap(err, "sign access token")
	}
	return signed, expiresAt, nil
}

func (m *TokenManager) VerifyAccessToken(_ context.Context, raw string) (user.Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.clock.Now),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	var claims accessClaims
	_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return user.Principal{}, crerr.WithSecondaryError(crerr.Wrap(usecase.ErrUnauthorized, "invalid access token"), err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "access token has no subject")
	}

	return user.Principal{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
