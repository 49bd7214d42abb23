package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/riderota/core/pkg/config"
	"github.com/riderota/core/pkg/kernel"
)

// JWTCodec is the HS256 TokenCodec. Access and refresh tokens use separate
// secrets and audiences, so a token of one class never verifies as the other.
type JWTCodec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	now           func() time.Time
}

type CodecOption func(*JWTCodec)

// WithClock replaces time.Now for signing and verification.
func WithClock(now func() time.Time) CodecOption {
	return func(c *JWTCodec) { c.now = now }
}

type jwtClaims struct {
	TenantSlug string `json:"tenant"`
	jwt.RegisteredClaims
}

// NewJWTCodec fails with a configuration error when either secret is empty
// or both are the same.
func NewJWTCodec(cfg config.JWTConfig, opts ...CodecOption) (*JWTCodec, error) {
	switch {
	case cfg.AccessSecret == "":
		return nil, ErrConfiguration().WithDetail("variable", "ACCESS_TOKEN_SECRET")
	case cfg.RefreshSecret == "":
		return nil, ErrConfiguration().WithDetail("variable", "REFRESH_TOKEN_SECRET")
	case cfg.AccessSecret == cfg.RefreshSecret:
		return nil, ErrConfiguration().WithDetail("reason", "access and refresh secrets must differ")
	case cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0:
		return nil, ErrConfiguration().WithDetail("reason", "token lifetimes must be positive")
	}

	issuer := cfg.Issuer
	if issuer == "" {
		issuer = "riderota"
	}

	c := &JWTCodec{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		issuer:        issuer,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *JWTCodec) AccessTTL() time.Duration  { return c.accessTTL }
func (c *JWTCodec) RefreshTTL() time.Duration { return c.refreshTTL }

func (c *JWTCodec) accessAudience() string  { return c.issuer + "-access" }
func (c *JWTCodec) refreshAudience() string { return c.issuer + "-refresh" }

// Issue signs claim once per secret.
func (c *JWTCodec) Issue(claim Claim) (CredentialPair, error) {
	if !claim.IsValid() {
		return CredentialPair{}, ErrTokenGenerationFailed().WithDetail("reason", "claim is incomplete")
	}

	now := c.now()
	access, err := c.sign(claim, c.accessSecret, c.accessAudience(), now, c.accessTTL)
	if err != nil {
		return CredentialPair{}, err
	}
	refresh, err := c.sign(claim, c.refreshSecret, c.refreshAudience(), now, c.refreshTTL)
	if err != nil {
		return CredentialPair{}, err
	}

	return CredentialPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (c *JWTCodec) VerifyAccess(token string) (Claim, error) {
	return c.verify(token, c.accessSecret, c.accessAudience())
}

func (c *JWTCodec) VerifyRefresh(token string) (Claim, error) {
	return c.verify(token, c.refreshSecret, c.refreshAudience())
}

func (c *JWTCodec) sign(claim Claim, secret []byte, audience string, now time.Time, ttl time.Duration) (string, error) {
	claims := jwtClaims{
		TenantSlug: claim.TenantSlug.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   claim.SubjectID.String(),
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", ErrTokenGenerationFailed().WithCause(err)
	}
	return signed, nil
}

func (c *JWTCodec) verify(token string, secret []byte, audience string) (Claim, error) {
	if token == "" {
		return Claim{}, ErrInvalidCredential().WithDetail("reason", "missing token")
	}

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return Claim{}, ErrInvalidCredential().WithCause(err)
	}

	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid {
		return Claim{}, ErrInvalidCredential().WithDetail("reason", "invalid claims")
	}

	claim := Claim{
		SubjectID:  kernel.NewUserID(claims.Subject),
		TenantSlug: kernel.NewTenantSlug(claims.TenantSlug),
	}
	if !claim.IsValid() {
		return Claim{}, ErrInvalidCredential().WithDetail("reason", "incomplete identity")
	}
	return claim, nil
}
