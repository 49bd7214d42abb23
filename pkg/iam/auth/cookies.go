package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// CookieJar moves credential pairs in and out of HTTP cookies scoped to
// the root domain, so one login is shared by every tenant subdomain.
type CookieJar struct {
	Domain     string
	Secure     bool
	SameSite   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewCookieJar(rootDomain string, secure bool, sameSite string, accessTTL, refreshTTL time.Duration) *CookieJar {
	if sameSite == "" {
		sameSite = fiber.CookieSameSiteLaxMode
	}
	return &CookieJar{
		Domain:     "." + strings.TrimPrefix(rootDomain, "."),
		Secure:     secure,
		SameSite:   sameSite,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}
}

// Read takes the access token from an Authorization bearer header when one
// is present, otherwise from its cookie. The refresh token only travels
// as a cookie.
func (j *CookieJar) Read(c *fiber.Ctx) CredentialPair {
	access := c.Cookies(AccessTokenCookie)
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") && token != "" {
			access = strings.TrimSpace(token)
		}
	}
	return CredentialPair{
		AccessToken:  access,
		RefreshToken: c.Cookies(RefreshTokenCookie),
	}
}

func (j *CookieJar) Write(c *fiber.Ctx, pair CredentialPair) {
	c.Cookie(j.cookie(AccessTokenCookie, pair.AccessToken, j.AccessTTL))
	c.Cookie(j.cookie(RefreshTokenCookie, pair.RefreshToken, j.RefreshTTL))
}

// Clear expires both cookies.
func (j *CookieJar) Clear(c *fiber.Ctx) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		ck := j.cookie(name, "", 0)
		ck.MaxAge = -1
		ck.Expires = time.Unix(0, 0)
		c.Cookie(ck)
	}
}

func (j *CookieJar) cookie(name, value string, ttl time.Duration) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   j.Domain,
		MaxAge:   int(ttl.Seconds()),
		Secure:   j.Secure,
		HTTPOnly: true,
		SameSite: j.SameSite,
	}
}
