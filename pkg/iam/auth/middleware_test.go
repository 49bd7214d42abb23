package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/riderota/core/pkg/errx/errxfiber"
	"github.com/riderota/core/pkg/iam/auth"
	"github.com/riderota/core/pkg/iam/tenant"
	"github.com/riderota/core/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAudit struct {
	rotations []kernel.UserID
}

func (r *recordingAudit) LogLoginAttempt(context.Context, string, bool, string)                   {}
func (r *recordingAudit) LogLogout(context.Context, kernel.UserID, string)                        {}
func (r *recordingAudit) LogAccountCreated(context.Context, kernel.UserID, kernel.Role, string)    {}
func (r *recordingAudit) LogInvitationCreated(context.Context, kernel.UserID, string, kernel.Role) {}

func (r *recordingAudit) LogTokenRotation(_ context.Context, id kernel.UserID, _ string) {
	r.rotations = append(r.rotations, id)
}

type harness struct {
	app   *fiber.App
	codec *auth.JWTCodec
	clock *fakeClock
	audit *recordingAudit
	calls int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{clock: newClock(), audit: &recordingAudit{}}
	h.codec = newCodec(t, h.clock)

	jar := auth.NewCookieJar("riderota.com", true, "", h.codec.AccessTTL(), h.codec.RefreshTTL())
	mw := auth.NewSessionMiddleware(auth.NewSessionManager(h.codec), jar, h.audit)

	h.app = fiber.New(fiber.Config{ErrorHandler: errxfiber.ErrorHandler})
	h.app.Use(tenant.Middleware("riderota.com"))
	h.app.Get("/:tenant/private", mw.Authenticate(), func(c *fiber.Ctx) error {
		h.calls++
		ac, ok := auth.FromCtx(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(ac.UserID.String())
	})
	return h
}

func (h *harness) get(t *testing.T, host string, pair auth.CredentialPair) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", "http://"+host+"/private", nil)
	if pair.AccessToken != "" {
		req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: pair.AccessToken})
	}
	if pair.RefreshToken != "" {
		req.AddCookie(&http.Cookie{Name: auth.RefreshTokenCookie, Value: pair.RefreshToken})
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func cookiesByName(resp *http.Response) map[string]*http.Cookie {
	out := map[string]*http.Cookie{}
	for _, c := range resp.Cookies() {
		out[c.Name] = c
	}
	return out
}

func TestAuthenticateFreshSessionSetsNoCookies(t *testing.T) {
	h := newHarness(t)
	pair, err := h.codec.Issue(alice)
	require.NoError(t, err)

	resp := h.get(t, "acme.riderota.com", pair)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Empty(t, resp.Cookies())
	assert.Empty(t, h.audit.rotations)
	assert.Equal(t, 1, h.calls)
}

func TestAuthenticateRotationWritesBothCookies(t *testing.T) {
	h := newHarness(t)
	pair, err := h.codec.Issue(alice)
	require.NoError(t, err)

	h.clock.Advance(16 * time.Minute)
	resp := h.get(t, "acme.riderota.com", pair)
	require.Equal(t, 200, resp.StatusCode)

	cookies := cookiesByName(resp)
	require.Contains(t, cookies, auth.AccessTokenCookie)
	require.Contains(t, cookies, auth.RefreshTokenCookie)

	access := cookies[auth.AccessTokenCookie]
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.Equal(t, "riderota.com", strings.TrimPrefix(access.Domain, "."))
	for _, raw := range resp.Header.Values("Set-Cookie") {
		assert.Contains(t, strings.ToLower(raw), "domain=.riderota.com")
	}
	assert.Equal(t, "/", access.Path)
	assert.Equal(t, int((15 * time.Minute).Seconds()), access.MaxAge)

	claim, err := h.codec.VerifyAccess(access.Value)
	require.NoError(t, err)
	assert.Equal(t, alice, claim)

	_, err = h.codec.VerifyRefresh(cookies[auth.RefreshTokenCookie].Value)
	require.NoError(t, err)
	assert.Equal(t, []kernel.UserID{alice.SubjectID}, h.audit.rotations)
}

func TestAuthenticateBearerHeader(t *testing.T) {
	h := newHarness(t)
	pair, err := h.codec.Issue(alice)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "http://acme.riderota.com/private", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestAuthenticateRejectsWithoutRunningHandler(t *testing.T) {
	h := newHarness(t)
	pair, err := h.codec.Issue(alice)
	require.NoError(t, err)

	h.clock.Advance(8 * 24 * time.Hour)
	resp := h.get(t, "acme.riderota.com", pair)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Empty(t, resp.Cookies())

	resp = h.get(t, "acme.riderota.com", auth.CredentialPair{})
	assert.Equal(t, 401, resp.StatusCode)
	assert.Zero(t, h.calls)
}

func TestAuthenticateRejectsOtherTenant(t *testing.T) {
	h := newHarness(t)
	pair, err := h.codec.Issue(alice)
	require.NoError(t, err)

	// Expired access makes the refresh path run; the mismatch must still
	// win before any cookie is written.
	h.clock.Advance(16 * time.Minute)
	resp := h.get(t, "globex.riderota.com", pair)
	assert.Equal(t, 403, resp.StatusCode)
	assert.Empty(t, resp.Cookies())
	assert.Empty(t, h.audit.rotations)
	assert.Zero(t, h.calls)
}
