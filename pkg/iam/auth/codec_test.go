package auth_test

import (
	"testing"
	"time"

	"github.com/riderota/core/pkg/config"
	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/iam/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func jwtConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		Issuer:        "riderota",
	}
}

func newCodec(t *testing.T, clock *fakeClock) *auth.JWTCodec {
	t.Helper()
	codec, err := auth.NewJWTCodec(jwtConfig(), auth.WithClock(clock.Now))
	require.NoError(t, err)
	return codec
}

var alice = auth.Claim{SubjectID: "user-1", TenantSlug: "acme"}

func TestCodecRoundTrip(t *testing.T) {
	codec := newCodec(t, newClock())

	pair, err := codec.Issue(alice)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	got, err := codec.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, alice, got)

	got, err = codec.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, alice, got)
}

func TestCodecClassesDoNotCrossVerify(t *testing.T) {
	codec := newCodec(t, newClock())

	pair, err := codec.Issue(alice)
	require.NoError(t, err)

	_, err = codec.VerifyAccess(pair.RefreshToken)
	assert.True(t, errx.HasCode(err, auth.CodeInvalidCredential))

	_, err = codec.VerifyRefresh(pair.AccessToken)
	assert.True(t, errx.HasCode(err, auth.CodeInvalidCredential))
}

func TestCodecRejectsForeignSecret(t *testing.T) {
	clock := newClock()
	codec := newCodec(t, clock)

	other := jwtConfig()
	other.AccessSecret = "someone-else"
	other.RefreshSecret = "someone-else-refresh"
	foreign, err := auth.NewJWTCodec(other, auth.WithClock(clock.Now))
	require.NoError(t, err)

	pair, err := foreign.Issue(alice)
	require.NoError(t, err)

	_, err = codec.VerifyAccess(pair.AccessToken)
	assert.True(t, errx.HasCode(err, auth.CodeInvalidCredential))
	_, err = codec.VerifyRefresh(pair.RefreshToken)
	assert.True(t, errx.HasCode(err, auth.CodeInvalidCredential))
}

func TestCodecExpiry(t *testing.T) {
	clock := newClock()
	codec := newCodec(t, clock)

	pair, err := codec.Issue(alice)
	require.NoError(t, err)

	clock.Advance(14 * time.Minute)
	_, err = codec.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = codec.VerifyAccess(pair.AccessToken)
	assert.True(t, errx.HasCode(err, auth.CodeInvalidCredential))

	_, err = codec.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)

	clock.Advance(7 * 24 * time.Hour)
	_, err = codec.VerifyRefresh(pair.RefreshToken)
	assert.True(t, errx.HasCode(err, auth.CodeInvalidCredential))
}

func TestCodecRejectsGarbage(t *testing.T) {
	codec := newCodec(t, newClock())

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := codec.VerifyAccess(token)
		assert.True(t, errx.HasCode(err, auth.CodeInvalidCredential), token)
	}
}

func TestNewJWTCodecConfiguration(t *testing.T) {
	tests := map[string]func(*config.JWTConfig){
		"missing access":  func(c *config.JWTConfig) { c.AccessSecret = "" },
		"missing refresh": func(c *config.JWTConfig) { c.RefreshSecret = "" },
		"shared secret":   func(c *config.JWTConfig) { c.RefreshSecret = c.AccessSecret },
		"zero ttl":        func(c *config.JWTConfig) { c.AccessTTL = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := jwtConfig()
			mutate(&cfg)

			codec, err := auth.NewJWTCodec(cfg)
			assert.Nil(t, codec)
			assert.True(t, errx.HasCode(err, auth.CodeConfiguration))
		})
	}
}

func TestIssueRejectsIncompleteClaim(t *testing.T) {
	codec := newCodec(t, newClock())

	_, err := codec.Issue(auth.Claim{SubjectID: "user-1"})
	assert.True(t, errx.HasCode(err, auth.CodeTokenGenerationFailed))
}
