package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssuer(t *testing.T) *Issuer {
	t.Helper()
	iss, err := NewIssuer(Config{APIKey: "APIkey123", APISecret: "secret-secret-secret", URL: "wss://voice.example.com"})
	require.NoError(t, err)
	return iss
}

func TestNewIssuer_MissingCredentials(t *testing.T) {
	_, err := NewIssuer(Config{APIKey: "k", APISecret: "s"})
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = NewIssuer(Config{})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestIssue_AndVerify(t *testing.T) {
	iss := testIssuer(t)

	grant, err := iss.Issue("support-room", "alice")
	require.NoError(t, err)

	assert.Equal(t, "wss://voice.example.com", grant.URL)
	assert.Equal(t, "support-room", grant.Room)
	assert.Equal(t, "alice", grant.Identity)
	assert.NotEmpty(t, grant.Token)

	claims, err := iss.Verify(grant.Token)
	require.NoError(t, err)

	assert.Equal(t, "APIkey123", claims.Issuer)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "alice", claims.Name)
	require.NotNil(t, claims.Video)
	assert.True(t, claims.Video.RoomJoin)
	assert.Equal(t, "support-room", claims.Video.Room)
	require.NotNil(t, claims.Video.CanPublish)
	assert.True(t, *claims.Video.CanPublish)
	assert.True(t, *claims.Video.CanSubscribe)
	assert.True(t, *claims.Video.CanPublishData)

	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.NotBefore)
	assert.Equal(t, DefaultTTL, claims.ExpiresAt.Sub(claims.NotBefore.Time))
}

func TestIssue_Defaults(t *testing.T) {
	iss := testIssuer(t)

	grant, err := iss.Issue("", "")
	require.NoError(t, err)

	assert.Equal(t, DefaultRoom, grant.Room)
	assert.Regexp(t, `^user-[0-9a-f]{8}$`, grant.Identity)

	other, err := iss.Issue("", "")
	require.NoError(t, err)
	assert.NotEqual(t, grant.Identity, other.Identity)
}

func TestVerify_WrongSecret(t *testing.T) {
	grant, err := testIssuer(t).Issue("room", "bob")
	require.NoError(t, err)

	other, err := NewIssuer(Config{APIKey: "APIkey123", APISecret: "another-secret", URL: "wss://x"})
	require.NoError(t, err)

	_, err = other.Verify(grant.Token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestVerify_Expired(t *testing.T) {
	iss, err := NewIssuer(Config{APIKey: "k", APISecret: "s", URL: "wss://x", TTL: time.Minute})
	require.NoError(t, err)

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	iss.now = func() time.Time { return start }
	grant, err := iss.Issue("room", "carol")
	require.NoError(t, err)

	iss.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = iss.Verify(grant.Token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
