package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gearbox-hq/gearbox/internal/config"
)

func testCfg() config.Auth {
	return config.Auth{Enabled: true, JWTSecret: "test-secret", Issuer: "gearbox"}
}

func TestGenerateAndParseToken(t *testing.T) {
	cfg := testCfg()

	token, expiresAt, err := GenerateToken(cfg, "user-7", []string{"admin"}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, expiresAt.After(time.Now()))

	claims, err := ParseToken(cfg, token)
	require.NoError(t, err)
	require.Equal(t, "user-7", claims.Subject)
	require.Equal(t, []string{"admin"}, claims.Roles)
	require.Equal(t, "gearbox", claims.Issuer)
}

func TestGenerateTokenRequiresSubject(t *testing.T) {
	_, _, err := GenerateToken(testCfg(), "", nil, time.Hour)
	require.Error(t, err)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, _, err := GenerateToken(testCfg(), "user-7", nil, time.Hour)
	require.NoError(t, err)

	other := testCfg()
	other.JWTSecret = "different"
	_, err = ParseToken(other, token)
	require.Error(t, err)
}

func TestParseTokenWrongIssuer(t *testing.T) {
	issuedBy := testCfg()
	issuedBy.Issuer = "someone-else"
	token, _, err := GenerateToken(issuedBy, "user-7", nil, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(testCfg(), token)
	require.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	cfg := testCfg()
	token, _, err := GenerateToken(cfg, "user-7", nil, time.Nanosecond)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = ParseToken(cfg, token)
	require.Error(t, err)
}
