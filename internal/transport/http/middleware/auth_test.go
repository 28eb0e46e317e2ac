package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gearbox-hq/gearbox/internal/auth"
	"github.com/gearbox-hq/gearbox/internal/config"
)

func doRequest(t *testing.T, cfg config.Auth, authorization string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/Parts", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := BearerAuth(cfg, zap.NewNop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, c
}

func TestBearerAuthDisabledPassesThrough(t *testing.T) {
	rec, _ := doRequest(t, config.Auth{Enabled: false}, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestBearerAuthMissingHeader(t *testing.T) {
	cfg := config.Auth{Enabled: true, JWTSecret: "s", Issuer: "gearbox"}
	rec, _ := doRequest(t, cfg, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), `"success":false`)
}

func TestBearerAuthNonBearerScheme(t *testing.T) {
	cfg := config.Auth{Enabled: true, JWTSecret: "s", Issuer: "gearbox"}
	rec, _ := doRequest(t, cfg, "Basic dXNlcjpwYXNz")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerAuthInvalidToken(t *testing.T) {
	cfg := config.Auth{Enabled: true, JWTSecret: "s", Issuer: "gearbox"}
	rec, _ := doRequest(t, cfg, "Bearer not-a-token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerAuthValidTokenSetsSubject(t *testing.T) {
	cfg := config.Auth{Enabled: true, JWTSecret: "s", Issuer: "gearbox"}
	token, _, err := auth.GenerateToken(cfg, "mechanic-3", []string{"staff"}, time.Hour)
	require.NoError(t, err)

	rec, c := doRequest(t, cfg, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "mechanic-3", c.Get(SubjectKey))
}
