package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

func record(t *testing.T, build func(c echo.Context) error) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, build(c))

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestBuildSuccess(t *testing.T) {
	rec, env := record(t, func(c echo.Context) error {
		return New(c).WithData(map[string]string{"name": "Toyota"}).Build()
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)
	require.Empty(t, env.Message)
	require.NotNil(t, env.Data)
}

func TestBuildCreatedWithMessage(t *testing.T) {
	rec, env := record(t, func(c echo.Context) error {
		return New(c).WithStatus(http.StatusCreated).WithData("x").WithMessage("created").Build()
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, env.Success)
	require.Equal(t, "created", env.Message)
}

func TestBuildNotFound(t *testing.T) {
	rec, env := record(t, func(c echo.Context) error {
		return New(c).WithError(errorbank.NotFound("vehicle brand not found")).Build()
	})

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.False(t, env.Success)
	require.Equal(t, "vehicle brand not found", env.Message)
	require.Nil(t, env.Data)
}

func TestBuildBadRequest(t *testing.T) {
	rec, env := record(t, func(c echo.Context) error {
		return New(c).WithError(errorbank.BadRequest("brandName is required")).Build()
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, env.Success)
	require.Equal(t, "brandName is required", env.Message)
}

func TestBuildInternalHidesDetail(t *testing.T) {
	cause := errors.New("pq: connection refused")
	rec, env := record(t, func(c echo.Context) error {
		return New(c).WithError(errorbank.Internal("failed to list brands", errorbank.WithCause(cause))).Build()
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.False(t, env.Success)
	require.Equal(t, "an unexpected error occurred", env.Message)
	require.NotContains(t, rec.Body.String(), "connection refused")
}

func TestBuildPlainErrorBecomesInternal(t *testing.T) {
	rec, env := record(t, func(c echo.Context) error {
		return New(c).WithError(errors.New("boom")).Build()
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.False(t, env.Success)
	require.NotContains(t, rec.Body.String(), "boom")
	require.Equal(t, "an unexpected error occurred", env.Message)
}
