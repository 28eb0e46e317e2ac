package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/gearbox-hq/gearbox/internal/auth"
	"github.com/gearbox-hq/gearbox/internal/config"
	"github.com/gearbox-hq/gearbox/internal/presentation/http/response"
	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

// SubjectKey is the context key under which the authenticated subject is
// stored for downstream handlers.
const SubjectKey = "auth.subject"

// BearerAuth rejects requests lacking a valid bearer token before any
// handler logic runs. Disabled auth passes everything through.
func BearerAuth(cfg config.Auth, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Enabled {
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return response.New(c).WithError(errorbank.Unauthorized("authorization header required")).Build()
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header {
				return response.New(c).WithError(errorbank.Unauthorized("bearer token required")).Build()
			}

			claims, err := auth.ParseToken(cfg, token)
			if err != nil {
				if logger != nil {
					logger.Debug("token rejected", zap.Error(err))
				}
				return response.New(c).WithError(errorbank.Unauthorized("invalid or expired token")).Build()
			}

			c.Set(SubjectKey, claims.Subject)
			return next(c)
		}
	}
}
