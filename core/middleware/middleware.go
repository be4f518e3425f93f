package middleware

import (
	"room-booking-api/core/constants"
	"room-booking-api/core/controller"
	"room-booking-api/core/errors"
	"room-booking-api/core/logger"
	"room-booking-api/core/utils"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	controller.BaseController
}

func NewMiddleware() *Middleware {
	return &Middleware{BaseController: controller.NewBaseController()}
}

// AuthMiddleware validates the bearer token and stores its claims under
// constants.ContextTokenData.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return m.Unauthorized(errors.ErrMissingAuthorizationHeader, "missing authorization header")
			}

			token, ok := utils.GetTokenFromHeader(header)
			if !ok {
				return m.Unauthorized(errors.ErrInvalidTokenFormat, "authorization header must be a bearer token")
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				logger.Warn("Middleware:AuthMiddleware:InvalidToken", "error", err)
				return m.Unauthorized(errors.ErrUnauthorized, "invalid or expired token")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// TokenData returns the claims set by AuthMiddleware, if any.
func TokenData(c echo.Context) (*utils.TokenClaims, bool) {
	claims, ok := c.Get(constants.ContextTokenData).(*utils.TokenClaims)
	return claims, ok && claims != nil
}
