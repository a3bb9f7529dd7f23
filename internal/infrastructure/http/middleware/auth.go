package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	apperrors "github.com/meetinglens/meetinglens/errors"
)

// JWTAuth validates Bearer tokens signed with the shared HMAC secret. When the
// secret is empty the middleware is a no-op, so deployments without auth keep
// working unchanged.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return apperrors.ErrUnauthenticated()
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return apperrors.ErrInvalidToken()
			}

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return apperrors.ErrInvalidToken()
			}

			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if sub, _ := claims["sub"].(string); sub != "" {
					c.Set("user_id", sub)
				}
			}
			return next(c)
		}
	}
}
