package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// withAuth verifies a JWT issued by the site's auth service, from the
// auth cookie or a Bearer header. This service only verifies tokens, it
// never issues them.
func withAuth(next echo.HandlerFunc, secret []byte) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenStr := ""
		if cookie, err := c.Cookie("auth"); err == nil {
			tokenStr = cookie.Value
		}
		if tokenStr == "" {
			h := c.Request().Header.Get("Authorization")
			if strings.HasPrefix(h, "Bearer ") {
				tokenStr = strings.TrimPrefix(h, "Bearer ")
			}
		}
		if tokenStr == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		if sub, ok := claims["sub"].(string); ok {
			c.Set("user_id", sub)
		}
		return next(c)
	}
}
