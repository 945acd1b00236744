package middleware // middleware holds the Echo middleware shared by the routers

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// parseBearer validates the Bearer token of the request with the HS256
// secret.  ok is false when the header is missing; err is set when a token
// is present but invalid.
func parseBearer(c echo.Context, secret string) (claims jwt.MapClaims, ok bool, err error) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return nil, false, nil
	}
	raw := strings.TrimPrefix(auth, "Bearer ")
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, true, echo.ErrUnauthorized
	}
	claims, isMap := tok.Claims.(jwt.MapClaims)
	if !isMap {
		return nil, true, echo.ErrUnauthorized
	}
	return claims, true, nil
}

func setIdentity(c echo.Context, claims jwt.MapClaims) {
	c.Set("user_id", claims["sub"])
	c.Set("role", claims["role"])
}

// JWTAuth rejects requests without a valid Bearer token issued by the
// backend and stores the sub and role claims under "user_id" and "role".
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, present, err := parseBearer(c, secret)
			if !present {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			setIdentity(c, claims)
			return next(c)
		}
	}
}

// OptionalIdentity is JWTAuth for public pages: a valid token (Bearer
// header or the "token" cookie) sets the identity, anything else leaves
// the visitor anonymous.
func OptionalIdentity(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				if ck, err := c.Cookie("token"); err == nil && ck.Value != "" {
					c.Request().Header.Set("Authorization", "Bearer "+ck.Value)
				}
			}
			if claims, present, err := parseBearer(c, secret); present && err == nil {
				setIdentity(c, claims)
			}
			return next(c)
		}
	}
}
