package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// RoleSuperuser is the role of raffle administrators.
const RoleSuperuser = "SUPERUSER"

// Subject returns the authenticated subject, "anon" when there is none.
// Numeric sub claims decode as float64 and are printed without decimals.
func Subject(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return fmt.Sprintf("%.0f", v)
	}
	return "anon"
}

// IsAdmin reports whether the request carries a superuser identity.
func IsAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == RoleSuperuser
}
