package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/raffle-ticket-sales/internal/handler"
	"github.com/iliyamo/raffle-ticket-sales/internal/middleware"
)

// RegisterAdmin registers the superuser endpoints under /v1/admin.  They
// require a valid JWT with the SUPERUSER role.
func RegisterAdmin(e *echo.Echo, x *handler.ExportHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleSuperuser),
	)
	g.GET("/raffles/:id/cards/:phone/export", x.ExportCard)
}
