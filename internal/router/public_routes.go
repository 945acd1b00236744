package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/raffle-ticket-sales/internal/handler"
	"github.com/iliyamo/raffle-ticket-sales/internal/middleware"
)

// RegisterPublic registers the raffle pages and the selection API.  A
// token is optional: it only unlocks the admin controls of the pages.
// limit guards the endpoints that change state or reach the broker.
func RegisterPublic(e *echo.Echo, r *handler.RaffleHandler, p *handler.PurchaseHandler, jwtSecret string, limit echo.MiddlewareFunc) {
	pages := e.Group("", middleware.OptionalIdentity(jwtSecret))
	pages.GET("/", redirectToList)
	pages.GET("/rifas", r.ListRaffles)
	pages.GET("/rifas/:id", r.Detail)
	pages.GET("/rifas/:id/modal/:kind", r.Modal)
	pages.POST("/rifas/:id/seleccion", r.ToggleForm, limit)
	pages.POST("/rifas/:id/comprar", p.PurchaseForm, limit)

	api := e.Group("/v1/raffles", middleware.OptionalIdentity(jwtSecret))
	api.POST("/:id/selection/toggle", r.ToggleJSON, limit)
	api.GET("/:id/cards", r.Cards)
	api.POST("/:id/purchase", p.PurchaseJSON, limit)
}
