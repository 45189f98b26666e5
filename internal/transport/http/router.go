package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/mvoronin/market_ledger/internal/handlers"
)

type Deps struct {
	TokenHandler   *handlers.TokenHandler
	AccountHandler *handlers.AccountHandler
	ProductHandler *handlers.ProductHandler
	CartHandler    *handlers.CartHandler
	SearchHandler  *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/token", d.TokenHandler.IssueToken)

	v1.POST("/account", d.AccountHandler.CreateAccount)
	v1.GET("/account/:address", d.AccountHandler.GetAccount)
	v1.PATCH("/account", d.AccountHandler.PatchAccount)
	v1.DELETE("/account", d.AccountHandler.DeleteAccount)

	v1.POST("/products", d.ProductHandler.CreateProduct)
	v1.GET("/products", d.ProductHandler.GetProducts)
	v1.GET("/products/:id", d.ProductHandler.GetProduct)
	v1.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	v1.DELETE("/products/:id", d.ProductHandler.DeleteProduct)

	v1.POST("/cart", d.CartHandler.AddToCart)
	v1.GET("/cart/:address", d.CartHandler.GetCart)
	v1.PATCH("/cart", d.CartHandler.PatchCart)
	v1.DELETE("/cart", d.CartHandler.DeleteCart)

	v1.GET("/search", d.SearchHandler.Search)
}
