package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/JonasLimhi/Edmund-Website/internal/handlers"
	"github.com/JonasLimhi/Edmund-Website/internal/identity"
	middleware "github.com/JonasLimhi/Edmund-Website/internal/middleware/auth"
)

type Deps struct {
	ProductHandler *handlers.ProductHandler
	AuthHandler    *handlers.AuthHandler
	SocialHandler  *handlers.SocialHandler
	CartHandler    *handlers.CartHandler
	Identity       *identity.Manager
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	products := e.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	admin := products.Group("", middleware.RequireAdmin(d.Identity))
	admin.POST("", d.ProductHandler.CreateProduct)
	admin.PATCH("/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/:id", d.ProductHandler.DeleteProduct)

	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)
	e.POST("/logout", d.AuthHandler.LogOut)
	e.GET("/session", d.AuthHandler.GetSession)

	e.POST("/fb/login", d.SocialHandler.FBLogin)
	e.POST("/fb/link", d.SocialHandler.FBLink, middleware.RequireLogin(d.Identity))

	// The cart is open to anonymous shoppers, as in the storefront.
	carts := e.Group("/cart")
	carts.GET("", d.CartHandler.GetCart)
	carts.POST("", d.CartHandler.AddToCart)
	carts.DELETE("", d.CartHandler.ClearCart)
}
