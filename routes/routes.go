package routes

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/phanto-shop/storefront/catalog"
	"github.com/phanto-shop/storefront/controllers"
	"github.com/phanto-shop/storefront/middleware"
)

// Deps carries the constructed stores and catalog source into the router.
type Deps struct {
	Session  controllers.SessionAPI
	Cart     controllers.CartAPI
	Catalog  catalog.Source
	Resolver controllers.ImageResolver
}

// Register wires all storefront routes onto the router.
func Register(r *gin.Engine, deps Deps) {
	sessionCtrl := controllers.NewSessionController(deps.Session)
	cartCtrl := controllers.NewCartController(deps.Cart)
	catalogCtrl := controllers.NewCatalogController(deps.Catalog, deps.Resolver)

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.Use(middleware.NewRateLimiter(rate.Limit(5), 10).Middleware())
	{
		auth.POST("/login", sessionCtrl.Login)
		auth.POST("/register", sessionCtrl.Register)
		auth.POST("/logout", sessionCtrl.Logout)
		auth.GET("/me", sessionCtrl.Me)
	}

	cart := api.Group("/cart")
	{
		cart.GET("", cartCtrl.GetCart)
		cart.DELETE("", cartCtrl.ClearCart)
		cart.POST("/items", cartCtrl.AddItem)
		cart.PATCH("/items/:product_id", cartCtrl.UpdateQuantity)
		cart.DELETE("/items/:product_id", cartCtrl.RemoveItem)
		cart.GET("/summary", cartCtrl.GetSummary)
		cart.POST("/checkout", cartCtrl.Checkout)
	}

	api.GET("/products", catalogCtrl.ListProducts)
	api.GET("/categories", catalogCtrl.ListCategories)
}
