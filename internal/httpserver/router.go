package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/middleware/auth"
	"github.com/Skotchmaster/storefront/internal/tokens"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CatalogHandler *CatalogHTTP
	HealthHandler  *HealthHTTP
	Verifier       auth.TokenVerifier
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", d.HealthHandler.Live)
	e.GET("/health/ready", d.HealthHandler.Ready)

	api := e.Group("/api")
	api.GET("/db-test", d.HealthHandler.DBTest)

	api.POST("/users/signup", d.AuthHandler.Signup)
	api.POST("/users/login", d.AuthHandler.LoginUser)
	api.POST("/admin/login", d.AuthHandler.LoginAdmin)

	anyRole := auth.Authorize(d.Verifier, tokens.RoleUser, tokens.RoleAdmin)
	adminOnly := auth.Authorize(d.Verifier, tokens.RoleAdmin)

	products := api.Group("/products")
	products.GET("", d.CatalogHandler.ListProducts, anyRole)
	products.GET("/search", d.CatalogHandler.SearchProducts, anyRole)
	products.POST("", d.CatalogHandler.CreateProduct, adminOnly)
	products.PUT("/:id", d.CatalogHandler.UpdateProduct, adminOnly)
	products.DELETE("/:id", d.CatalogHandler.DeleteProduct, adminOnly)
}
