package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/auth"
	"storefront/internal/handlers"
	"storefront/internal/logger"
	"storefront/internal/models"
)

type Handlers struct {
	Products *handlers.ProductHandler
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	Health   *handlers.HealthHandler
}

// NewRouter arma el engine con recovery y log de requests.
func NewRouter(log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logger.GinLogger(log))
	return router
}

// RegisterRoutes registra la API. uploadDir vacío desactiva el servidor de
// archivos estáticos (imágenes en S3).
func RegisterRoutes(router *gin.Engine, h Handlers, issuer *auth.Issuer, uploadDir string) {
	router.GET("/healthz", h.Health.Health)

	if uploadDir != "" {
		router.Static("/public/uploads", uploadDir)
		router.Static("/uploads", uploadDir)
	}

	api := router.Group("/api")
	{
		api.GET("", h.Health.Hello)

		api.GET("/products", h.Products.ListProducts)
		api.GET("/products/slug/:slug", h.Products.GetProductBySlug)

		api.POST("/register", h.Auth.Register)
		api.POST("/login", h.Auth.Login)
		api.POST("/logout", h.Auth.Logout)
		api.POST("/upload-profile-image", h.Auth.UploadProfileImage)
	}

	admin := api.Group("", auth.RequireToken(issuer), auth.RequireRole(models.RoleAdmin))
	{
		admin.POST("/products", h.Products.CreateProduct)
		admin.PUT("/products/:id", h.Products.UpdateProduct)
		admin.DELETE("/products/:id", h.Products.DeleteProduct)
		admin.POST("/products/upload-image", h.Products.UploadImage)

		admin.GET("/users", h.Users.ListUsers)
		admin.PUT("/users/:id", h.Users.UpdateUser)
		admin.DELETE("/users/:id", h.Users.DeleteUser)
	}
}
