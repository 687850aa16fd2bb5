package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"user-api/internal/adapter/gin/handler"
	"user-api/internal/adapter/gin/middleware"
)

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	rateLimiter *middleware.RateLimiter,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	if rateLimiter != nil {
		router.Use(rateLimiter.Middleware())
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "user-api",
		})
	})

	// Swagger UI and the API description it renders. Both live under the
	// same wildcard because gin rejects a static route next to a catch-all.
	swaggerUI := httpSwagger.Handler(
		httpSwagger.URL("/swagger/user.swagger.json"),
	)
	router.GET("/swagger/*any", func(c *gin.Context) {
		if c.Param("any") == "/user.swagger.json" {
			c.File("./api/swagger/user.swagger.json")
			return
		}
		swaggerUI.ServeHTTP(c.Writer, c.Request)
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.POST("/orders", userHandler.PlaceOrder)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	return router
}
