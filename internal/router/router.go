package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jmo7728/5-final-daynight-jam/internal/api"
	"github.com/jmo7728/5-final-daynight-jam/internal/middleware"
	"github.com/jmo7728/5-final-daynight-jam/internal/service"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	recommendHandler *api.RecommendHandler,
	recipeHandler *api.RecipeHandler,
	authService service.IAuthService,
	rateLimiter *middleware.RateLimiter,
	corsOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(corsOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.RequireAuth(authService))
	{
		protected.GET("/auth/me", authHandler.Me)

		protected.POST("/recommend", rateLimiter.Middleware(), recommendHandler.Recommend)
		protected.POST("/replace", recommendHandler.Replace)

		recipes := protected.Group("/recipes")
		{
			recipes.POST("", recipeHandler.SaveRecipe)
			recipes.GET("", recipeHandler.ListRecipes)
			recipes.GET("/:id", recipeHandler.GetRecipe)
		}
	}

	return router
}
