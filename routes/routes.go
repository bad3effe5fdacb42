package routes

import (
	"time"

	"reservodojo/handlers"
	"reservodojo/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
}

// RegisterConfigRoutes registers trainer config endpoints. Reading is open to
// every member of the accommodation; changing it needs the admin role.
func RegisterConfigRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	cfg := api.Group("/config")
	{
		cfg.GET("", hb.GetConfig)

		admin := cfg.Group("", middleware.RequireAdmin())
		admin.PUT("", hb.SaveConfig)
		admin.POST("/validate", hb.ValidateConfig)
	}
}

// RegisterScenarioRoutes registers scenario generation endpoints.
func RegisterScenarioRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	scenarios := api.Group("/scenarios")
	{
		scenarios.POST("", hb.NewScenario)
		scenarios.GET("/:generatedId", hb.GetScenario)
		scenarios.DELETE("/:generatedId", hb.DiscardScenario)
		scenarios.POST("/:generatedId/finish", hb.FinishScenario)
	}
}

// RegisterTaskRoutes registers finished task endpoints.
func RegisterTaskRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	tasks := api.Group("/tasks")
	{
		tasks.GET("", hb.ListTasks)
		tasks.GET("/:id", hb.GetTask)
		tasks.PATCH("/:id/review", hb.ReviewTask)
		tasks.GET("/:id/download", hb.DownloadTask)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)

	api := r.Group("/api", middleware.JWTAuthMiddleware())
	RegisterConfigRoutes(api, hb)
	RegisterScenarioRoutes(api, hb)
	RegisterTaskRoutes(api, hb)
}
