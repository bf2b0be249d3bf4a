package routes

import (
	"github.com/aryb086/eyes-app/controllers"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers the unauthenticated account endpoints. limit is
// the rate-limit middleware guarding credential guessing.
func SetupAuthRoutes(r *gin.Engine, users *controllers.UserController, limit gin.HandlerFunc) {
	auth := r.Group("/api/auth")
	auth.Use(limit)

	auth.POST("/register", users.Register)
	auth.POST("/login", users.Login)
}

// SetupUserRoutes registers the authenticated user endpoints.
func SetupUserRoutes(r *gin.Engine, users *controllers.UserController, locations *controllers.LocationController, auth gin.HandlerFunc) {
	private := r.Group("/api/users")
	private.Use(auth)

	private.GET("/me", users.Me)
	private.GET("/:id", users.GetUser)
	private.POST("/:id/follow", users.FollowUser)
	private.PUT("/:id/location", locations.UpdateUserLocation)
}
