package routes

import (
	"net/http"

	"github.com/aryb086/eyes-app/controllers"

	"github.com/gin-gonic/gin"
)

// SetupLocationRoutes registers the public location taxonomy endpoints and
// the health check.
func SetupLocationRoutes(r *gin.Engine, locations *controllers.LocationController) {
	cities := r.Group("/api/locations/cities")

	cities.GET("", locations.GetCities)
	cities.POST("", locations.CreateCity)
	cities.GET("/:id/neighborhoods", locations.GetNeighborhoods)
	cities.POST("/:id/neighborhoods", locations.AddNeighborhood)

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
}
