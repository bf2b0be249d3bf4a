package controllers

import (
	"errors"
	"net/http"

	locationdto "github.com/aryb086/eyes-app/dto/location"
	"github.com/aryb086/eyes-app/middleware"
	"github.com/aryb086/eyes-app/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LocationController struct {
	locations *services.LocationService
}

func NewLocationController(locations *services.LocationService) *LocationController {
	return &LocationController{locations: locations}
}

func (lc *LocationController) GetCities(c *gin.Context) {
	cities, err := lc.locations.ListCities(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cities)
}

func (lc *LocationController) GetNeighborhoods(c *gin.Context) {
	cityID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid city ID"})
		return
	}

	city, err := lc.locations.GetCity(c.Request.Context(), cityID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"city_id":       city.ID.Hex(),
		"city_name":     city.Name,
		"neighborhoods": city.Neighborhoods,
	})
}

func (lc *LocationController) CreateCity(c *gin.Context) {
	var in locationdto.CityCreateDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	city, err := lc.locations.CreateCity(c.Request.Context(), in)
	if err != nil {
		var dup *services.DuplicateCityError
		if errors.As(err, &dup) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": dup.Error(),
				"city_id": dup.CityID,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "City created successfully",
		"city":    city,
	})
}

func (lc *LocationController) AddNeighborhood(c *gin.Context) {
	cityID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid city ID"})
		return
	}

	var in locationdto.NeighborhoodCreateDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	neighborhood, err := lc.locations.AddNeighborhood(c.Request.Context(), cityID, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Neighborhood added successfully",
		"neighborhood": neighborhood,
	})
}

// UpdateUserLocation requires the path id to be the caller's own id; the
// upstream version of this endpoint accepted unauthenticated writes to any
// user, which was a hole, not a feature.
func (lc *LocationController) UpdateUserLocation(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	if c.Param("id") != user.ID.Hex() {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only update your own location"})
		return
	}

	var in locationdto.LocationUpdateDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	location, err := lc.locations.UpdateUserLocation(c.Request.Context(), user.ID, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Location updated successfully",
		"location": location,
	})
}
