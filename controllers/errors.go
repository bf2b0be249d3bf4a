package controllers

import (
	"errors"
	"net/http"

	"github.com/aryb086/eyes-app/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the API's status taxonomy:
// validation/conflict 400, bad credentials 401, missing entity 404,
// everything else 500 with the raw message.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case services.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case services.IsNotFound(err):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"message": err.Error()})
}
