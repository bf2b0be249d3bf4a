package controllers_test

import (
	"time"

	"github.com/aryb086/eyes-app/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// generateTokenForUnknownUser signs a valid token for an id with no backing
// user document.
func generateTokenForUnknownUser(secret string) (string, error) {
	return utils.GenerateJWT(primitive.NewObjectID().Hex(), secret, time.Hour)
}
