package middleware

import (
	"net/http"

	"github.com/aryb086/eyes-app/models"
	"github.com/aryb086/eyes-app/repositories"
	"github.com/aryb086/eyes-app/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenHeader is the request header carrying the bearer credential.
const TokenHeader = "x-access-token"

const userContextKey = "user"

// AuthMiddleware validates the x-access-token header and re-fetches the
// referenced user, so a deleted account is rejected even while its token is
// unexpired. The user document is stowed in the gin context for handlers.
func AuthMiddleware(users repositories.UserRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader(TokenHeader)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is missing!"})
			c.Abort()
			return
		}

		userID, err := utils.ParseJWT(tokenString, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is invalid!"})
			c.Abort()
			return
		}

		oid, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is invalid!"})
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), oid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching user"})
			c.Abort()
			return
		}
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found!"})
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated principal set by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
