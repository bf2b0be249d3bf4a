package controllers

import (
	"net/http"

	userdto "github.com/aryb086/eyes-app/dto/user"
	"github.com/aryb086/eyes-app/middleware"
	"github.com/aryb086/eyes-app/models"
	"github.com/aryb086/eyes-app/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

func (uc *UserController) Register(c *gin.Context) {
	var in userdto.UserRegisterDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	token, user, err := uc.users.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"user":    identity(user),
	})
}

func (uc *UserController) Login(c *gin.Context) {
	var in userdto.UserLoginDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	token, user, err := uc.users.Login(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    identity(user),
	})
}

func (uc *UserController) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, user.Profile(true))
}

func (uc *UserController) GetUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	user, err := uc.users.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Profile(false))
}

func (uc *UserController) FollowUser(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	following, err := uc.users.ToggleFollow(c.Request.Context(), actor, targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "User unfollowed"
	if following {
		message = "User followed"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "following": following})
}

// identity is the compact user object returned by register and login.
func identity(user *models.User) gin.H {
	return gin.H{
		"id":       user.ID.Hex(),
		"username": user.Username,
		"email":    user.Email,
		"fullName": user.FullName,
	}
}
