package routes

import (
	"github.com/aryb086/eyes-app/controllers"

	"github.com/gin-gonic/gin"
)

// SetupPostRoutes registers the post endpoints; all of them require auth.
func SetupPostRoutes(r *gin.Engine, posts *controllers.PostController, auth gin.HandlerFunc) {
	private := r.Group("/api/posts")
	private.Use(auth)

	private.POST("", posts.CreatePost)
	private.GET("", posts.GetPosts)
	private.POST("/:id/like", posts.LikePost)
}
