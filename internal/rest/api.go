package rest

import (
	"net/http"

	"github.com/dfryer1193/postboard/blog/application"
	"github.com/gin-gonic/gin"
)

func NewApi(router *gin.Engine, service *application.PostService) {
	posts := NewPostsHandler(service)

	router.GET("/healthz", Health)

	postsApi := router.Group("/api/posts")
	{
		postsApi.GET("", posts.GetPosts)
		postsApi.POST("", posts.CreatePost)
		postsApi.GET("/search", posts.SearchPosts)
		postsApi.GET("/:id", posts.GetPost)
		postsApi.PUT("/:id", posts.UpdatePost)
		postsApi.DELETE("/:id", posts.DeletePost)
	}
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
