package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dfryer1193/postboard/api"
	"github.com/dfryer1193/postboard/blog/application"
	"github.com/dfryer1193/postboard/blog/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type PostsHandler struct {
	service *application.PostService
}

func NewPostsHandler(service *application.PostService) *PostsHandler {
	return &PostsHandler{service: service}
}

func (h *PostsHandler) GetPosts(c *gin.Context) {
	posts, err := h.service.ListPosts(c.Request.Context(), c.Query("sort"), c.Query("direction"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.FromDomainList(posts))
}

func (h *PostsHandler) GetPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := h.service.GetPost(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.FromDomain(post))
}

func (h *PostsHandler) CreatePost(c *gin.Context) {
	proto := api.PostProto{}
	if err := c.ShouldBindJSON(&proto); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), proto.Title, proto.Content)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, api.FromDomain(post))
}

func (h *PostsHandler) UpdatePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	proto := api.PostProto{}
	if err := c.ShouldBindJSON(&proto); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.service.UpdatePost(c.Request.Context(), id, proto.ToUpdate())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.FromDomain(post))
}

func (h *PostsHandler) DeletePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.String(http.StatusOK, "Post with id %d has been deleted successfully", id)
}

func (h *PostsHandler) SearchPosts(c *gin.Context) {
	posts, err := h.service.SearchPosts(c.Request.Context(), c.Query("title"), c.Query("content"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.FromDomainList(posts))
}

// postID parses the :id path parameter, answering 400 when it is not a number
func postID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid post id")
		return 0, false
	}
	return id, true
}

// writeError maps domain failures to status codes with a plain-text body
func writeError(c *gin.Context, err error) {
	var domainErr *domain.Error
	switch {
	case errors.As(err, &domainErr):
		c.String(http.StatusBadRequest, domainErr.Message)
	case errors.Is(err, domain.ErrPostNotFound):
		c.String(http.StatusNotFound, domain.ErrPostNotFound.Error())
	default:
		_ = c.Error(err)
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.String(http.StatusInternalServerError, "Internal server error")
	}
}
