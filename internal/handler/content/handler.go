package content

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/founderhub/founder-api/internal/handler"
	"github.com/founderhub/founder-api/internal/model"
	"github.com/founderhub/founder-api/internal/service/content"
)

type Handler struct {
	service *content.Service
}

func NewHandler(service *content.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreatePost(c *gin.Context) {
	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(post))
}

func (h *Handler) ListPosts(c *gin.Context) {
	authorID, ok := handler.ParseQueryInt64(c, "author_id")
	if !ok {
		return
	}

	filters := &model.PostFilters{
		AuthorID: authorID,
		Tag:      c.Query("tag"),
	}

	resp, err := h.service.ListPosts(c.Request.Context(), filters, handler.ParsePagination(c))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}

// GetPost returns the post with its comments assembled into reply trees.
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	post, err := h.service.GetPost(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(post))
}

func (h *Handler) CreateComment(c *gin.Context) {
	var req model.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	comment, err := h.service.CreateComment(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(comment))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	posts := r.Group("/posts")
	{
		posts.POST("", h.CreatePost)
		posts.GET("", h.ListPosts)
		posts.GET("/:id", h.GetPost)
	}

	comments := r.Group("/comments")
	{
		comments.POST("", h.CreateComment)
	}
}
