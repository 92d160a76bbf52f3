package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/founderhub/founder-api/internal/handler"
	"github.com/founderhub/founder-api/internal/model"
	"github.com/founderhub/founder-api/internal/service/profile"
)

type Handler struct {
	service *profile.Service
}

func NewHandler(service *profile.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateFounderProfile(c *gin.Context) {
	var req model.CreateFounderProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	p, err := h.service.CreateFounderProfile(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(p))
}

func (h *Handler) GetFounderProfile(c *gin.Context) {
	userID, ok := handler.ParseID(c)
	if !ok {
		return
	}

	p, err := h.service.GetFounderProfile(c.Request.Context(), userID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) CreateStartup(c *gin.Context) {
	var req model.CreateStartupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	startup, err := h.service.CreateStartup(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(startup))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	profiles := r.Group("/profiles")
	{
		profiles.POST("", h.CreateFounderProfile)
		profiles.GET("/:id", h.GetFounderProfile)
	}

	startups := r.Group("/startups")
	{
		startups.POST("", h.CreateStartup)
	}
}
