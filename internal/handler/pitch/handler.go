package pitch

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/founderhub/founder-api/internal/handler"
	"github.com/founderhub/founder-api/internal/model"
	"github.com/founderhub/founder-api/internal/service/pitch"
)

type Handler struct {
	service *pitch.Service
}

func NewHandler(service *pitch.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) UploadPitchDeck(c *gin.Context) {
	var req model.UploadPitchDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	resp, err := h.service.UploadPitchDeck(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(resp))
}

func (h *Handler) GetPitchDeck(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	deck, err := h.service.GetPitchDeck(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(deck))
}

func (h *Handler) ListPitchDecks(c *gin.Context) {
	founderID, ok := handler.ParseQueryInt64(c, "founder_id")
	if !ok {
		return
	}

	filters := &model.PitchDeckFilters{
		FounderID: founderID,
		Status:    c.Query("status"),
	}

	resp, err := h.service.ListPitchDecks(c.Request.Context(), filters, handler.ParsePagination(c))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	decks := r.Group("/pitch-decks")
	{
		decks.POST("", h.UploadPitchDeck)
		decks.GET("", h.ListPitchDecks)
		decks.GET("/:id", h.GetPitchDeck)
	}
}
