package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/founderhub/founder-api/internal/handler"
	"github.com/founderhub/founder-api/internal/model"
	"github.com/founderhub/founder-api/internal/service/booking"
)

type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateOfficeHours(c *gin.Context) {
	var req model.CreateOfficeHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	oh, err := h.service.CreateOfficeHours(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(oh))
}

func (h *Handler) GetOfficeHours(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	oh, err := h.service.GetOfficeHours(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(oh))
}

func (h *Handler) AddAvailability(c *gin.Context) {
	var req model.AddAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	slot, err := h.service.AddAvailability(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(slot))
}

func (h *Handler) ListSlots(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	onlyAvailable := c.DefaultQuery("available", "true") != "false"

	slots, err := h.service.ListSlots(c.Request.Context(), id, onlyAvailable)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(slots))
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(b))
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(b))
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	// The cancellation reason is optional, so an empty body is fine.
	var req model.CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
			return
		}
	}

	b, err := h.service.CancelBooking(c.Request.Context(), id, req.Reason)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(b))
}

func (h *Handler) ListBookings(c *gin.Context) {
	founderID, ok := handler.ParseQueryInt64(c, "founder_id")
	if !ok {
		return
	}
	expertID, ok := handler.ParseQueryInt64(c, "expert_id")
	if !ok {
		return
	}

	filters := &model.BookingFilters{
		FounderID: founderID,
		ExpertID:  expertID,
		Status:    model.BookingStatus(c.Query("status")),
	}

	resp, err := h.service.ListBookings(c.Request.Context(), filters, handler.ParsePagination(c))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	officeHours := r.Group("/office-hours")
	{
		officeHours.POST("", h.CreateOfficeHours)
		officeHours.GET("/:id", h.GetOfficeHours)
		officeHours.POST("/availability", h.AddAvailability)
		officeHours.GET("/:id/slots", h.ListSlots)
	}

	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
	}
}
