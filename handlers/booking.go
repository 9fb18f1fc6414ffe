package handlers

import (
	"net/http"

	"eventra/middleware"
	"eventra/models"
	"eventra/services/booking"
	"eventra/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking state machine over HTTP.
type BookingHandler struct {
	svc    booking.BookingService
	logger *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger}
}

func identityOrAbort(c *gin.Context) (models.Identity, bool) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return models.Identity{}, false
	}
	return identity, true
}

// CreateInquiry handles POST /api/bookings.
func (h *BookingHandler) CreateInquiry(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	var req booking.InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.svc.CreateFromInquiry(c.Request.Context(), identity, req)
	if err != nil {
		utils.JSONFault(c, err)
		return
	}
	h.logger.Info("inquiry created",
		zap.String("booking", result.Booking.ID),
		zap.String("vendor", result.Booking.VendorID),
	)
	c.JSON(http.StatusCreated, result)
}

// ListBookings handles GET /api/bookings.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	bookings, err := h.svc.ListForParty(c.Request.Context(), identity)
	if err != nil {
		utils.JSONFault(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	b, err := h.svc.Get(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		utils.JSONFault(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ConfirmBooking handles PUT /api/bookings/:id/confirm.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	b, err := h.svc.Confirm(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		utils.JSONFault(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBooking handles PUT /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	b, err := h.svc.Cancel(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		utils.JSONFault(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CompleteBooking handles PUT /api/bookings/:id/complete.
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	b, err := h.svc.Complete(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		utils.JSONFault(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ProposeDate handles POST /api/bookings/:id/date-proposals.
func (h *BookingHandler) ProposeDate(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	var req struct {
		ProposedDate string `json:"proposedDate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.svc.ProposeDate(c.Request.Context(), identity, c.Param("id"), req.ProposedDate)
	if err != nil {
		utils.JSONFault(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// AcceptDate handles PUT /api/bookings/:id/date-proposals/accept.
func (h *BookingHandler) AcceptDate(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	b, err := h.svc.AcceptDate(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		utils.JSONFault(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeclineDate handles PUT /api/bookings/:id/date-proposals/decline.
func (h *BookingHandler) DeclineDate(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	b, err := h.svc.DeclineDate(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		utils.JSONFault(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
