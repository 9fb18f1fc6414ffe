package handlers

import (
	"net/http"

	"eventra/services/quote"
	"eventra/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// QuoteHandler exposes the quote negotiation engine over HTTP.
type QuoteHandler struct {
	svc    quote.QuoteService
	logger *zap.Logger
}

// NewQuoteHandler creates a QuoteHandler.
func NewQuoteHandler(svc quote.QuoteService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{svc: svc, logger: logger}
}

// SendQuote handles POST /api/conversations/:id/quotes.
func (h *QuoteHandler) SendQuote(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	var req quote.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	q, err := h.svc.Send(c.Request.Context(), identity, c.Param("id"), req)
	if err != nil {
		utils.JSONFault(c, err)
		return
	}
	h.logger.Info("quote sent",
		zap.String("quote", q.ID),
		zap.String("conversation", q.ConversationID),
	)
	c.JSON(http.StatusCreated, q)
}

// AcceptQuote handles PUT /api/quotes/:id/accept.
func (h *QuoteHandler) AcceptQuote(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	result, err := h.svc.Accept(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		utils.JSONFault(c, err)
		return
	}
	h.logger.Info("quote accepted",
		zap.String("quote", result.Quote.ID),
		zap.String("booking", result.Booking.ID),
	)
	c.JSON(http.StatusOK, result)
}

// DeclineQuote handles PUT /api/quotes/:id/decline.
func (h *QuoteHandler) DeclineQuote(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	q, err := h.svc.Decline(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		utils.JSONFault(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}
