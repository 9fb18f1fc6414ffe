package handlers

import (
	"net/http"

	"eventra/models"
	"eventra/services/messaging"
	"eventra/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessagingHandler exposes conversations and the message log over HTTP.
type MessagingHandler struct {
	svc    messaging.MessagingService
	logger *zap.Logger
}

// NewMessagingHandler creates a MessagingHandler.
func NewMessagingHandler(svc messaging.MessagingService, logger *zap.Logger) *MessagingHandler {
	return &MessagingHandler{svc: svc, logger: logger}
}

// ListConversations handles GET /api/conversations.
func (h *MessagingHandler) ListConversations(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	convs, err := h.svc.ListConversations(c.Request.Context(), identity)
	if err != nil {
		utils.JSONFault(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs})
}

// UnreadCount handles GET /api/conversations/unread-count.
func (h *MessagingHandler) UnreadCount(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	total, err := h.svc.UnreadTotal(c.Request.Context(), identity)
	if err != nil {
		utils.JSONFault(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unreadCount": total})
}

// ListMessages handles GET /api/conversations/:id/messages. Reading a thread
// clears the caller's unread counter on it.
func (h *MessagingHandler) ListMessages(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	msgs, err := h.svc.ListMessages(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		utils.JSONFault(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// SendMessage handles POST /api/conversations/:id/messages.
func (h *MessagingHandler) SendMessage(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	var req struct {
		Type           models.MessageType `json:"type"`
		Text           string             `json:"text"`
		AttachmentURL  string             `json:"attachmentUrl"`
		AttachmentName string             `json:"attachmentName"`
		AttachmentMime string             `json:"attachmentMime"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	content := models.MessageContent{
		Type:           req.Type,
		Text:           req.Text,
		AttachmentURL:  req.AttachmentURL,
		AttachmentName: req.AttachmentName,
		AttachmentMime: req.AttachmentMime,
	}
	msg, err := h.svc.SendMessage(c.Request.Context(), identity, c.Param("id"), content)
	if err != nil {
		utils.JSONFault(c, err)
		return
	}
	h.logger.Debug("message sent",
		zap.String("conversation", msg.ConversationID),
		zap.String("type", string(msg.Type)),
	)
	c.JSON(http.StatusCreated, msg)
}
