package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Booking endpoints
	CreateInquiryHandler   gin.HandlerFunc
	ListBookingsHandler    gin.HandlerFunc
	GetBookingHandler      gin.HandlerFunc
	ConfirmBookingHandler  gin.HandlerFunc
	CancelBookingHandler   gin.HandlerFunc
	CompleteBookingHandler gin.HandlerFunc

	// Date-proposal endpoints
	ProposeDateHandler gin.HandlerFunc
	AcceptDateHandler  gin.HandlerFunc
	DeclineDateHandler gin.HandlerFunc

	// Conversation endpoints
	ListConversationsHandler gin.HandlerFunc
	UnreadCountHandler       gin.HandlerFunc
	ListMessagesHandler      gin.HandlerFunc
	SendMessageHandler       gin.HandlerFunc

	// Quote endpoints
	SendQuoteHandler    gin.HandlerFunc
	AcceptQuoteHandler  gin.HandlerFunc
	DeclineQuoteHandler gin.HandlerFunc

	// Notification endpoints
	ListNotificationsHandler        gin.HandlerFunc
	NotificationUnreadCountHandler  gin.HandlerFunc
	MarkNotificationReadHandler     gin.HandlerFunc
	MarkAllNotificationsReadHandler gin.HandlerFunc
}
