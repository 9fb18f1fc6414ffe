package routes

import (
	"net/http"
	"time"

	"eventra/handlers"
	"eventra/middleware"
	"eventra/models"
	"eventra/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the booking state machine endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreateInquiryHandler)
		api.GET("", hb.ListBookingsHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.PUT("/:id/confirm", hb.ConfirmBookingHandler)
		api.PUT("/:id/cancel", hb.CancelBookingHandler)
		api.PUT("/:id/complete", hb.CompleteBookingHandler)

		// Date-proposal sub-flow.
		api.POST("/:id/date-proposals", hb.ProposeDateHandler)
		api.PUT("/:id/date-proposals/accept", hb.AcceptDateHandler)
		api.PUT("/:id/date-proposals/decline", hb.DeclineDateHandler)
	}
}

// RegisterConversationRoutes registers messaging and quote-sending endpoints.
func RegisterConversationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/conversations")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.ListConversationsHandler)
		api.GET("/unread-count", hb.UnreadCountHandler)
		api.GET("/:id/messages", hb.ListMessagesHandler)
		api.POST("/:id/messages", hb.SendMessageHandler)
		api.POST("/:id/quotes", hb.SendQuoteHandler)
	}
}

// RegisterQuoteRoutes registers quote settlement endpoints. Settling a quote
// is a customer action, so the role check happens before the handler runs.
func RegisterQuoteRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/quotes")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleCustomer))
		api.PUT("/:id/accept", hb.AcceptQuoteHandler)
		api.PUT("/:id/decline", hb.DeclineQuoteHandler)
	}
}

// RegisterNotificationRoutes registers the notification feed endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.ListNotificationsHandler)
		api.GET("/unread-count", hb.NotificationUnreadCountHandler)
		api.PUT("/:id/read", hb.MarkNotificationReadHandler)
		api.PUT("/read-all", hb.MarkAllNotificationsReadHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"deps":   utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterConversationRoutes(r, hb)
	RegisterQuoteRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
}
