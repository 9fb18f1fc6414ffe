package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventra/config"
	"eventra/cron"
	"eventra/database"
	"eventra/handlers"
	"eventra/middleware"
	"eventra/routes"
	"eventra/services/booking"
	"eventra/services/email"
	"eventra/services/messaging"
	"eventra/services/notification"
	"eventra/services/quote"
	"eventra/utils"

	bookingRepoPkg "eventra/database/repository/booking"
	conversationRepoPkg "eventra/database/repository/conversation"
	messageRepoPkg "eventra/database/repository/message"
	notificationRepoPkg "eventra/database/repository/notification"
	quoteRepoPkg "eventra/database/repository/quote"
	userRepoPkg "eventra/database/repository/user"
	vendorRepoPkg "eventra/database/repository/vendor"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	convRepo := conversationRepoPkg.NewMongoConversationRepo()
	msgRepo := messageRepoPkg.NewMongoMessageRepo()
	qRepo := quoteRepoPkg.NewMongoQuoteRepo()
	bRepo := bookingRepoPkg.NewMongoBookingRepo()
	notifRepo := notificationRepoPkg.NewMongoNotificationRepo()
	vRepo := vendorRepoPkg.NewMongoVendorRepo()
	uRepo := userRepoPkg.NewMongoUserRepo()

	// email queue client + worker.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
	})
	defer queueClient.Close()

	mailer := email.NewMailer(email.NewSender())
	cron.InitEmailWorker(mailer)

	// services.
	notifSvc, err := notification.NewDefaultNotificationService(notifRepo, uRepo, queueClient)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}
	messagingSvc, err := messaging.NewDefaultMessagingService(convRepo, msgRepo, qRepo, notifSvc)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize messaging service: %v", err)
	}
	quoteSvc, err := quote.NewDefaultQuoteService(qRepo, convRepo, notifSvc)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize quote service: %v", err)
	}
	bookingSvc, err := booking.NewDefaultBookingService(bRepo, vRepo, convRepo, notifSvc)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize booking service: %v", err)
	}

	// handlers.
	bookingHandler := handlers.NewBookingHandler(bookingSvc, logger)
	messagingHandler := handlers.NewMessagingHandler(messagingSvc, logger)
	quoteHandler := handlers.NewQuoteHandler(quoteSvc, logger)
	notificationHandler := handlers.NewNotificationHandler(notifSvc)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Booking endpoints.
		CreateInquiryHandler:   bookingHandler.CreateInquiry,
		ListBookingsHandler:    bookingHandler.ListBookings,
		GetBookingHandler:      bookingHandler.GetBooking,
		ConfirmBookingHandler:  bookingHandler.ConfirmBooking,
		CancelBookingHandler:   bookingHandler.CancelBooking,
		CompleteBookingHandler: bookingHandler.CompleteBooking,

		// Date-proposal endpoints.
		ProposeDateHandler: bookingHandler.ProposeDate,
		AcceptDateHandler:  bookingHandler.AcceptDate,
		DeclineDateHandler: bookingHandler.DeclineDate,

		// Conversation endpoints.
		ListConversationsHandler: messagingHandler.ListConversations,
		UnreadCountHandler:       messagingHandler.UnreadCount,
		ListMessagesHandler:      messagingHandler.ListMessages,
		SendMessageHandler:       messagingHandler.SendMessage,

		// Quote endpoints.
		SendQuoteHandler:    quoteHandler.SendQuote,
		AcceptQuoteHandler:  quoteHandler.AcceptQuote,
		DeclineQuoteHandler: quoteHandler.DeclineQuote,

		// Notification endpoints.
		ListNotificationsHandler:        notificationHandler.ListNotifications,
		NotificationUnreadCountHandler:  notificationHandler.UnreadCount,
		MarkNotificationReadHandler:     notificationHandler.MarkRead,
		MarkAllNotificationsReadHandler: notificationHandler.MarkAllRead,
	}

	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("starting server on port %s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quitCh := make(chan os.Signal, 1)
	signal.Notify(quitCh, syscall.SIGINT, syscall.SIGTERM)
	<-quitCh
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
	logger.Info("server stopped")
}
