package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/higordev223/salute-child/config"
	"github.com/higordev223/salute-child/cron"
	"github.com/higordev223/salute-child/database"
	bookingRepoPkg "github.com/higordev223/salute-child/database/repository/booking"
	practitionerRepoPkg "github.com/higordev223/salute-child/database/repository/practitioner"
	sessionRepoPkg "github.com/higordev223/salute-child/database/repository/session"
	"github.com/higordev223/salute-child/handlers"
	"github.com/higordev223/salute-child/middleware"
	"github.com/higordev223/salute-child/routes"
	"github.com/higordev223/salute-child/services/notification"
	"github.com/higordev223/salute-child/services/scheduling"
	"github.com/higordev223/salute-child/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Repositories.
	practitionerRepo := practitionerRepoPkg.NewMongoPractitionerRepo()
	sessionRepo := sessionRepoPkg.NewMongoSessionRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()

	for _, ensure := range []func() error{
		practitionerRepo.EnsureIndexes,
		sessionRepo.EnsureIndexes,
		bookingRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// Services.
	engine := scheduling.NewEngine(practitionerRepo, sessionRepo, bookingRepo)
	notifier := notification.NewWebhookNotificationService()
	reminders := cron.NewReminderScheduler()
	defer reminders.Close()

	go cron.StartReminderWorker(notifier)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// HTTP surface.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	appointmentHandler := handlers.NewAppointmentHandler(engine, reminders, utils.GetCacheClient(), logger)

	handlerBundle := &handlers.HandlerBundle{
		SlotMenu:       appointmentHandler.SlotMenu,
		StartSession:   appointmentHandler.StartSession,
		UpdateSession:  appointmentHandler.UpdateSession,
		ConfirmBooking: appointmentHandler.ConfirmBooking,
		CancelSession:  appointmentHandler.CancelSession,
		CancelBooking:  appointmentHandler.CancelBooking,
		Languages:      appointmentHandler.Languages,
		PatientToken:   handlers.PatientTokenHandler,
	}

	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
