package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tidybook/config"
	"tidybook/cron"
	"tidybook/database"
	catalogRepo "tidybook/database/repository/catalog"
	schedulerRepo "tidybook/database/repository/scheduler"
	settingsRepo "tidybook/database/repository/settings"
	"tidybook/handlers"
	"tidybook/middleware"
	"tidybook/routes"
	"tidybook/services/booking"
	"tidybook/services/notification"
	"tidybook/services/request"
	"tidybook/services/schedule"
	"tidybook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	settingsRepository := settingsRepo.NewMongoSettingsRepo()
	schedulerRepository := schedulerRepo.NewMongoSchedulerRepo()
	catalogRepository := catalogRepo.NewMongoCatalogRepo()

	// services.
	var remote schedule.RemoteSlotClient
	if config.AppConfig.RemoteSlotsURL != "" {
		remote = schedule.NewHTTPSlotClient(config.AppConfig.RemoteSlotsURL)
	}
	availabilityService := &schedule.DefaultAvailabilityService{
		Settings:  settingsRepository,
		Scheduler: schedulerRepository,
		Remote:    remote,
		CacheTTL:  5 * time.Minute,
	}
	draftService := &schedule.DraftService{
		Settings: settingsRepository,
		TTL:      30 * time.Minute,
	}

	notificationService := &notification.LoggingNotificationService{}
	reminderScheduler := cron.NewReminderScheduler()
	cron.InitReminderWorker(notificationService)

	requestService := &request.DefaultRequestService{
		Repo:         schedulerRepository,
		Catalog:      catalogRepository,
		Settings:     settingsRepository,
		Availability: availabilityService,
		Notifier:     notificationService,
		Reminders:    reminderScheduler,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:         schedulerRepository,
		Settings:     settingsRepository,
		Availability: availabilityService,
		Notifier:     notificationService,
		Reminders:    reminderScheduler,
	}

	// handlers.
	handlers.SettingsRepo = settingsRepository
	handlers.CatalogRepo = catalogRepository
	handlers.AvailabilityService = availabilityService
	handlers.DraftService = draftService
	handlers.RequestService = requestService
	handlers.BookingService = bookingService

	routes.RegisterRoutes(router)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
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
