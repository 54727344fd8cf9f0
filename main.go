package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lumiere/config"
	"lumiere/cron"
	"lumiere/database"
	bookingRepo "lumiere/database/repository/booking"
	policyRepo "lumiere/database/repository/policy"
	staffRepo "lumiere/database/repository/staff"
	"lumiere/handlers"
	"lumiere/middleware"
	"lumiere/models"
	"lumiere/routes"
	"lumiere/services/policy"
	"lumiere/services/scheduling"
	"lumiere/services/tasks"
	"lumiere/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	db := database.DB()
	bookings := bookingRepo.NewMongoBookingRepo(db)
	staff := staffRepo.NewMongoStaffRepo(db)
	policyStore, err := policy.NewStore(context.Background(), policyRepo.NewMongoPolicyRepo(db), models.BookingConfig{
		MaxBookingsPerDay:       config.AppConfig.DefaultMaxBookingsPerDay,
		MinAdvanceBookingDays:   config.AppConfig.DefaultMinAdvanceBookingDays,
		MaxAdvanceBookingDays:   config.AppConfig.DefaultMaxAdvanceBookingDays,
		CancellationWindowHours: config.AppConfig.DefaultCancellationWindowHours,
		RescheduleWindowHours:   config.AppConfig.DefaultRescheduleWindowHours,
	})
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize booking policy: %v", err)
	}

	// services.
	reminders := tasks.NewReminderScheduler(config.AppConfig.ReminderLeadHours)
	defer reminders.Close()

	engine := &scheduling.DefaultSchedulingEngine{
		Bookings:    bookings,
		Staff:       staff,
		Policy:      policyStore,
		Ledger:      scheduling.NewCapacityLedger(bookings),
		Clock:       scheduling.SystemClock(),
		Cache:       utils.GetCacheClient(),
		Metrics:     utils.NewMetrics("lumiere"),
		Reminders:   reminders,
		Logger:      logger,
		OpenMinute:  config.AppConfig.StudioOpenMinute,
		CloseMinute: config.AppConfig.StudioCloseMinute,
	}

	// Background workers and health monitoring.
	cron.InitReminderWorker(bookings)
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Booking: handlers.NewBookingHandler(engine, logger),
		Staff:   handlers.NewStaffHandler(engine, logger),
		Policy:  handlers.NewPolicyHandler(policyStore, logger),
	}
	routes.RegisterRoutes(router, handlerBundle)

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
