package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file

	appService "agenda/internal/application/service"
	"agenda/internal/infrastructure/database/sqlite"
	"agenda/internal/infrastructure/dispatch"
	"agenda/internal/interfaces/api/handler"
	"agenda/internal/interfaces/api/router"
	appLogger "agenda/internal/pkg/logger"
)

func gracefulShutdown(apiServer *http.Server, schedulerSvc appService.SchedulerService, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")

	// Stop the scheduler first so nothing fires mid-shutdown; Stop drains
	// in-flight notifications.
	log.Println("Stopping scheduler...")
	schedulerSvc.Stop()
	log.Println("Scheduler stopped.")

	log.Println("Closing database connection...")
	if err := sqlite.CloseDB(); err != nil {
		log.Printf("Error closing database: %v", err)
	} else {
		log.Println("Database connection closed.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")
	done <- true
}

func main() {
	// --- Initialization ---
	appLog := appLogger.New()
	appLog.Info("Logger initialized.")

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
		appLog.Warn("PORT environment variable not set, defaulting to 8080")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		appLog.Error("Invalid PORT environment variable", err)
		os.Exit(1)
	}

	schedulerOpts := appService.SchedulerOptions{}
	if grace := os.Getenv("AGENDA_CLEANUP_GRACE"); grace != "" {
		d, err := time.ParseDuration(grace)
		if err != nil {
			appLog.Warn(fmt.Sprintf("Invalid AGENDA_CLEANUP_GRACE %q, using default", grace))
		} else {
			schedulerOpts.CleanupGrace = d
		}
	}

	// --- Infrastructure ---
	db := sqlite.NewDB()
	reminderRepo := sqlite.NewReminderRepository(db)
	eventRepo := sqlite.NewEventRepository(db)
	appLog.Info("Database and repositories initialized.")

	var dispatcher dispatch.AlertDispatcher
	if os.Getenv("AGENDA_DISPATCHER") == "log" {
		dispatcher = dispatch.NewLogDispatcher(appLog)
	} else {
		dispatcher = dispatch.NewConsoleDispatcher()
	}

	// --- Application Services ---
	schedulerSvc := appService.NewSchedulerService(reminderRepo, dispatcher, schedulerOpts, appLog)
	reminderSvc := appService.NewReminderService(reminderRepo, eventRepo, schedulerSvc, appLog)
	appLog.Info("Application services initialized.")

	// --- Recovery load & scheduler start ---
	appLog.Info("Initializing reminder schedules...")
	if err := schedulerSvc.InitializeSchedules(context.Background()); err != nil {
		// Log the error but continue starting the server
		appLog.Error("Failed to initialize schedules on startup", err)
	} else {
		appLog.Info("Reminder schedules initialized.")
	}
	schedulerSvc.Start()

	// --- API Handlers ---
	reminderHandler := handler.NewReminderHandler(reminderSvc, appLog)

	// --- Router ---
	routerCfg := &router.Config{
		ReminderHandler: reminderHandler,
		Logger:          appLog,
	}
	echoRouter := router.NewRouter(routerCfg)

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// --- Start Server & Shutdown Handling ---
	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, schedulerSvc, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d", port))
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		appLog.Error("HTTP server ListenAndServe error", err)
		panic(fmt.Sprintf("http server error: %s", err))
	}

	<-done
	appLog.Info("Graceful shutdown complete.")
}
