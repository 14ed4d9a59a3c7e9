package router

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"agenda/internal/interfaces/api/handler"
	"agenda/internal/pkg/logger"
)

// Config holds the dependencies for the router.
type Config struct {
	ReminderHandler *handler.ReminderHandler
	Logger          logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		MaxAge:       300,
	}))

	// Routes
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.POST("/reminders", cfg.ReminderHandler.CreateReminder)
	e.GET("/reminders", cfg.ReminderHandler.ListReminders)
	e.DELETE("/reminders/:id", cfg.ReminderHandler.CancelReminder)

	e.POST("/events", cfg.ReminderHandler.CreateEvent)
	e.GET("/events", cfg.ReminderHandler.ListEvents)

	cfg.Logger.Info("Router initialized with routes.")
	return e
}
