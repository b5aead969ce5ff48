package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"appointment-calendar/config"
	"appointment-calendar/internal/httpserver"
	"appointment-calendar/internal/schedule/repository"
	"appointment-calendar/internal/schedule/repository/gcalsource"
	"appointment-calendar/internal/schedule/repository/holidaysource"
	"appointment-calendar/internal/schedule/repository/httpsource"
	"appointment-calendar/internal/schedule/usecase"
	"appointment-calendar/pkg/daterange"
	"appointment-calendar/pkg/log"
	"appointment-calendar/pkg/openholidays"
)

// @title       Appointment Calendar API
// @description Calendar widget backend: date ranges, appointment layout, search, and holidays.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Appointment Calendar...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Date range calculator
	calc, err := daterange.NewCalculator(cfg.Calendar.Timezone, cfg.Calendar.StartWeekOnSunday)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Calendar.Timezone, err)
		calc, _ = daterange.NewCalculator("UTC", cfg.Calendar.StartWeekOnSunday)
	}

	// 4. Appointment data source
	var source repository.DataSource
	switch cfg.Calendar.SourceKind {
	case "google":
		source, err = gcalsource.NewFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath, cfg.GoogleCalendar.CalendarID)
		if err != nil {
			logger.Errorf(ctx, "Failed to initialize Google Calendar source: %v", err)
			return
		}
		logger.Info(ctx, "Google Calendar source initialized")
	default:
		source = httpsource.New(cfg.Calendar.SourceURL)
		logger.Infof(ctx, "HTTP source initialized at %s", cfg.Calendar.SourceURL)
	}

	// 5. Holiday provider (optional)
	var holidays usecase.HolidayProvider
	if cfg.Holidays.Enabled {
		holidays = holidaysource.New(
			openholidays.NewClient(""),
			cfg.Holidays.Country,
			cfg.Holidays.Language,
			cfg.Holidays.FederalState,
			calc.Location(),
		)
		logger.Infof(ctx, "Holiday provider enabled for %s", cfg.Holidays.Country)
	}

	// 6. Schedule UseCase
	defaultView, known := daterange.ParseView(cfg.Calendar.DefaultView)
	if !known {
		logger.Warnf(ctx, "Unknown default view %q, falling back to month", cfg.Calendar.DefaultView)
	}
	lastViewTTL, err := time.ParseDuration(cfg.Calendar.LastViewTTL)
	if err != nil {
		logger.Warnf(ctx, "Invalid last_view_ttl %q: %v", cfg.Calendar.LastViewTTL, err)
		lastViewTTL = 0
	}
	scheduleUC := usecase.New(logger, calc, source, holidays, usecase.Settings{
		DefaultView:  defaultView,
		SearchLimit:  cfg.Calendar.SearchLimit,
		SearchOffset: cfg.Calendar.SearchOffset,
		LastViewTTL:  lastViewTTL,
	})

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ScheduleUC:      scheduleUC,
		RateLimitPerMin: cfg.RateLimit.RequestsPerMin,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
