package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsscheduler "github.com/aws/aws-sdk-go-v2/service/scheduler"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/juridia/juridia-platform/cmd/mainconfig"
	"github.com/juridia/juridia-platform/internal/api/router"
	"github.com/juridia/juridia-platform/internal/appointments"
	"github.com/juridia/juridia-platform/internal/availability"
	appconfig "github.com/juridia/juridia-platform/internal/config"
	"github.com/juridia/juridia-platform/internal/credits"
	"github.com/juridia/juridia-platform/internal/lawyers"
	"github.com/juridia/juridia-platform/internal/observability/metrics"
	"github.com/juridia/juridia-platform/internal/reminder"
	"github.com/juridia/juridia-platform/internal/sequence"
	"github.com/juridia/juridia-platform/internal/tickets"
	"github.com/juridia/juridia-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting juridia scheduling API",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	location, err := time.LoadLocation(cfg.AppointmentTimezone)
	if err != nil {
		logger.Error("invalid appointment timezone", "tz", cfg.AppointmentTimezone, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create postgres pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// The lawyer directory reader runs on database/sql.
	directoryDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open directory db", "error", err)
		os.Exit(1)
	}
	defer func() { _ = directoryDB.Close() }()

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOptions)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("redis not available", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}

	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	schedulingMetrics := metrics.NewSchedulingMetrics(registry)

	counter := sequence.NewCounter(redisClient)

	dispatcher := reminder.NewEventBridgeDispatcher(
		awsscheduler.NewFromConfig(awsCfg),
		reminder.Config{
			GroupName: cfg.ReminderScheduleGroup,
			TargetArn: cfg.ReminderTargetArn,
			RoleArn:   cfg.ReminderRoleArn,
		},
		logger.Component("reminder"),
	)

	appointmentsRepo := appointments.NewRepository(pool)
	scheduler := appointments.NewScheduler(counter, appointmentsRepo, dispatcher,
		appointments.SchedulerConfig{
			MeetingBaseURL:   cfg.MeetingBaseURL,
			ReminderLead:     cfg.ReminderLead,
			ReminderMinDelay: cfg.ReminderMinDelay,
			Location:         location,
		},
		schedulingMetrics, logger.Component("appointments"))

	availabilityRepo := availability.NewRepository(pool)
	slotService := availability.NewService(availabilityRepo, appointmentsRepo, location, cfg.SlotHorizonDays)

	directory := lawyers.NewRepository(directoryDB)
	matcher := lawyers.NewMatcher(directory, availabilityRepo, nil)

	ticketsRepo := tickets.NewRepository(pool)
	var ledger credits.Ledger
	if l := credits.NewHTTPLedger(cfg.CreditLedgerURL, cfg.CreditLedgerToken, logger.Component("credits")); l != nil {
		ledger = l
	}
	bridge := tickets.NewBridge(matcher, scheduler, counter, ticketsRepo, ledger,
		location, schedulingMetrics, logger.Component("tickets"))

	r := router.New(&router.Config{
		Logger:              logger,
		AppointmentsHandler: appointments.NewHandler(scheduler, location, logger.Component("appointments")),
		AvailabilityHandler: availability.NewHandler(slotService, logger.Component("availability")),
		LawyersHandler:      lawyers.NewHandler(matcher, logger.Component("lawyers")),
		TicketsHandler:      tickets.NewHandler(bridge, ticketsRepo, logger.Component("tickets")),
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimit:           cfg.APIRateLimit,
		RateLimitBurst:      cfg.APIRateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
