package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	_ "github.com/Mateo-Piedra22/IronHub-sub005/docs"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/clase"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/config"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/db"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/jobs"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/ledger"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/logger"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/notify"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/server"

	"github.com/redis/go-redis/v9"
)

// @title IronHub API
// @version 1.0
// @description Class scheduling, enrollment and check-in API for IronHub gyms.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info", false)
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel, !cfg.IsProduction())
	defer logger.Sync()
	logger.Info("Starting IronHub API", "env", cfg.Env)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatalf("Invalid TIMEZONE %q: %v", cfg.Timezone, err)
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	notifier := notify.New(rdb, senders(cfg))
	defer notifier.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notifier.Start(ctx)

	reminders := jobs.NewReminders(
		clase.NewRepository(database),
		ledger.NewRepository(database),
		notifier,
		rdb,
		loc,
	)
	if err := reminders.Start(cfg.ReminderSpec); err != nil {
		logger.Fatalf("Failed to schedule reminders: %v", err)
	}
	defer reminders.Stop()

	srv := server.New(cfg, database, rdb, notifier, loc)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}

// senders returns the delivery channels that have credentials configured.
func senders(cfg *config.Config) map[notify.Channel]notify.Sender {
	out := map[notify.Channel]notify.Sender{}

	if wa := notify.NewWhatsAppSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom); wa != nil {
		out[notify.ChannelWhatsApp] = wa
	} else {
		logger.Warn("WhatsApp notifications disabled, Twilio credentials missing")
	}

	if mail := notify.NewEmailSender(cfg.SendGridAPIKey, cfg.EmailFrom, cfg.EmailFromName); mail != nil {
		out[notify.ChannelEmail] = mail
	} else {
		logger.Warn("Email notifications disabled, SENDGRID_API_KEY missing")
	}

	return out
}
