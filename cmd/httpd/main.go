// Command httpd serves the complaint triage API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/complaintdesk/triage/internal/api"
	"github.com/complaintdesk/triage/internal/auth"
	"github.com/complaintdesk/triage/internal/bootstrap"
	"github.com/complaintdesk/triage/internal/chatbot"
	"github.com/complaintdesk/triage/internal/complaints"
	"github.com/complaintdesk/triage/internal/logging"
	"github.com/complaintdesk/triage/internal/telemetry"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "httpd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	log, err := bootstrap.CreateLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// The artifact is loaded once and read-only afterwards. If it is
	// missing or corrupt the service refuses to start rather than serving
	// a silent default category.
	predictor, err := bootstrap.LoadPredictor(cfg, log)
	if err != nil {
		log.Error("classifier artifact unavailable, refusing to start", logging.Error(err))
		return err
	}

	dbc, err := bootstrap.SetupDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer dbc.DB.Close()

	provider := telemetry.NewProvider()
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	bot := chatbot.New(cfg.Chatbot, log, provider.Metrics)
	service := complaints.NewService(dbc.ComplaintRepo, predictor, log, provider.Metrics)

	handler := api.NewHandler(service, dbc.UserRepo, jwtManager, bot, dbc.DB.Ping, log)
	server := api.NewServer(handler, jwtManager, provider, api.ServerConfig{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Port:           cfg.Service.Port,
		ReadTimeout:    cfg.Service.ReadTimeout,
		WriteTimeout:   cfg.Service.WriteTimeout,
		Debug:          cfg.Service.Debug,
	}, log)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-shutdown:
		log.Info("Shutdown signal received", logging.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		log.Info("Server stopped gracefully")
	}
	return nil
}
