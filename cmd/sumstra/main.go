package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"sumstra/internal/backend"
	"sumstra/internal/config"
	"sumstra/internal/events"
	apphttp "sumstra/internal/http"
	"sumstra/internal/log"
	"sumstra/internal/session"
	"sumstra/internal/store"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	result, err := backend.NewFactory(logger).Create(backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend",
			log.FieldError, err,
			log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", log.FieldError, err)
			}
		}()
	}

	gate := session.NewGate()

	storeOpts := []store.Option{store.WithLogger(logger)}
	if cfg.AMQPURL != "" {
		eventsClient, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer eventsClient.Close()
		storeOpts = append(storeOpts, store.WithPublisher(eventsClient))
		logger.Info("Event publishing enabled",
			"exchange", cfg.AMQPExchange,
			"queue", cfg.AMQPQueue)
	}

	st := store.New(result.Repository, gate, storeOpts...)
	srv := apphttp.NewServer(":"+cfg.Port, st, gate, logger)

	// A pre-issued access token signs the service user in at startup. The
	// gate notification triggers the store's initial load.
	if cfg.SessionAccessToken != "" {
		sess, err := session.FromAccessToken(cfg.SessionAccessToken, cfg.SessionJWTSecret)
		if err != nil {
			logger.Error("Invalid session access token", log.FieldError, err)
			os.Exit(1)
		}
		if err := gate.SignIn(sess); err != nil {
			logger.Error("Sign-in failed", log.FieldError, err)
			os.Exit(1)
		}
		logger.Info("Session established", log.FieldUserID, sess.UserID)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting sumstra server",
			"port", cfg.Port,
			log.FieldBackend, cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
