package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderwatch/internal/config"
	"orderwatch/internal/database"
	"orderwatch/internal/document"
	"orderwatch/internal/listener"
	"orderwatch/internal/logger"
	"orderwatch/internal/services/naver"
	"orderwatch/internal/sinks"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	if cfg.NaverClientID == "" || cfg.NaverClientSecret == "" {
		logger.Fatal("NAVER_CLIENT_ID and NAVER_CLIENT_SECRET must be set")
	}

	httpClient, err := naver.NewHTTPClient(cfg.ProxyURL(), 15*time.Second)
	if err != nil {
		logger.Fatal("Failed to build HTTP client: %v", err)
	}

	tokens := naver.NewTokenManager(
		cfg.NaverClientID,
		cfg.NaverClientSecret,
		cfg.TokenURL,
		time.Duration(cfg.TokenExpiresInSeconds)*time.Second,
		time.Duration(cfg.TokenRefreshBufferSeconds)*time.Second,
		httpClient,
		logger,
	)
	client := naver.NewClient(cfg.APIBaseURL, tokens, httpClient, logger)

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Console notification first, then the downstream sinks
	orderSinks := []listener.Sink{
		sinks.NewConsole(),
		sinks.NewCSVLog(cfg.OrderLogDir, logger),
		sinks.NewDocumentStore(db, document.NewBuilder(), logger),
	}
	if cfg.KafkaEnabled {
		publisher := sinks.NewKafkaPublisher(cfg.KafkaBrokers, logger)
		defer publisher.Close()
		orderSinks = append(orderSinks, publisher)
	}

	interval := time.Duration(cfg.PollIntervalSeconds) * time.Second
	l := listener.New(client, interval, logger, orderSinks...)

	logger.Info("SmartStore order listener starting (poll interval %s)", interval)
	if cfg.UseProxy {
		logger.Info("outbound proxy: %s", cfg.ProxyURL())
	} else {
		logger.Info("outbound proxy: disabled")
	}

	// Start listener
	errCh := make(chan error, 1)
	go func() {
		errCh <- l.Run(context.Background())
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutting down listener...")
		l.Stop()
		<-errCh
	case err := <-errCh:
		if err != nil {
			logger.Fatal("Listener failed: %v", err)
		}
	}
}
