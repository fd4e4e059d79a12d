package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomz197/rocketman/internal/config"
	"github.com/tomz197/rocketman/internal/leaderboard"
)

const (
	defaultHost            = "0.0.0.0"
	defaultPort            = "8080"
	defaultLeaderboardPath = "/app/data/leaderboard.json"
)

func main() {
	logger := config.NewLogger("web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	store, err := leaderboard.Open(context.Background(), leaderboard.Location{
		Path:   config.GetEnv("ROCKETMAN_LEADERBOARD", defaultLeaderboardPath),
		Bucket: config.GetEnv("ROCKETMAN_S3_BUCKET", ""),
		Key:    config.GetEnv("ROCKETMAN_S3_KEY", ""),
		Region: config.GetEnv("AWS_REGION", "eu-central-1"),
	}, logger)
	if err != nil {
		logger.Fatal("failed to open leaderboard", "err", err)
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           newRouter(store, sshHost, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting web server", "addr", "http://"+srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-done

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
	logger.Info("web server stopped")
}
