package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/rocketman/internal/audio"
	"github.com/tomz197/rocketman/internal/config"
	"github.com/tomz197/rocketman/internal/hub"
	"github.com/tomz197/rocketman/internal/leaderboard"
	"github.com/tomz197/rocketman/internal/loop/client"
)

func main() {
	logger := config.NewLogger("rocketman")

	tuning, err := config.LoadTuning(config.GetEnv("ROCKETMAN_TUNING", ""))
	if err != nil {
		logger.Warn("invalid tuning file, using defaults", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	store, err := leaderboard.Open(ctx, leaderboard.Location{
		Path:   config.GetEnv("ROCKETMAN_LEADERBOARD", defaultLeaderboardPath()),
		Bucket: config.GetEnv("ROCKETMAN_S3_BUCKET", ""),
		Key:    config.GetEnv("ROCKETMAN_S3_KEY", ""),
		Region: config.GetEnv("AWS_REGION", "eu-central-1"),
	}, logger)
	if err != nil {
		logger.Fatal("failed to open leaderboard", "err", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	music := audio.NewMusic(logger)
	defer music.Close()

	c := client.NewClient(hub.New(logger), store, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: os.Getenv("USER"),
		Tuning:   tuning,
		Music:    music,
		Logger:   logger,
	})
	if err := c.Run(ctx); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// defaultLeaderboardPath keeps local scores in the user's config directory.
func defaultLeaderboardPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "leaderboard.json"
	}
	return filepath.Join(dir, "rocketman", "leaderboard.json")
}
