package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/rocketman/internal/audio"
	"github.com/tomz197/rocketman/internal/config"
	"github.com/tomz197/rocketman/internal/draw"
	"github.com/tomz197/rocketman/internal/hub"
	"github.com/tomz197/rocketman/internal/leaderboard"
	"github.com/tomz197/rocketman/internal/loop/client"
)

const (
	defaultHost            = "::"
	defaultPort            = "2222"
	defaultHostKeyPath     = "/app/keys/host_key"
	defaultLeaderboardPath = "/app/data/leaderboard.json"
)

// server holds what every SSH session shares.
type server struct {
	hub    *hub.Hub
	store  *leaderboard.Store
	tuning config.Tuning
	logger *log.Logger
}

func main() {
	logger := config.NewLogger("ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "workingDir", workingDir)

	tuning, err := config.LoadTuning(config.GetEnv("ROCKETMAN_TUNING", ""))
	if err != nil {
		logger.Warn("invalid tuning file, using defaults", "err", err)
	}

	store, err := leaderboard.Open(context.Background(), leaderboard.Location{
		Path:   config.GetEnv("ROCKETMAN_LEADERBOARD", defaultLeaderboardPath),
		Bucket: config.GetEnv("ROCKETMAN_S3_BUCKET", ""),
		Key:    config.GetEnv("ROCKETMAN_S3_KEY", ""),
		Region: config.GetEnv("AWS_REGION", "eu-central-1"),
	}, logger)
	if err != nil {
		logger.Fatal("failed to open leaderboard", "err", err)
	}

	srv := &server{
		hub:    hub.New(logger.WithPrefix("hub")),
		store:  store,
		tuning: tuning,
		logger: logger,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			srv.gameMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Notify players and wait for them to disconnect
	logger.Info("notifying connected players about shutdown", "players", srv.hub.Players())
	srv.hub.Shutdown(15 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware handles SSH sessions and runs one game per connection.
func (srv *server) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		srv.logger.Info("new game session", "user", sess.User(), "term", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		c := client.NewClient(srv.hub, srv.store, bufio.NewReader(sess), sess, client.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Username:     sess.User(),
			Tuning:       srv.tuning,
			Music:        &audio.Nop{},
			Logger:       srv.logger.With("user", sess.User()),
		})
		if err := c.Run(sess.Context()); err != nil {
			srv.logger.Error("game error", "user", sess.User(), "err", err)
		}

		srv.logger.Info("session ended", "user", sess.User())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
