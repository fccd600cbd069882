// Command reversi-server serves one Reversi game over HTTP and a websocket.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/havfo/reversi/internal/server"
	"github.com/havfo/reversi/internal/session"
)

func main() {
	config := server.DefaultConfig()
	settings := session.DefaultSettings()

	flag.StringVar(&config.Host, "host", config.Host, "Host to bind to (use 0.0.0.0 for all interfaces)")
	flag.IntVar(&config.Port, "port", config.Port, "Port to listen on")
	flag.DurationVar(&config.ReadTimeout, "read-timeout", config.ReadTimeout, "HTTP read timeout")
	flag.DurationVar(&config.WriteTimeout, "write-timeout", config.WriteTimeout, "HTTP write timeout")
	session.BindFlags(flag.CommandLine, &settings)
	flag.Parse()

	if err := settings.Validate(); err != nil {
		log.Fatalf("invalid settings: %v", err)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	s := session.New(settings, session.WithLogger(logger))
	srv := server.New(s, config, logger)

	// a fresh server is ready to play; POST /api/start restarts
	s.Initialize()
	s.ScheduleComputer(nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServeWithGracefulShutdown(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
