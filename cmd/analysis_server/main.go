package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/mitchelldurbincs/AIWargame/internal/config"
	"github.com/mitchelldurbincs/AIWargame/internal/grpc/analysis"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	port := flag.Int("port", -1, "The server port (-1 to use config default)")
	host := flag.String("host", "", "The server host (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	enableReflection := flag.Bool("enable-reflection", false, "Enable gRPC reflection for debugging")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}

	cfg := config.Get()
	serverCfg := cfg.Server.Analysis

	// Use config defaults if not overridden by flags
	if *port == -1 {
		*port = serverCfg.Port
	}
	if *host == "" {
		*host = serverCfg.Host
	}
	if *logLevel == "" {
		*logLevel = serverCfg.LogLevel
	}
	if !*enableReflection {
		*enableReflection = serverCfg.EnableReflection
	}

	setupLogging(*logLevel)

	defaults := cfg.SearchConfig()
	log.Info().
		Int("port", *port).
		Str("host", *host).
		Str("mode", string(defaults.Mode)).
		Int("max_depth", defaults.MaxDepth).
		Dur("max_time", defaults.MaxTime).
		Str("heuristic", string(defaults.Heuristic)).
		Msg("Starting gRPC analysis server")

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", *host, *port))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to listen")
	}

	grpcServer, healthServer := analysis.NewGRPCServer(analysis.NewServer(defaults, log.Logger), log.Logger, *enableReflection)
	if *enableReflection {
		log.Info().Msg("gRPC reflection enabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		healthServer.SetServingStatus(analysis.ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

		// Give ongoing searches time to complete
		time.Sleep(time.Duration(serverCfg.GracefulShutdownDelay) * time.Second)

		log.Info().Msg("Gracefully stopping gRPC server")
		grpcServer.GracefulStop()
		cancel()
	}()

	log.Info().Str("address", lis.Addr().String()).Msg("gRPC server listening")

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal().Err(err).Msg("Failed to serve")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Server shutdown complete")
}

func setupLogging(level string) {
	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	if os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}
