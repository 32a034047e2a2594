package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/AIWargame/internal/config"
	"github.com/mitchelldurbincs/AIWargame/internal/match"
)

// flagKeys maps command line flags onto the config keys they override.
var flagKeys = map[string]string{
	"game-type":  "game.game_type",
	"dim":        "game.board_dim",
	"max-turns":  "game.max_turns",
	"policy":     "game.turn_limit_policy",
	"units":      "game.units_file",
	"mode":       "search.mode",
	"depth":      "search.max_depth",
	"time":       "search.max_time",
	"heuristic":  "search.heuristic",
	"seed":       "search.seed",
	"trace":      "trace.enabled",
	"trace-dir":  "trace.dir",
	"log-level":  "logging.level",
	"log-format": "logging.format",
}

func main() {
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay (loads config.<env>.yaml)")
	watch := flag.Bool("watch", false, "Reload search settings when the config file changes")
	color := flag.Bool("color", true, "Colorize the board")
	flag.String("game-type", "", "manual, attacker, defender or auto")
	flag.Int("dim", 0, "Board dimension")
	flag.Int("max-turns", 0, "Turn limit")
	flag.String("policy", "", "Turn limit policy: defender, score or draw")
	flag.String("units", "", "YAML unit-table file")
	flag.String("mode", "", "Search algorithm: minimax or alphabeta")
	flag.Int("depth", 0, "Maximum search depth")
	flag.Duration("time", 0, "Time budget per computer move")
	flag.String("heuristic", "", "Heuristic: e0, e1 or e2")
	flag.Uint64("seed", 0, "Seed for random strategies")
	flag.Bool("trace", false, "Write a game transcript")
	flag.String("trace-dir", "", "Transcript directory")
	flag.String("log-level", "", "Log level (debug, info, warn, error)")
	flag.String("log-format", "", "Log format (console or json)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}

	// Only flags given explicitly override the configuration
	flag.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			if err := config.Set(key, f.Value.String()); err != nil {
				log.Fatal().Err(err).Str("flag", f.Name).Msg("Invalid flag value")
			}
		}
	})

	cfg := config.Get()
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	setupLogging(cfg.Logging.Level, cfg.Logging.Format)

	opts, err := cfg.MatchOptions()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid game options")
	}
	opts.Color = *color
	opts.Logger = log.Logger

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var input match.MoveReader
	if opts.GameType != match.GameAuto {
		input = match.NewLineReader(os.Stdin, os.Stdout)
	}

	m, err := match.New(ctx, opts, input, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start game")
	}
	defer m.Close()

	if *watch {
		config.WatchConfig(func(c *config.Config) {
			if err := m.UpdateSearch(c.SearchConfig()); err != nil {
				log.Warn().Err(err).Msg("Ignoring invalid search settings")
				return
			}
			log.Info().Str("file", config.ConfigFilePath()).Msg("Search settings updated")
		})
	}

	outcome, err := m.Play(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Game aborted")
		m.Close()
		os.Exit(1)
	}
	if path := m.TracePath(); path != "" {
		fmt.Printf("Transcript written to %s\n", path)
	}
	log.Info().
		Str("game_id", m.Engine().GameID()).
		Str("outcome", outcome.String()).
		Int("turns", m.Engine().TurnsPlayed()).
		Msg("Game finished")
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	// The board goes to stdout, logs to stderr
	if format == "json" || os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
