package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/AIWargame/internal/common"
	"github.com/mitchelldurbincs/AIWargame/internal/game"
	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/mitchelldurbincs/AIWargame/internal/game/rules"
	"github.com/mitchelldurbincs/AIWargame/internal/heuristic"
	"github.com/mitchelldurbincs/AIWargame/internal/match"
	"github.com/mitchelldurbincs/AIWargame/internal/search"
)

// Config holds all configuration for the application
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Search  SearchConfig  `mapstructure:"search"`
	Trace   TraceConfig   `mapstructure:"trace"`
	Logging LoggingConfig `mapstructure:"logging"`
	Server  ServerConfig  `mapstructure:"server"`
}

// GameConfig holds game rule settings
type GameConfig struct {
	BoardDim        int    `mapstructure:"board_dim"`
	MaxTurns        int    `mapstructure:"max_turns"`
	TurnLimitPolicy string `mapstructure:"turn_limit_policy"`
	UnitsFile       string `mapstructure:"units_file"`
	GameType        string `mapstructure:"game_type"`
}

// SearchConfig holds computer player settings
type SearchConfig struct {
	Mode             string        `mapstructure:"mode"`
	MaxDepth         int           `mapstructure:"max_depth"`
	MaxTime          time.Duration `mapstructure:"max_time"`
	Heuristic        string        `mapstructure:"heuristic"`
	AttackerStrategy string        `mapstructure:"attacker_strategy"`
	DefenderStrategy string        `mapstructure:"defender_strategy"`
	Seed             uint64        `mapstructure:"seed"`
}

// TraceConfig holds game transcript settings
type TraceConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// LoggingConfig holds console driver logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Analysis AnalysisServerConfig `mapstructure:"analysis"`
}

// AnalysisServerConfig holds gRPC analysis server configuration
type AnalysisServerConfig struct {
	Host                  string `mapstructure:"host"`
	Port                  int    `mapstructure:"port"`
	LogLevel              string `mapstructure:"log_level"`
	EnableReflection      bool   `mapstructure:"enable_reflection"`
	GracefulShutdownDelay int    `mapstructure:"graceful_shutdown_delay"`
}

var (
	// Global config instance. The pointed-to Config is never modified after it is
	// published; updates swap in a new value under mu.
	cfg *Config
	v   *viper.Viper
	mu  sync.RWMutex
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.board_dim", game.DefaultBoardDim)
	v.SetDefault("game.max_turns", game.DefaultMaxTurns)
	v.SetDefault("game.turn_limit_policy", string(rules.PolicyDefender))
	v.SetDefault("game.units_file", "")
	v.SetDefault("game.game_type", string(match.GameAuto))

	// Search defaults
	v.SetDefault("search.mode", string(search.ModeAlphaBeta))
	v.SetDefault("search.max_depth", search.DefaultMaxDepth)
	v.SetDefault("search.max_time", search.DefaultMaxTime.String())
	v.SetDefault("search.heuristic", string(heuristic.KindE0))
	v.SetDefault("search.attacker_strategy", string(match.StrategySearch))
	v.SetDefault("search.defender_strategy", string(match.StrategySearch))
	v.SetDefault("search.seed", 0)

	// Trace defaults
	v.SetDefault("trace.enabled", false)
	v.SetDefault("trace.dir", "traces")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Analysis server defaults
	v.SetDefault("server.analysis.host", "0.0.0.0")
	v.SetDefault("server.analysis.port", 50051)
	v.SetDefault("server.analysis.log_level", "info")
	v.SetDefault("server.analysis.enable_reflection", true)
	v.SetDefault("server.analysis.graceful_shutdown_delay", 5)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/ai-wargame")
	}

	// AIW_SEARCH_MAX_DEPTH overrides search.max_depth
	v.SetEnvPrefix("AIW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Only a missing file falls back to defaults; a file that exists but cannot be
		// parsed is an error.
		if !isNotFound(err) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	loaded, err := decode()
	if err != nil {
		return err
	}
	if err := Validate(loaded); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	publish(loaded)
	return nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// decode unmarshals the current viper state into a fresh Config.
func decode() (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return c, nil
}

func publish(c *Config) {
	mu.Lock()
	cfg = c
	mu.Unlock()
}

// Get returns the global config instance
func Get() *Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()
	if c != nil {
		return c
	}

	if err := Init(""); err != nil {
		panic("failed to initialize config with defaults: " + err.Error())
	}
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded configuration.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if !isNotFound(err) {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	merged, err := decode()
	if err != nil {
		return err
	}
	if err := Validate(merged); err != nil {
		return err
	}
	publish(merged)
	return nil
}

// Set allows runtime config updates. The value is not validated; a value that cannot
// be decoded leaves the current configuration in place.
func Set(key string, value interface{}) error {
	v.Set(key, value)
	updated, err := decode()
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	publish(updated)
	return nil
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return v.GetBool(key)
}

// GetDuration gets a duration value from config
func GetDuration(key string) time.Duration {
	return v.GetDuration(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig re-reads the config file whenever it changes. onChange receives the new
// configuration only if it validates; an invalid edit keeps the previous values.
func WatchConfig(onChange func(*Config)) {
	v.OnConfigChange(func(fsnotify.Event) {
		_ = reload(onChange)
	})
	v.WatchConfig()
}

// reload decodes the freshly read file and publishes it if it validates.
func reload(onChange func(*Config)) error {
	reloaded, err := decode()
	if err != nil {
		return err
	}
	if err := Validate(reloaded); err != nil {
		return err
	}
	publish(reloaded)
	if onChange != nil {
		onChange(reloaded)
	}
	return nil
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if _, err := c.GameConfig(); err != nil {
		return err
	}
	if _, err := match.ParseGameType(c.Game.GameType); err != nil {
		return err
	}
	if err := c.SearchConfig().Validate(); err != nil {
		return err
	}
	if _, err := match.ParseStrategyKind("search.attacker_strategy", c.Search.AttackerStrategy); err != nil {
		return err
	}
	if _, err := match.ParseStrategyKind("search.defender_strategy", c.Search.DefenderStrategy); err != nil {
		return err
	}

	if c.Trace.Enabled && c.Trace.Dir == "" {
		return core.NewConfigError("trace.dir", "must be set when tracing is enabled")
	}
	if err := common.OneOf(c.Logging.Format, "console", "json"); err != nil {
		return core.NewConfigError("logging.format", err.Error())
	}

	if c.Server.Analysis.Port <= 0 || c.Server.Analysis.Port > 65535 {
		return core.NewConfigError("server.analysis.port", "must be between 1 and 65535")
	}
	if c.Server.Analysis.GracefulShutdownDelay < 0 {
		return core.NewConfigError("server.analysis.graceful_shutdown_delay", "must be non-negative")
	}

	return nil
}

// GameConfig converts the game section, loading the unit-table file if one is set.
func (c *Config) GameConfig() (game.GameConfig, error) {
	gc := game.GameConfig{
		BoardDim:        c.Game.BoardDim,
		MaxTurns:        c.Game.MaxTurns,
		TurnLimitPolicy: rules.TurnLimitPolicy(strings.ToLower(c.Game.TurnLimitPolicy)),
	}
	if c.Game.UnitsFile != "" {
		tables, err := LoadUnitTables(c.Game.UnitsFile)
		if err != nil {
			return game.GameConfig{}, err
		}
		gc.Tables = tables
	}
	if err := gc.Validate(); err != nil {
		return game.GameConfig{}, err
	}
	return gc, nil
}

// SearchConfig converts the search section. The result is not validated.
func (c *Config) SearchConfig() search.Config {
	return search.Config{
		Mode:      search.Mode(c.Search.Mode),
		MaxDepth:  c.Search.MaxDepth,
		MaxTime:   c.Search.MaxTime,
		Heuristic: heuristic.Kind(strings.ToLower(c.Search.Heuristic)),
	}
}

// MatchOptions assembles everything a console match needs.
func (c *Config) MatchOptions() (match.Options, error) {
	gc, err := c.GameConfig()
	if err != nil {
		return match.Options{}, err
	}
	gameType, err := match.ParseGameType(c.Game.GameType)
	if err != nil {
		return match.Options{}, err
	}
	opts := match.Options{
		Game:             gc,
		GameType:         gameType,
		Search:           c.SearchConfig(),
		AttackerStrategy: match.StrategyKind(c.Search.AttackerStrategy),
		DefenderStrategy: match.StrategyKind(c.Search.DefenderStrategy),
		Seed:             c.Search.Seed,
	}
	if c.Trace.Enabled {
		opts.TraceDir = c.Trace.Dir
	}
	return opts, opts.Validate()
}
