// Package config loads lobbyd settings from defaults, an optional YAML file,
// a .env file and STARWHEEL_ prefixed environment variables, in rising order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/KirkDiggler/starwheel/internal/draw"
)

const EnvPrefix = "STARWHEEL"

// Config holds all configuration for lobbyd
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
	Round     RoundConfig     `mapstructure:"round"`
	AutoStart AutoStartConfig `mapstructure:"autostart"`
	Identity  IdentityConfig  `mapstructure:"identity"`
	Payments  PaymentsConfig  `mapstructure:"payments"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`

	// AdminToken guards the admin routes; empty disables them
	AdminToken      string        `mapstructure:"admin_token"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MaxAttempts bounds optimistic retries of one unit of work
	MaxAttempts int `mapstructure:"max_attempts"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type RoundConfig struct {
	Capacity        int   `mapstructure:"capacity"`
	EntryFee        int64 `mapstructure:"entry_fee"`
	MinPlayers      int   `mapstructure:"min_players"`
	StartingBalance int64 `mapstructure:"starting_balance"`

	// CenterShare and SideShare are decimal fractions of the pool
	CenterShare string `mapstructure:"center_share"`
	SideShare   string `mapstructure:"side_share"`

	// Seed, when non-zero, makes draws reproducible. Development only.
	Seed uint64 `mapstructure:"seed"`
}

type AutoStartConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Interval     time.Duration `mapstructure:"interval"`
	Countdown    time.Duration `mapstructure:"countdown"`
	FillWithBots bool          `mapstructure:"fill_with_bots"`
	StaleAfter   time.Duration `mapstructure:"stale_after"`
}

type IdentityConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type PaymentsConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// Options selects the files Load reads. Missing files are skipped.
type Options struct {
	// ConfigFile is a YAML file; empty searches ./config.yaml and ./config/config.yaml
	ConfigFile string

	// EnvFile defaults to .env
	EnvFile string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.admin_token", "")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.max_attempts", 16)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("round.capacity", 10)
	v.SetDefault("round.entry_fee", 10)
	v.SetDefault("round.min_players", 2)
	v.SetDefault("round.starting_balance", 1000)
	v.SetDefault("round.center_share", "0.5")
	v.SetDefault("round.side_share", "0.25")
	v.SetDefault("round.seed", 0)

	v.SetDefault("autostart.enabled", true)
	v.SetDefault("autostart.interval", time.Second)
	v.SetDefault("autostart.countdown", 30*time.Second)
	v.SetDefault("autostart.fill_with_bots", false)
	v.SetDefault("autostart.stale_after", time.Minute)

	v.SetDefault("identity.secret", "")
	v.SetDefault("identity.issuer", "")

	v.SetDefault("payments.base_url", "http://localhost:8080")
}

// Load reads and validates the configuration
func Load(opts *Options) (*Config, error) {
	if opts == nil {
		opts = &Options{}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the services would refuse at startup
func (c *Config) Validate() error {
	if c.Round.Capacity < 3 {
		return fmt.Errorf("round.capacity must be at least 3, got %d", c.Round.Capacity)
	}
	if c.Round.EntryFee < 0 {
		return fmt.Errorf("round.entry_fee cannot be negative")
	}
	if c.Round.MinPlayers < 1 || c.Round.MinPlayers > c.Round.Capacity {
		return fmt.Errorf("round.min_players must be between 1 and capacity")
	}
	if c.Round.StartingBalance < 0 {
		return fmt.Errorf("round.starting_balance cannot be negative")
	}
	if _, err := c.Split(); err != nil {
		return err
	}
	if c.Identity.Secret == "" {
		return fmt.Errorf("identity.secret is required")
	}
	return nil
}

// Split parses the configured prize split
func (c *Config) Split() (draw.Split, error) {
	split, err := draw.ParseSplit(c.Round.CenterShare, c.Round.SideShare)
	if err != nil {
		return draw.Split{}, fmt.Errorf("invalid prize split: %w", err)
	}
	return split, nil
}
