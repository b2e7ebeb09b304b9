package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "PONG"

type Config struct {
	Mode       string        `mapstructure:"mode"`
	Port       int           `mapstructure:"port"`
	StaticPath string        `mapstructure:"static_path"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	Secret     string        `mapstructure:"secret"`
	PublicURL  string        `mapstructure:"public_url"`

	TickPeriod       time.Duration `mapstructure:"tick_period"`
	IdleTimeout      time.Duration `mapstructure:"idle_timeout"`
	ReapInterval     time.Duration `mapstructure:"reap_interval"`
	JoinRateLimit    int           `mapstructure:"join_rate_limit"`
	JoinRateWindow   time.Duration `mapstructure:"join_rate_window"`
	MaxDroppedFrames int           `mapstructure:"max_dropped_frames"`

	LogLevel      string `mapstructure:"log_level"`
	LogFile       string `mapstructure:"log_file"`
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb"`
	LogMaxBackups int    `mapstructure:"log_max_backups"`
	LogMaxAgeDays int    `mapstructure:"log_max_age_days"`
}

var defaults = map[string]any{
	"mode":               "release",
	"port":               8080,
	"static_path":        "./web",
	"read_limit":         32768,
	"ping_period":        "54s",
	"secret":             "change-me",
	"public_url":         "",
	"tick_period":        "16ms",
	"idle_timeout":       "0s",
	"reap_interval":      "0s",
	"join_rate_limit":    5,
	"join_rate_window":   "10s",
	"max_dropped_frames": 120,
	"log_level":          "info",
	"log_file":           "",
	"log_max_size_mb":    50,
	"log_max_backups":    3,
	"log_max_age_days":   14,
}

// RegisterFlags declares the command line overrides. Flag names use dashes,
// config keys use underscores.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("mode", "m", "release", "gin mode: debug or release (env: PONG_MODE)")
	fs.IntP("port", "p", 8080, "port to listen on (env: PONG_PORT)")
	fs.String("static-path", "./web", "directory with the browser client (env: PONG_STATIC_PATH)")
	fs.String("public-url", "", "base URL used in share links (env: PONG_PUBLIC_URL)")
	fs.Int64("read-limit", 32768, "max inbound WebSocket frame size in bytes (env: PONG_READ_LIMIT)")
	fs.Duration("ping-period", 54*time.Second, "WebSocket keepalive ping period, 0 disables (env: PONG_PING_PERIOD)")
	fs.Duration("tick-period", 16*time.Millisecond, "simulation tick (env: PONG_TICK_PERIOD)")
	fs.Duration("idle-timeout", 0, "expire rooms waiting for an opponent this long, 0 disables (env: PONG_IDLE_TIMEOUT)")
	fs.Duration("reap-interval", 0, "how often idle rooms are swept, 0 means idle-timeout/2 (env: PONG_REAP_INTERVAL)")
	fs.Int("join-rate-limit", 5, "join_room attempts allowed per window and socket, 0 disables (env: PONG_JOIN_RATE_LIMIT)")
	fs.Duration("join-rate-window", 10*time.Second, "join rate limit window (env: PONG_JOIN_RATE_WINDOW)")
	fs.Int("max-dropped-frames", 120, "consecutive dropped frames before a slow socket is closed, 0 never closes (env: PONG_MAX_DROPPED_FRAMES)")
	fs.String("log-level", "info", "trace, debug, info, warn or error (env: PONG_LOG_LEVEL)")
	fs.String("log-file", "", "write JSON logs to this rotating file instead of stderr (env: PONG_LOG_FILE)")
	fs.Int("log-max-size-mb", 50, "rotate the log file at this size (env: PONG_LOG_MAX_SIZE_MB)")
	fs.Int("log-max-backups", 3, "rotated log files to keep (env: PONG_LOG_MAX_BACKUPS)")
	fs.Int("log-max-age-days", 14, "days to keep rotated log files (env: PONG_LOG_MAX_AGE_DAYS)")
}

// Load reads config/config.<CONFIG_ENV>.yaml, then environment variables,
// then flags that were set explicitly. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)
	v.SetConfigFile(fileName)

	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			if !f.Changed {
				return
			}
			if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
				bindErr = errors.Join(bindErr, err)
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("bind flags: %w", bindErr)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config %s: %w", fileName, err)
		}
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Str("static", cfg.StaticPath).Dur("tick", cfg.TickPeriod).Msg("config ready")
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	if c.Mode != "debug" && c.Mode != "release" && c.Mode != "test" {
		return fmt.Errorf("invalid mode %q", c.Mode)
	}
	if c.TickPeriod <= 0 {
		return fmt.Errorf("tick_period must be positive, got %s", c.TickPeriod)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("idle_timeout must not be negative, got %s", c.IdleTimeout)
	}
	if c.JoinRateLimit > 0 && c.JoinRateWindow <= 0 {
		return errors.New("join_rate_window must be positive when join_rate_limit is set")
	}
	if c.Secret == "" {
		return errors.New("secret must not be empty")
	}
	return nil
}
