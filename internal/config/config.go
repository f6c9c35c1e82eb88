package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pion/stun/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const envPrefix = "SIGNAL"

type Config struct {
	Addr            string        `mapstructure:"addr"`
	StaticPath      string        `mapstructure:"static_path"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// Websocket transport.
	ReadLimit  int64         `mapstructure:"read_limit"`
	WriteWait  time.Duration `mapstructure:"write_wait"`
	PongWait   time.Duration `mapstructure:"pong_wait"`
	SendBuffer int           `mapstructure:"send_buffer"`

	// Rooms and relay.
	MaxRoomMembers    int     `mapstructure:"max_room_members"`
	NotifyPeerLeft    bool    `mapstructure:"notify_peer_left"`
	MessagesPerSecond float64 `mapstructure:"messages_per_second"`
	MessageBurst      int     `mapstructure:"message_burst"`

	// Handed to browsers, never dialled by the server.
	STUNServers []string `mapstructure:"stun_servers"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("static_path", "./static")
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("shutdown_timeout", "5s")
	v.SetDefault("read_limit", 64*1024)
	v.SetDefault("write_wait", "10s")
	v.SetDefault("pong_wait", "60s")
	v.SetDefault("send_buffer", 256)
	v.SetDefault("max_room_members", 2)
	v.SetDefault("notify_peer_left", true)
	v.SetDefault("messages_per_second", 50)
	v.SetDefault("message_burst", 100)
	v.SetDefault("stun_servers", []string{"stun:stun.l.google.com:19302"})
}

// Load reads config/config.<CONFIG_ENV>.yaml when present and lets
// SIGNAL_* environment variables override any key.
func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", fileName, err)
		}
		log.Warn().Str("file", fileName).Msg("Config file not found, using defaults")
	} else {
		log.Info().Str("file", fileName).Msg("Loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must be set")
	}
	if c.MaxRoomMembers < 0 {
		return fmt.Errorf("max_room_members must be >= 0, got %d", c.MaxRoomMembers)
	}
	if c.SendBuffer <= 0 {
		return fmt.Errorf("send_buffer must be > 0, got %d", c.SendBuffer)
	}
	if c.PongWait <= 0 || c.WriteWait <= 0 {
		return errors.New("pong_wait and write_wait must be positive")
	}
	if c.MessagesPerSecond < 0 || c.MessageBurst < 0 {
		return errors.New("messages_per_second and message_burst must be >= 0")
	}
	if c.MessagesPerSecond > 0 && c.MessageBurst < 1 {
		return fmt.Errorf("message_burst must be >= 1 when messages_per_second is set, got %d", c.MessageBurst)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	for _, raw := range c.STUNServers {
		if _, err := stun.ParseURI(raw); err != nil {
			return fmt.Errorf("stun_servers %q: %w", raw, err)
		}
	}
	return nil
}

// PingPeriod must stay under PongWait so the peer answers in time.
func (c *Config) PingPeriod() time.Duration {
	return (c.PongWait * 9) / 10
}

// OriginAllowed reports whether a browser origin may open a websocket.
// Requests without an Origin header are not from browsers and pass.
func (c *Config) OriginAllowed(origin string) bool {
	if origin == "" {
		return true
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// SetupLogger configures the global zerolog logger.
func (c *Config) SetupLogger() {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if c.LogFormat == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Caller().Logger()
}
