package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Marketplace MarketplaceConfig
	Push        PushConfig
	Engine      EngineConfig
	Runtime     RuntimeConfig
}

type MarketplaceConfig struct {
	BaseURL        string
	TradeWSURL     string
	SiteWSURL      string
	APIKey         string
	SteamID        string
	TradeURL       string
	RequestTimeout time.Duration
}

type PushConfig struct {
	HeartbeatInterval  time.Duration
	ReconnectUnit      time.Duration
	ResetBackoffOnOpen bool
	SiteEnabled        bool
	SiteEvents         []string
}

type EngineConfig struct {
	// SteamAPIKey enables polling of ready-to-transfer-p2p.
	SteamAPIKey          string
	TransferPollInterval time.Duration
	WssCheckInterval     time.Duration
}

type RuntimeConfig struct {
	Log LogConfig
}

type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

var envPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// Load reads configs/config.yaml (or config.json/toml) from the working
// directory. A missing file is not an error: defaults and WAXBOT_* env
// variables still apply.
func Load() (*Config, error) {
	v := newViper()
	v.AddConfigPath("configs")
	v.AddConfigPath(".")
	v.SetConfigName("config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("Не удалось прочитать конфиг: %w", err)
		}
	}

	return build(v)
}

// LoadFile reads an explicit config file.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("Не удалось прочитать конфиг %s: %w", path, err)
	}
	return build(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("waxbot")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("marketplace.base_url", "https://api.waxpeer.com/v1")
	v.SetDefault("marketplace.trade_ws_url", "wss://wssex.waxpeer.com")
	v.SetDefault("marketplace.site_ws_url", "wss://waxpeer.com/socket.io/?EIO=4&transport=websocket")
	v.SetDefault("marketplace.request_timeout", "60s")

	v.SetDefault("push.heartbeat_interval", "25s")
	v.SetDefault("push.reconnect_unit", "1s")
	v.SetDefault("push.reset_backoff_on_open", false)
	v.SetDefault("push.site_enabled", false)

	v.SetDefault("engine.transfer_poll_interval", "1m")
	v.SetDefault("engine.wss_check_interval", "1h")

	v.SetDefault("runtime.log.level", "info")
	v.SetDefault("runtime.log.format", "text")
	v.SetDefault("runtime.log.max_size", 100)
	v.SetDefault("runtime.log.max_backups", 5)
	v.SetDefault("runtime.log.max_age", 30)

	return v
}

func build(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	cfg.Marketplace = MarketplaceConfig{
		BaseURL:        v.GetString("marketplace.base_url"),
		TradeWSURL:     v.GetString("marketplace.trade_ws_url"),
		SiteWSURL:      v.GetString("marketplace.site_ws_url"),
		APIKey:         envSub(v, "marketplace.api_key"),
		SteamID:        envSub(v, "marketplace.steam_id"),
		TradeURL:       envSub(v, "marketplace.trade_url"),
		RequestTimeout: v.GetDuration("marketplace.request_timeout"),
	}

	cfg.Push = PushConfig{
		HeartbeatInterval:  v.GetDuration("push.heartbeat_interval"),
		ReconnectUnit:      v.GetDuration("push.reconnect_unit"),
		ResetBackoffOnOpen: v.GetBool("push.reset_backoff_on_open"),
		SiteEnabled:        v.GetBool("push.site_enabled"),
		SiteEvents:         v.GetStringSlice("push.site_events"),
	}

	cfg.Engine = EngineConfig{
		SteamAPIKey:          envSub(v, "engine.steam_api_key"),
		TransferPollInterval: v.GetDuration("engine.transfer_poll_interval"),
		WssCheckInterval:     v.GetDuration("engine.wss_check_interval"),
	}

	cfg.Runtime = RuntimeConfig{
		Log: LogConfig{
			Level:      v.GetString("runtime.log.level"),
			Format:     v.GetString("runtime.log.format"),
			File:       v.GetString("runtime.log.file"),
			MaxSize:    v.GetInt("runtime.log.max_size"),
			MaxBackups: v.GetInt("runtime.log.max_backups"),
			MaxAge:     v.GetInt("runtime.log.max_age"),
			Compress:   v.GetBool("runtime.log.compress"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Marketplace.APIKey == "" {
		return errors.New("Не задан marketplace.api_key")
	}
	if c.Marketplace.RequestTimeout <= 0 {
		return errors.New("marketplace.request_timeout должен быть больше нуля")
	}
	if c.Push.HeartbeatInterval <= 0 || c.Push.ReconnectUnit <= 0 {
		return errors.New("push.heartbeat_interval и push.reconnect_unit должны быть больше нуля")
	}
	if c.Engine.TransferPollInterval <= 0 || c.Engine.WssCheckInterval <= 0 {
		return errors.New("Интервалы engine должны быть больше нуля")
	}
	return nil
}

// envSub expands ${VAR} references in a string setting.
func envSub(v *viper.Viper, key string) string {
	val := v.GetString(key)
	if val == "" {
		return ""
	}

	return envPattern.ReplaceAllStringFunc(val, func(match string) string {
		envKey := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(envKey)
	})
}
