package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix           = "SLUGPAD"
	defaultHTTPAddress  = "0.0.0.0:8080"
	defaultDatabasePath = "slugpad.db"
	defaultLogLevel     = "info"
	defaultQuietMillis  = 800
	defaultFlashMillis  = 2000
	defaultDedupTTLSecs = 30
	defaultSweepSecs    = 10
	defaultIdleTTLMins  = 10
)

// AppConfig captures runtime configuration for the API server.
type AppConfig struct {
	HTTPAddress    string
	DatabasePath   string
	LogLevel       string
	AutosaveQuiet  time.Duration
	SavedFlash     time.Duration
	DedupEntryTTL  time.Duration
	DedupSweep     time.Duration
	SessionIdleTTL time.Duration
}

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	configViper := viper.New()
	ApplyDefaults(configViper)
	return configViper
}

// ApplyDefaults configures defaults and env bindings on the provided viper instance.
func ApplyDefaults(configViper *viper.Viper) {
	configViper.SetEnvPrefix(envPrefix)
	configViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	configViper.AutomaticEnv()

	configViper.SetDefault("http.address", defaultHTTPAddress)
	configViper.SetDefault("database.path", defaultDatabasePath)
	configViper.SetDefault("log.level", defaultLogLevel)
	configViper.SetDefault("autosave.quiet_ms", defaultQuietMillis)
	configViper.SetDefault("autosave.saved_flash_ms", defaultFlashMillis)
	configViper.SetDefault("dedup.entry_ttl_s", defaultDedupTTLSecs)
	configViper.SetDefault("dedup.sweep_interval_s", defaultSweepSecs)
	configViper.SetDefault("sessions.idle_ttl_minutes", defaultIdleTTLMins)
}

// Load parses runtime configuration from viper.
func Load(configViper *viper.Viper) (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddress:    configViper.GetString("http.address"),
		DatabasePath:   configViper.GetString("database.path"),
		LogLevel:       configViper.GetString("log.level"),
		AutosaveQuiet:  time.Duration(configViper.GetInt("autosave.quiet_ms")) * time.Millisecond,
		SavedFlash:     time.Duration(configViper.GetInt("autosave.saved_flash_ms")) * time.Millisecond,
		DedupEntryTTL:  time.Duration(configViper.GetInt("dedup.entry_ttl_s")) * time.Second,
		DedupSweep:     time.Duration(configViper.GetInt("dedup.sweep_interval_s")) * time.Second,
		SessionIdleTTL: time.Duration(configViper.GetInt("sessions.idle_ttl_minutes")) * time.Minute,
	}

	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

func (c AppConfig) validate() error {
	if strings.TrimSpace(c.HTTPAddress) == "" {
		return fmt.Errorf("http.address is required")
	}
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.AutosaveQuiet <= 0 {
		return fmt.Errorf("autosave.quiet_ms must be positive")
	}
	if c.SavedFlash <= 0 {
		return fmt.Errorf("autosave.saved_flash_ms must be positive")
	}
	if c.DedupEntryTTL <= 0 {
		return fmt.Errorf("dedup.entry_ttl_s must be positive")
	}
	if c.DedupSweep <= 0 {
		return fmt.Errorf("dedup.sweep_interval_s must be positive")
	}
	if c.SessionIdleTTL <= 0 {
		return fmt.Errorf("sessions.idle_ttl_minutes must be positive")
	}
	return nil
}
