package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the main structure mapping the entire application configuration.
// This struct uses mapstructure tags to map YAML/JSON keys to Go struct fields.
type Config struct {
	// Server configuration section containing HTTP server settings
	Server struct {
		Port int `mapstructure:"port"` // HTTP server port (default: 8080)
	} `mapstructure:"server"`

	// Database configuration section for SQLite settings
	Database struct {
		Name string `mapstructure:"name"` // SQLite database file name
	} `mapstructure:"database"`

	// Guestbook configuration: listing cap and input bounds enforced by
	// the guestbook service regardless of what the client sends
	Guestbook struct {
		MaxEntries       int `mapstructure:"max_entries"`        // Cap on entries returned by a listing
		MaxNameLength    int `mapstructure:"max_name_length"`    // Maximum length of a visitor name
		MaxMessageLength int `mapstructure:"max_message_length"` // Maximum length of a message
	} `mapstructure:"guestbook"`

	// Analytics configuration for the trailing query window
	Analytics struct {
		DefaultWindowDays int `mapstructure:"default_window_days"` // Window used when the caller gives none
	} `mapstructure:"analytics"`

	// Monitor configuration for the guestbook moderation watcher
	Monitor struct {
		IntervalMinutes int `mapstructure:"interval_minutes"` // Interval in minutes between pending-entry checks
	} `mapstructure:"monitor"`
}

// LoadConfig loads the application configuration using Viper.
// It supports environment variable overrides and YAML configuration files.
// Returns a populated Config struct or an error if configuration loading fails.
func LoadConfig() (*Config, error) {
	// Enable automatic environment variable binding
	// This allows config values to be overridden via environment variables
	viper.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	// e.g., "server.port" becomes "SERVER_PORT"
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.AddConfigPath("./configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Defaults used when no config file is found or specific keys are missing.
	// The guestbook bounds match what the site's modal enforces client-side;
	// the service re-checks them because the client cannot be trusted.
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.name", "bike_journey.db")
	viper.SetDefault("guestbook.max_entries", 50)
	viper.SetDefault("guestbook.max_name_length", 50)
	viper.SetDefault("guestbook.max_message_length", 500)
	viper.SetDefault("analytics.default_window_days", 7)
	viper.SetDefault("monitor.interval_minutes", 5)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Not fatal, the defaults above apply
			log.Println("Config file not found, using default values")
		} else {
			// Any other error (permissions, malformed YAML, etc.) is fatal
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	log.Printf("Configuration loaded: Server Port=%d, DB Name=%s, Guestbook Cap=%d, Monitor Interval=%dmin",
		cfg.Server.Port, cfg.Database.Name, cfg.Guestbook.MaxEntries, cfg.Monitor.IntervalMinutes)

	return &cfg, nil
}
