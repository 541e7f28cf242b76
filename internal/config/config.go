// Package config provides functionality for managing configuration options
// for the client using command-line flags, environment variables and an
// optional TOML config file.
package config

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Options holds the configuration values for the client.
type Options struct {
	// BaseURL is the base URL of the marketplace API.
	BaseURL string `toml:"base_url"`

	// StoragePath is the path of the local wishlist fallback file.
	StoragePath string `toml:"storage_path"`

	// TokenPath is the path of the persisted auth token file.
	TokenPath string `toml:"token_path"`

	// LogLevel sets the minimum level for structured logging.
	LogLevel string `toml:"log_level"`

	// Config is the path to the config file.
	Config string `toml:"-"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.BaseURL, "url", "http://localhost:5000", "marketplace API base URL")
	flag.StringVar(&options.StoragePath, "storage", "wishlist.json", "path to wishlist fallback file")
	flag.StringVar(&options.TokenPath, "token-file", "token", "path to persisted auth token")
	flag.StringVar(&options.LogLevel, "log-level", "info", "log level")
	flag.StringVar(&options.Config, "config", "config.toml", "path to config file")
	flag.StringVar(&options.Config, "c", "config.toml", "path to config file (shorthand)")
}

// Parse parses the command-line flags, the config file and environment
// variables to set configuration values. Precedence is flags, then the
// config file, then environment variables. It returns a pointer to the
// Options struct containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// A .env file, when present, feeds the environment overrides below.
	_ = godotenv.Load()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := toml.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if baseURL := os.Getenv("API_BASE_URL"); baseURL != "" {
		options.BaseURL = baseURL
	}
	if storagePath := os.Getenv("WISHLIST_STORAGE"); storagePath != "" {
		options.StoragePath = storagePath
	}
	if tokenPath := os.Getenv("TOKEN_FILE"); tokenPath != "" {
		options.TokenPath = tokenPath
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}

	return options
}
