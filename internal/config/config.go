// Package config manages environment variables.
//
// It reads variables from the environment (and a `.env` file if present),
// loads them into structured Go types, and validates that required values
// are present so they can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide defaults for optional config blocks (observability, plugins).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it is loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix ANITYA_, lowercased, and nested with
	the "." delimiter. Shells cannot export names containing ".", so a
	double underscore is accepted as well:

	  ANITYA_SERVER.PORT      -> server.port      -> Config.Server.Port
	  ANITYA_SERVER__PORT     -> server.port      -> Config.Server.Port
	  ANITYA_PLUGINS__BACKENDS -> plugins.backends -> Config.Plugins.Backends

	List values are comma separated.
*/

// EnvPrefix is the prefix of every variable the application reads.
const EnvPrefix = "ANITYA_"

// Config is the root configuration object for the application.
//
// Observability and Plugins are pointers because they are optional. If not
// provided, defaults are injected.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Plugins       *PluginsConfig       `koanf:"plugins"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// BaseURL is the public root of the web UI, used to build project
	// links (e.g. in mapping conflict messages). Empty yields relative links.
	BaseURL string `koanf:"base_url" validate:"omitempty,url"`
}

// PluginsConfig names the backends offered in the project form.
//
// Version schemes are built in and not configurable.
type PluginsConfig struct {
	Backends []string `koanf:"backends"`
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, validates it and applies defaults.
func LoadConfig() (*Config, error) {
	// "." is the key-path delimiter koanf uses to represent nesting.
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	return fromKoanf(k)
}

// envKey maps ANITYA_SERVER__READ_TIMEOUT to server.read_timeout.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// listKeys hold comma-separated values.
var listKeys = map[string]bool{
	"server.cors_allowed_origins": true,
	"plugins.backends":            true,
}

// envValue maps an env var onto its koanf key and splits list values.
func envValue(name, value string) (string, any) {
	key := envKey(name)
	if !listKeys[key] {
		return key, value
	}

	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

// fromKoanf decodes and validates whatever k holds.
func fromKoanf(k *koanf.Koanf) (*Config, error) {
	mainConfig := &Config{}

	// "" means "unmarshal everything from the root".
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Plugins == nil {
		mainConfig.Plugins = &PluginsConfig{}
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed; environment always follows primary.env.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
