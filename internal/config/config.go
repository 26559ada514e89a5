// Package config loads the service configuration from an optional YAML
// file and MAPSERV_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig  `mapstructure:"server"`
	Log    LogConfig     `mapstructure:"log"`
	Map    MapConfig     `mapstructure:"map"`
	Layers []LayerConfig `mapstructure:"layers"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MapConfig sets service-wide rendering behavior.
type MapConfig struct {
	Title     string  `mapstructure:"title"`
	SRS       string  `mapstructure:"srs"`
	Antialias bool    `mapstructure:"antialias"`
	Graticule float64 `mapstructure:"graticule"`
}

// LayerConfig defines one served layer and how it is drawn.
type LayerConfig struct {
	Name  string      `mapstructure:"name"`
	Title string      `mapstructure:"title"`
	Path  string      `mapstructure:"path"`
	Style StyleConfig `mapstructure:"style"`
}

// StyleConfig holds the drawing parameters of a layer. Empty or zero
// values fall back to the renderer defaults.
type StyleConfig struct {
	Stroke      string `mapstructure:"stroke"`
	Fill        string `mapstructure:"fill"`
	StrokeWidth int    `mapstructure:"stroke_width"`
	PointRadius int    `mapstructure:"point_radius"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("map.title", "mapserv")
	v.SetDefault("map.srs", "EPSG:4326")
	v.SetDefault("map.antialias", true)
	v.SetDefault("map.graticule", 0)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: MAPSERV_SERVER_PORT → server.port
	v.SetEnvPrefix("MAPSERV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Map.SRS == "" {
		errs = append(errs, "map.srs is required")
	}
	if c.Map.Graticule < 0 {
		errs = append(errs, "map.graticule must not be negative")
	}
	for i, l := range c.Layers {
		if l.Name == "" {
			errs = append(errs, fmt.Sprintf("layers[%d].name is required", i))
		}
		if l.Path == "" {
			errs = append(errs, fmt.Sprintf("layers[%d].path is required", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
