package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the complete application configuration.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Adamo    DatabaseConfig `mapstructure:"adamo"`
	MapTool  DatabaseConfig `mapstructure:"maptool"`
	NATS     NATSConfig     `mapstructure:"nats"`
	Features FeatureConfig  `mapstructure:"features"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Log      LogConfig      `mapstructure:"log"`
}

// APIConfig holds API server configuration.
type APIConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds connection configuration for one of the two
// databases. Either side may be left unconfigured (empty host), in which
// case operations needing it resolve to an Unconfigured port.
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	Name           string `mapstructure:"name"`
	Schema         string `mapstructure:"schema"`
	Service        string `mapstructure:"service"` // Oracle service name
	SSLMode        string `mapstructure:"sslmode"`
	MaxConnections int    `mapstructure:"max_connections"`
}

// Configured reports whether this database has been wired up at all.
func (d DatabaseConfig) Configured() bool {
	return d.Host != ""
}

// NATSConfig holds NATS configuration for the event publisher. Optional:
// an empty URL disables event publishing.
type NATSConfig struct {
	URL           string        `mapstructure:"url"`
	MaxReconnects int           `mapstructure:"max_reconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
	SubjectPrefix string        `mapstructure:"subject_prefix"`
}

// FeatureConfig holds the feature gates. These replace the ambient static
// flags of the legacy deployment; the struct is passed explicitly into
// engine constructors.
type FeatureConfig struct {
	// EnableDatabaseWrites gates every destination write, independent of
	// per-request dry-run. When off, write-capable operations fail fast
	// with a "disabled" status instead of silently behaving as dry-run.
	EnableDatabaseWrites bool `mapstructure:"enable_database_writes"`
	// EnableMigration gates the one-shot bulk migration endpoint.
	EnableMigration bool `mapstructure:"enable_migration"`
}

// SyncConfig holds engine tuning shared by sync and migration runs.
type SyncConfig struct {
	// BatchTimeout bounds a single sync or migration step run.
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
	// TaxonomyFile points at the YAML seed of canonical odor families used
	// by the family migration step.
	TaxonomyFile string `mapstructure:"taxonomy_file"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load builds a Config from an initialized viper instance.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults registers default values on the given viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", "8085")
	v.SetDefault("api.read_timeout", "30s")
	v.SetDefault("api.write_timeout", "30s")

	v.SetDefault("adamo.port", 1521)
	v.SetDefault("adamo.schema", "GIV_MAP")
	v.SetDefault("adamo.service", "XE")
	v.SetDefault("adamo.max_connections", 5)

	v.SetDefault("maptool.port", 5432)
	v.SetDefault("maptool.schema", "map_adm")
	v.SetDefault("maptool.sslmode", "disable")
	v.SetDefault("maptool.max_connections", 10)

	v.SetDefault("nats.max_reconnects", 5)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.subject_prefix", "mapbridge")

	v.SetDefault("features.enable_database_writes", false)
	v.SetDefault("features.enable_migration", false)

	v.SetDefault("sync.batch_timeout", "5m")
	v.SetDefault("sync.taxonomy_file", "./configs/odor_families.yaml")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Validate checks configuration invariants that cannot wait until first use.
func (c *Config) Validate() error {
	if c.API.Port == "" {
		return errors.New("api.port is required")
	}
	if c.Adamo.Configured() && c.Adamo.User == "" {
		return errors.New("adamo.user is required when adamo.host is set")
	}
	if c.MapTool.Configured() && c.MapTool.Name == "" {
		return errors.New("maptool.name is required when maptool.host is set")
	}
	if c.Sync.BatchTimeout <= 0 {
		return errors.New("sync.batch_timeout must be positive")
	}
	return nil
}

// MapToolDSN returns the PostgreSQL connection string for the MAP Tool
// database.
func (c *Config) MapToolDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s search_path=%s",
		c.MapTool.Host, c.MapTool.Port, c.MapTool.Name, c.MapTool.User,
		c.MapTool.Password, c.MapTool.SSLMode, c.MapTool.Schema,
	)
}

// AdamoDSN returns the go-ora connection string for the ADAMO database.
func (c *Config) AdamoDSN() string {
	return fmt.Sprintf(
		"oracle://%s:%s@%s:%d/%s",
		c.Adamo.User, c.Adamo.Password, c.Adamo.Host, c.Adamo.Port, c.Adamo.Service,
	)
}
