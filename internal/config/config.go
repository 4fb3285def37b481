package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultJWTSecret is used when no secret is configured. It is only acceptable
// for local development.
const DefaultJWTSecret = "wirahusada-dev-secret"

// DatabaseConfig describes one PostgreSQL pool. The same type is embedded three
// times; the envPrefix tag on each embedding selects DB_SSO_*, DB_WIS_* or DB_WISMON_*.
type DatabaseConfig struct {
	Host            string `yaml:"host" env:"HOST"`
	Port            string `yaml:"port" env:"PORT"`
	User            string `yaml:"user" env:"USER"`
	Password        string `yaml:"password" env:"PASSWORD"`
	DBName          string `yaml:"dbname" env:"NAME"`
	SSLMode         string `yaml:"sslmode" env:"SSLMODE"`
	MaxConns        int    `yaml:"max_conns" env:"MAX_CONNS"`
	MinConns        int    `yaml:"min_conns" env:"MIN_CONNS"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME"`
}

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string  `yaml:"port" env:"PORT"`
		Mode           string  `yaml:"mode" env:"SERVER_MODE"`
		CORSOrigin     string  `yaml:"cors_origin" env:"CORS_ORIGIN"`
		RateLimitRPS   float64 `yaml:"rate_limit_rps" env:"RATE_LIMIT_RPS"`
		RateLimitBurst int     `yaml:"rate_limit_burst" env:"RATE_LIMIT_BURST"`
	} `yaml:"server"`

	Databases struct {
		SSO    DatabaseConfig `yaml:"sso" envPrefix:"DB_SSO_"`
		WIS    DatabaseConfig `yaml:"wis" envPrefix:"DB_WIS_"`
		WISMON DatabaseConfig `yaml:"wismon" envPrefix:"DB_WISMON_"`
	} `yaml:"databases"`

	JWT struct {
		Secret string `yaml:"secret" env:"JWT_SECRET"`
		Issuer string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Migrations struct {
		Enabled bool `yaml:"enabled" env:"MIGRATIONS_ENABLED"`
	} `yaml:"migrations"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Missing file is fine; defaults and environment still apply
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func defaultDatabase(name string) DatabaseConfig {
	return DatabaseConfig{
		Host:            "localhost",
		Port:            "5432",
		User:            "postgres",
		Password:        "postgres",
		DBName:          name,
		SSLMode:         "disable",
		MaxConns:        10,
		MinConns:        1,
		ConnMaxLifetime: "1h",
	}
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "3000"
	config.Server.Mode = "development"
	config.Server.CORSOrigin = "*"
	config.Server.RateLimitRPS = 5
	config.Server.RateLimitBurst = 10

	config.Databases.SSO = defaultDatabase("sso")
	config.Databases.WIS = defaultDatabase("wis")
	config.Databases.WISMON = defaultDatabase("wismon")

	config.JWT.Secret = DefaultJWTSecret
	config.JWT.Issuer = "wirahusada-portal"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Migrations.Enabled = true
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config, "")
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	for name, db := range config.DatabaseConfigs() {
		if db.Host == "" {
			return fmt.Errorf("database %s: host is required", name)
		}
		if db.DBName == "" {
			return fmt.Errorf("database %s: name is required", name)
		}
		if db.ConnMaxLifetime != "" {
			if _, err := time.ParseDuration(db.ConnMaxLifetime); err != nil {
				return fmt.Errorf("database %s: invalid conn_max_lifetime: %w", name, err)
			}
		}
	}

	if config.Server.RateLimitRPS <= 0 || config.Server.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit rps and burst must be positive")
	}

	return nil
}

// DatabaseConfigs returns the three pool configurations keyed by pool name
func (c *Config) DatabaseConfigs() map[string]DatabaseConfig {
	return map[string]DatabaseConfig{
		"sso":    c.Databases.SSO,
		"wis":    c.Databases.WIS,
		"wismon": c.Databases.WISMON,
	}
}

// UsesDefaultSecret reports whether the insecure development secret is active
func (c *Config) UsesDefaultSecret() bool {
	return c.JWT.Secret == DefaultJWTSecret
}

// ConnectionString returns the postgres connection URL for the pool
func (d DatabaseConfig) ConnectionString() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.DBName,
		sslMode,
	)
}
