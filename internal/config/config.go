package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
// Database credentials are supplied individually (DB_HOST, DB_USER, ...) and
// assembled into a DSN; they carry no fallback default and must be provided
// explicitly. Only the port, the signing secret and the expansion knobs
// (APP_ENV, WORKER_POOL_SIZE, REDIS_URL) have documented defaults.
type Config struct {
	// Server
	Port           int    `mapstructure:"SERVER_PORT"`
	Env            string `mapstructure:"APP_ENV"` // development | production
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`

	// Database
	DBHost     string `mapstructure:"DB_HOST"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// Auth
	JWTSecret string `mapstructure:"JWT_SECRET"`
}

// DatabaseDSN builds the Postgres DSN. connect_timeout matches the pool's
// documented 20s connect budget.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s sslmode=disable connect_timeout=20",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName,
	)
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Unmarshal only sees keys viper knows about; bind the ones that carry
	// no default so env-only values are picked up.
	for _, key := range []string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME"} {
		_ = viper.BindEnv(key)
	}

	// Documented fallback defaults
	viper.SetDefault("SERVER_PORT", 5000)
	viper.SetDefault("JWT_SECRET", "tu_secreto_jwt_super_seguro")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("WORKER_POOL_SIZE", 2)
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
