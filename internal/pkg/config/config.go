// Package config loads service configuration from the environment, with an
// optional local config file for development. Environment variables win.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full service configuration.
type Config struct {
	App     AppConfig
	Spanner SpannerConfig
	Redis   RedisConfig
	HTTP    HTTPConfig
}

// AppConfig names the service and its environment.
type AppConfig struct {
	Env  string
	Name string
}

// SpannerConfig locates the Spanner database.
type SpannerConfig struct {
	ProjectID  string
	InstanceID string
	DatabaseID string
}

// Database returns the fully qualified Spanner database path.
func (c SpannerConfig) Database() string {
	return fmt.Sprintf("projects/%s/instances/%s/databases/%s", c.ProjectID, c.InstanceID, c.DatabaseID)
}

// RedisConfig locates the category-tree cache. An empty Addr disables
// caching.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

// HTTPConfig is the admin API listen address.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from env vars (CATALOG_* names like
// CATALOG_SPANNER_PROJECT_ID) and an optional .env file in the working
// directory.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // missing file is fine

	v.SetEnvPrefix("CATALOG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "catalog-service"),
		},
		Spanner: SpannerConfig{
			ProjectID:  getString(v, "SPANNER_PROJECT_ID", "test-project"),
			InstanceID: getString(v, "SPANNER_INSTANCE_ID", "dev-instance"),
			DatabaseID: getString(v, "SPANNER_DATABASE_ID", "catalog-db"),
		},
		Redis: RedisConfig{
			Addr:       getString(v, "REDIS_ADDR", ""),
			Password:   getString(v, "REDIS_PASSWORD", ""),
			DB:         getInt(v, "REDIS_DB", 0),
			TTLSeconds: getInt(v, "REDIS_TTL_SECONDS", 300),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		return v.GetInt(key)
	}
	return def
}
