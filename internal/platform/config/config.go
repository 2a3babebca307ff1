package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Render    RenderConfig    `mapstructure:"render"`
	History   HistoryConfig   `mapstructure:"history"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Domains   DomainsConfig   `mapstructure:"domains"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

type DatabaseConfig struct {
	URL            string `mapstructure:"url"`
	MaxConnections int    `mapstructure:"max_connections"`
	MigrationsDir  string `mapstructure:"migrations_dir"`
}

type AuthConfig struct {
	RequireAPIKey bool `mapstructure:"require_api_key"`
	// bcrypt hash of the admin secret guarding key management.
	AdminKeyHash string `mapstructure:"admin_key_hash"`
}

type JWTConfig struct {
	Secret           string        `mapstructure:"secret"`
	DownloadTokenTTL time.Duration `mapstructure:"download_token_ttl"`
}

type RateLimitConfig struct {
	ReadPerMinute     int `mapstructure:"read_per_minute"`
	GeneratePerMinute int `mapstructure:"generate_per_minute"`
	BulkPerMinute     int `mapstructure:"bulk_per_minute"`
}

type RenderConfig struct {
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	BulkConcurrency int           `mapstructure:"bulk_concurrency"`
	MaxBatchItems   int           `mapstructure:"max_batch_items"`
}

type HistoryConfig struct {
	Retention     time.Duration `mapstructure:"retention"`
	PurgeInterval time.Duration `mapstructure:"purge_interval"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

type DomainsConfig struct {
	PublicURL string `mapstructure:"public_url"`
}

// SetDefaults registers the values used when neither the file nor the
// environment sets a key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.max_body_bytes", 1<<20)

	v.SetDefault("database.url", "file:data/tecsoqr.db")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.migrations_dir", "migrations")

	v.SetDefault("auth.require_api_key", false)
	v.SetDefault("auth.admin_key_hash", "")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.download_token_ttl", 15*time.Minute)

	v.SetDefault("rate_limit.read_per_minute", 300)
	v.SetDefault("rate_limit.generate_per_minute", 120)
	v.SetDefault("rate_limit.bulk_per_minute", 10)

	v.SetDefault("render.cache_ttl", 10*time.Minute)
	v.SetDefault("render.bulk_concurrency", 4)
	v.SetDefault("render.max_batch_items", 100)

	v.SetDefault("history.retention", 30*24*time.Hour)
	v.SetDefault("history.purge_interval", time.Hour)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.file_path", "")

	v.SetDefault("domains.public_url", "http://localhost:8080")
}

// Load reads path (if non-empty) and overlays environment variables such as
// SERVER_PORT or AUTH_REQUIRE_API_KEY.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
