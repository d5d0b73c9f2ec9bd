package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	AMQP     AMQPConfig     `mapstructure:"amqp"`
	Maps     MapsConfig     `mapstructure:"maps"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	// Driver is "sqlite" (default) or "postgres"
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	Debug           bool          `mapstructure:"debug"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type LogConfig struct {
	Level        string `mapstructure:"level"`
	Format       string `mapstructure:"format"`
	LogstashURL  string `mapstructure:"logstash_url"`
	ElasticURL   string `mapstructure:"elastic_url"`
	ElasticIndex string `mapstructure:"elastic_index"`
}

// AMQPConfig is optional; an empty URL disables event publishing.
type AMQPConfig struct {
	URL   string `mapstructure:"url"`
	Queue string `mapstructure:"queue"`
}

// MapsConfig is optional; an empty APIKey disables timezone lookups.
type MapsConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// legacy env names kept from the single-binary deployment
var envAliases = map[string]string{
	"server.port":  "PORT",
	"server.mode":  "GIN_MODE",
	"jwt.secret":   "JWT_SECRET",
	"database.dsn": "DATABASE_DSN",
	"maps.api_key": "GOOGLE_MAPS_API_KEY",
	"amqp.url":     "AMQP_URL",
	"log.level":    "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "kam.db?_pragma=foreign_keys(1)")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.debug", false)

	v.SetDefault("jwt.secret", "kam_super_secret_change_me")
	v.SetDefault("jwt.ttl", time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.logstash_url", "")
	v.SetDefault("log.elastic_url", "")
	v.SetDefault("log.elastic_index", "kam-api")

	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.queue", "kam.interactions")

	v.SetDefault("maps.api_key", "")
	v.SetDefault("maps.base_url", "https://maps.googleapis.com/maps/api")
	v.SetDefault("maps.timeout", 5*time.Second)
}

// Load reads config.yml from the working directory when present, then lets
// the environment override it (server.port -> SERVER_PORT, plus the legacy
// names in envAliases).
func Load() (*Config, error) {
	return load(viper.New(), ".")
}

func load(v *viper.Viper, paths ...string) (*Config, error) {
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return errors.New("database.driver must be sqlite or postgres, got " + c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret must not be empty")
	}
	if c.JWT.TTL <= 0 {
		return errors.New("jwt.ttl must be positive")
	}
	return nil
}
