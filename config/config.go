package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// envKeyReplacer maps "mongo.uri" to the MONGO_URI environment variable.
var envKeyReplacer = strings.NewReplacer(".", "_")

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Upload  UploadConfig  `mapstructure:"upload"`
}

type ServerConfig struct {
	Port  string `mapstructure:"port"`
	Debug bool   `mapstructure:"debug"`
}

// StorageConfig selects the note/user store: "mongo" for the canonical
// database backend, "file" for the flat-file mock store.
type StorageConfig struct {
	Backend  string `mapstructure:"backend"`
	DataFile string `mapstructure:"data_file"`
}

type MongoConfig struct {
	URI             string `mapstructure:"uri"`
	Database        string `mapstructure:"database"`
	MaxPoolSize     uint64 `mapstructure:"max_pool_size"`
	MinPoolSize     uint64 `mapstructure:"min_pool_size"`
	MaxConnIdleSecs int    `mapstructure:"max_conn_idle_secs"`
	RetryWrites     bool   `mapstructure:"retry_writes"`
}

type RedisConfig struct {
	URL     string `mapstructure:"url"`
	Enabled bool   `mapstructure:"enabled"`
}

type AuthConfig struct {
	SecretKey  string        `mapstructure:"secret_key"`
	AccessTTL  time.Duration `mapstructure:"access_ttl"`
	RefreshTTL time.Duration `mapstructure:"refresh_ttl"`
}

type UploadConfig struct {
	Dir     string `mapstructure:"dir"`
	BaseURL string `mapstructure:"base_url"`
}

// Load reads an optional config file, then lets environment variables
// override anything (SERVER_PORT, MONGO_URI, AUTH_SECRET_KEY, ...).
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "3001")
	v.SetDefault("server.debug", false)
	v.SetDefault("storage.backend", "mongo")
	v.SetDefault("storage.data_file", "data.json")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "travelnotes")
	v.SetDefault("mongo.max_pool_size", 100)
	v.SetDefault("mongo.min_pool_size", 10)
	v.SetDefault("mongo.max_conn_idle_secs", 60)
	v.SetDefault("mongo.retry_writes", true)
	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("auth.access_ttl", 7*24*time.Hour)
	v.SetDefault("auth.refresh_ttl", 30*24*time.Hour)
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.base_url", "/uploads")

	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Mongo.MaxConnIdleSecs <= 0 {
		cfg.Mongo.MaxConnIdleSecs = 60
	}

	return &cfg, nil
}

func (m MongoConfig) MaxConnIdleTime() time.Duration {
	return time.Duration(m.MaxConnIdleSecs) * time.Second
}
