package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage backends understood by the server.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
	BackendS3     = "s3"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Program  ProgramConfig  `mapstructure:"program"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	S3       S3Config       `mapstructure:"s3"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// StorageConfig selects where the session blob lives.
type StorageConfig struct {
	Backend string        `mapstructure:"backend"` // file, memory, mongo, redis, s3
	Key     string        `mapstructure:"key"`     // Fixed blob key
	Dir     string        `mapstructure:"dir"`     // Directory for the file backend
	Timeout time.Duration `mapstructure:"timeout"` // Per load/save deadline
}

// ProgramConfig points at a YAML program used instead of the built-in seed.
type ProgramConfig struct {
	SeedFile string `mapstructure:"seed_file"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	BlobPrefix      string `mapstructure:"blob_prefix"`
}

// AuthConfig enables role tokens. An empty JWTSecret leaves the API open.
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	Expiration    time.Duration `mapstructure:"expiration"`
	CoachPINHash  string        `mapstructure:"coach_pin_hash"`  // bcrypt hash
	ClientPINHash string        `mapstructure:"client_pin_hash"` // bcrypt hash
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
	File  string `mapstructure:"file"` // Empty logs to stdout only
}

// Enabled reports whether role tokens are required.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// MediaEnabled reports whether presigned feedback video URLs can be issued.
func (c Config) MediaEnabled() bool {
	return c.S3.BucketName != ""
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Nested keys map to env vars: storage.backend -> STORAGE_BACKEND
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":8080")
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.key", "coach_demo_app_v1")
	v.SetDefault("storage.dir", "data")
	v.SetDefault("storage.timeout", "5s")
	v.SetDefault("program.seed_file", "")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "coach_log")
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.blob_prefix", "sessions")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.expiration", "12h")
	v.SetDefault("auth.coach_pin_hash", "")
	v.SetDefault("auth.client_pin_hash", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")

	// A missing config file is fine: defaults and env vars still apply.
	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}

	return config, config.Validate()
}

// Validate checks the combinations that would otherwise fail at startup.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendMemory, BackendMongo, BackendRedis:
	case BackendS3:
		if c.S3.BucketName == "" {
			return errors.New("storage backend s3 requires s3.bucket_name")
		}
	default:
		return errors.New("unknown storage backend: " + c.Storage.Backend)
	}
	if c.Storage.Key == "" {
		return errors.New("storage.key must not be empty")
	}
	if c.Auth.Enabled() && c.Auth.CoachPINHash == "" && c.Auth.ClientPINHash == "" {
		return errors.New("auth.jwt_secret is set but no PIN hash is configured")
	}
	return nil
}
