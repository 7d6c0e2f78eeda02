package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	S3       S3Config       `mapstructure:"s3"`
	Admin    AdminConfig    `mapstructure:"admin"`
	DevMode  bool           `mapstructure:"dev_mode"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// SessionConfig configures the cookie-backed session store and the CSRF key.
type SessionConfig struct {
	Secret  string        `mapstructure:"secret"`
	CSRFKey string        `mapstructure:"csrf_key"`
	Name    string        `mapstructure:"name"`
	MaxAge  time.Duration `mapstructure:"max_age"`
	Secure  bool          `mapstructure:"secure"`
}

// S3Config configures the member photo store. When Enabled is false the
// application runs with a no-op photo store.
type S3Config struct {
	Enabled         bool   `mapstructure:"enabled"`
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// AdminConfig seeds the first staff account when the store is empty.
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	// Nested keys map to env vars: session.secret -> SESSION_SECRET.
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "localgym")
	viper.SetDefault("session.name", "gym_session")
	viper.SetDefault("session.max_age", "24h")
	viper.SetDefault("session.secure", false)
	viper.SetDefault("s3.enabled", false)
	viper.SetDefault("s3.use_ssl", true)
	viper.SetDefault("admin.username", "admin")
	viper.SetDefault("admin.email", "admin@localgym.example")
	viper.SetDefault("dev_mode", false)

	err = viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// No config file is fine; env vars and defaults carry the rest.
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
