package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Env         string        `mapstructure:"ENV"`
	HTTPAddr    string        `mapstructure:"HTTP_ADDR"`
	DatabaseURL string        `mapstructure:"DATABASE_URL"`
	JWTSecret   string        `mapstructure:"JWT_SECRET"`
	RedisAddr   string        `mapstructure:"REDIS_ADDR"`
	CacheTTL    time.Duration `mapstructure:"CACHE_TTL"`
	LoginURL    string        `mapstructure:"LOGIN_URL"`
}

var AppConfig *Config

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("ENV", "dev")
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("CACHE_TTL", 20*time.Second)
	viper.SetDefault("LOGIN_URL", "/auth/login")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
