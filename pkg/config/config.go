package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// External APIs
	SportsAPIKey    string        `mapstructure:"SPORTS_API_KEY"`
	GeminiAPIKey    string        `mapstructure:"GEMINI_API_KEY"`
	UpstreamTimeout time.Duration `mapstructure:"UPSTREAM_TIMEOUT"`
	UpstreamRPS     int           `mapstructure:"UPSTREAM_RPS"`

	// Cache
	CacheDir string        `mapstructure:"CACHE_DIR"`
	CacheTTL time.Duration `mapstructure:"CACHE_TTL"`

	// Rate limiting
	RateLimitWindow time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
	RateLimitMax    int           `mapstructure:"RATE_LIMIT_MAX"`
	AIRateLimitMax  int           `mapstructure:"AI_RATE_LIMIT_MAX"`

	// AI
	ReportsDir string `mapstructure:"REPORTS_DIR"`

	// Background jobs
	EnableBackgroundJobs bool     `mapstructure:"ENABLE_BACKGROUND_JOBS"`
	RefreshInterval      string   `mapstructure:"REFRESH_INTERVAL"`
	RefreshSports        []string `mapstructure:"REFRESH_SPORTS"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("SPORTS_API_KEY", "")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("UPSTREAM_TIMEOUT", "10s")
	viper.SetDefault("UPSTREAM_RPS", 10)
	viper.SetDefault("CACHE_DIR", "cache")
	viper.SetDefault("CACHE_TTL", "6h")
	viper.SetDefault("RATE_LIMIT_WINDOW", "60s")
	viper.SetDefault("RATE_LIMIT_MAX", 100)
	viper.SetDefault("AI_RATE_LIMIT_MAX", 20)
	viper.SetDefault("REPORTS_DIR", "reports")
	viper.SetDefault("ENABLE_BACKGROUND_JOBS", false)
	viper.SetDefault("REFRESH_INTERVAL", "2h")
	viper.SetDefault("REFRESH_SPORTS", "baseball,basketball,f1")

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse comma-separated lists
	if corsStr := viper.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}
	if sportsStr := viper.GetString("REFRESH_SPORTS"); sportsStr != "" {
		config.RefreshSports = strings.Split(sportsStr, ",")
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
