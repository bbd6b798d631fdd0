// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	YouTube  YouTubeConfig
	Harvest  HarvestConfig
	RabbitMQ RabbitMQConfig
	Redis    RedisConfig
	Logging  LoggingConfig
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
	APIKeys         []string
}

// DatabaseConfig contains database connection configuration.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type DatabaseConfig struct {
	Host           string
	Name           string
	User           string
	Password       string
	SSLMode        string
	Port           int
	MaxConnections int
	MinConnections int
	MaxIdleTime    time.Duration
	MaxLifetime    time.Duration
}

// YouTubeConfig contains the Data API credential and paging sizes.
type YouTubeConfig struct {
	APIKey           string
	PlaylistPageSize int64
	CommentPageSize  int64
}

// HarvestConfig contains ingestion behavior knobs.
type HarvestConfig struct {
	MaxAttempts     int
	MaxBackoff      time.Duration
	CommentsEnabled bool
}

// RabbitMQConfig contains the report publisher connection and topology.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type RabbitMQConfig struct {
	Enabled    bool
	Host       string
	User       string
	Password   string
	Exchange   string
	Queue      string
	RoutingKey string
	Port       int
}

// RedisConfig contains the async harvest queue connection.
type RedisConfig struct {
	URL         string
	Concurrency int
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
	File  string
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// DSN renders the database config as a pgx connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

func setDefaults() {
	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.shutdowntimeout", 30*time.Second)
	viper.SetDefault("server.apikeys", []string{})

	// Database
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "youtube_warehouse")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.maxconnections", 10)
	viper.SetDefault("database.minconnections", 2)
	viper.SetDefault("database.maxidletime", 10*time.Minute)
	viper.SetDefault("database.maxlifetime", 1*time.Hour)

	// YouTube Data API
	viper.SetDefault("youtube.apikey", "")
	viper.SetDefault("youtube.playlistpagesize", 50)
	viper.SetDefault("youtube.commentpagesize", 100)

	// Harvest
	viper.SetDefault("harvest.maxattempts", 4)
	viper.SetDefault("harvest.maxbackoff", 30*time.Second)
	viper.SetDefault("harvest.commentsenabled", true)

	// RabbitMQ report publisher
	viper.SetDefault("rabbitmq.enabled", false)
	viper.SetDefault("rabbitmq.host", "localhost")
	viper.SetDefault("rabbitmq.port", 5672)
	viper.SetDefault("rabbitmq.user", "guest")
	viper.SetDefault("rabbitmq.password", "guest")
	viper.SetDefault("rabbitmq.exchange", "youtube.harvest")
	viper.SetDefault("rabbitmq.queue", "youtube.harvest.reports")
	viper.SetDefault("rabbitmq.routingkey", "harvest.completed")

	// Redis / async harvest queue
	viper.SetDefault("redis.url", "")
	viper.SetDefault("redis.concurrency", 2)

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}
