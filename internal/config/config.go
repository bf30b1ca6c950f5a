package config

import "time"

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Network NetworkConfig `yaml:"network"`
	Rates   RatesConfig   `yaml:"rates"`
	Redis   RedisConfig   `yaml:"redis"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// NetworkConfig selects the chain the service reads from.
type NetworkConfig struct {
	Name            string        `yaml:"name"` // main, goerli, hardhat
	InfuraProjectID string        `yaml:"infura_project_id"`
	EtherscanAPIKey string        `yaml:"etherscan_api_key"`
	PollInterval    time.Duration `yaml:"poll_interval"`
}

// RatesConfig holds settings for the external rates endpoint.
type RatesConfig struct {
	BaseURL string `yaml:"base_url"`
}

// RedisConfig holds cache connection settings. An empty address
// disables Redis and falls back to the in-memory cache.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}
