package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/fazeelrazzaq/oasis-borrow/internal/infrastructure/rates"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a configuration usable without a config file,
// driven entirely by environment variables.
func Default() *AppConfig {
	cfg := &AppConfig{
		Network: NetworkConfig{
			Name:            envOr("NETWORK", "main"),
			InfuraProjectID: os.Getenv("INFURA_PROJECT_ID"),
			EtherscanAPIKey: os.Getenv("ETHERSCAN_API_KEY"),
		},
		Rates: RatesConfig{
			BaseURL: os.Getenv("GSU_RATES_URL"),
		},
		Redis: RedisConfig{
			Addr: os.Getenv("REDIS_ADDR"),
		},
	}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Network.Name == "" {
		cfg.Network.Name = "main"
	}
	if cfg.Network.PollInterval == 0 {
		cfg.Network.PollInterval = 30 * time.Second
	}
	if cfg.Rates.BaseURL == "" {
		cfg.Rates.BaseURL = rates.DefaultBaseURL
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = time.Minute
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
