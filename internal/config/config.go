package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// DefaultDatasetURL is the cleaned bike-sharing dataset the dashboard was
// built against.
const DefaultDatasetURL = "https://raw.githubusercontent.com/rismaamaliyah/EDA-Bike-Sharing/main/dashboard/all_data.csv"

type AppConfig struct {
	// DatasetPath, when set, wins over DatasetURL.
	DatasetURL  string
	DatasetPath string

	HTTPTimeout time.Duration

	// RefreshInterval controls how often the dataset is reloaded. 0 disables refresh.
	RefreshInterval time.Duration

	// Number of loaded snapshots kept in memory.
	StoreMaxHistory int

	Port     string
	LogLevel string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}
	cfg := &AppConfig{}

	cfg.DatasetURL = getenvDefault("DATASET_URL", DefaultDatasetURL)
	cfg.DatasetPath = os.Getenv("DATASET_PATH")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "0"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval < 0 {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: must not be negative")
	}

	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 5)
	cfg.Port = getenvDefault("PORT", "8080")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")

	if cfg.DatasetPath == "" && cfg.DatasetURL == "" {
		return nil, fmt.Errorf("one of DATASET_PATH or DATASET_URL must be set")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
		log.Warnf("ignoring invalid %s=%q, using %d", key, v, def)
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
