package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for a straddle scan.
type Config struct {
	// CSVFile is the append-only ledger the scan writes to.
	CSVFile string `json:"csv_file"`

	// MaxExpirations caps how many near-term expirations are priced.
	MaxExpirations int `json:"max_expirations"`

	// HVWindowDays is the trailing window for historical volatility,
	// in calendar days.
	HVWindowDays int `json:"hv_window_days"`

	DataCacheDir string `json:"data_cache_dir"`
	CacheEnabled bool   `json:"cache_enabled"`

	// FinnhubAPIKey enables the earnings-date lookup. Optional; scans
	// run without it and record "N/A".
	FinnhubAPIKey string `json:"finnhub_api_key"`

	Debug bool `json:"debug"`
}

// DefaultConfig builds the default configuration, then applies a .env
// file and environment variable overrides.
func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()

	cfg := &Config{
		CSVFile:        "straddle_results.csv",
		MaxExpirations: 4,
		HVWindowDays:   30,
		DataCacheDir:   filepath.Join(currentDir, "data", "cache"),
		CacheEnabled:   true,
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("STRADDLE_CSV_FILE"); val != "" {
		c.CSVFile = val
	}
	if val := os.Getenv("DATA_CACHE_DIR"); val != "" {
		c.DataCacheDir = val
	}
	if val := os.Getenv("FINNHUB_API_KEY"); val != "" {
		c.FinnhubAPIKey = val
	}

	if val := os.Getenv("MAX_EXPIRATIONS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil && v > 0 {
			c.MaxExpirations = v
		}
	}
	if val := os.Getenv("HV_WINDOW_DAYS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil && v > 0 {
			c.HVWindowDays = v
		}
	}

	if val := os.Getenv("CACHE_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.CacheEnabled = enabled
		}
	}
	if val := os.Getenv("STRADDLEGO_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
}

// EnsureDirectories creates the cache directory when caching is on.
func (c *Config) EnsureDirectories() error {
	if !c.CacheEnabled {
		return nil
	}
	return os.MkdirAll(c.DataCacheDir, 0755)
}
