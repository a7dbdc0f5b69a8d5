package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML form of the configuration. Empty values leave the
// environment or default value in place.
type File struct {
	API struct {
		URL               string  `yaml:"url"`
		Timeout           string  `yaml:"timeout"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
	} `yaml:"api"`
	Templates struct {
		URL       string `yaml:"url"`
		CacheSize int    `yaml:"cache_size"`
		CacheTTL  string `yaml:"cache_ttl"`
	} `yaml:"templates"`
	Session struct {
		Backend string `yaml:"backend"`
		Path    string `yaml:"path"`
	} `yaml:"session"`
	LogLevel string `yaml:"log_level"`
	Locale   string `yaml:"locale"`
	AMQP     struct {
		URL      string `yaml:"url"`
		Exchange string `yaml:"exchange"`
		Queue    string `yaml:"queue"`
	} `yaml:"amqp"`
	Sheets struct {
		SpreadsheetID      string `yaml:"spreadsheet_id"`
		SheetName          string `yaml:"sheet_name"`
		ServiceAccountFile string `yaml:"service_account_file"`
	} `yaml:"sheets"`
}

// LoadFile reads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &f, nil
}

// LoadWithFile loads the environment configuration and overlays the YAML
// file at path. Environment variables win over file values. A missing file
// is only an error when explicit is true.
func LoadWithFile(path string, explicit bool) (*Config, error) {
	cfg := Load()
	if path == "" {
		return cfg, nil
	}

	f, err := LoadFile(path)
	if errors.Is(err, ErrConfigNotFound) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := f.apply(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f *File) apply(cfg *Config) error {
	overlay(&cfg.APIURL, "API_URL", f.API.URL)
	overlay(&cfg.TemplatesURL, "TEMPLATES_URL", f.Templates.URL)
	overlay(&cfg.SessionBackend, "SESSION_BACKEND", f.Session.Backend)
	overlay(&cfg.SessionDBPath, "SESSION_DB_PATH", f.Session.Path)
	overlay(&cfg.LogLevel, "LOG_LEVEL", f.LogLevel)
	overlay(&cfg.Locale, "LOCALE", f.Locale)
	overlay(&cfg.AMQPURL, "AMQP_URL", f.AMQP.URL)
	overlay(&cfg.AMQPExchange, "AMQP_EXCHANGE", f.AMQP.Exchange)
	overlay(&cfg.AMQPQueue, "AMQP_QUEUE", f.AMQP.Queue)
	overlay(&cfg.GoogleSpreadsheetID, "GOOGLE_SPREADSHEET_ID", f.Sheets.SpreadsheetID)
	overlay(&cfg.GoogleSheetName, "GOOGLE_SHEET_NAME", f.Sheets.SheetName)
	overlay(&cfg.GoogleServiceAccountFile, "GOOGLE_SERVICE_ACCOUNT_FILE", f.Sheets.ServiceAccountFile)

	if f.API.RequestsPerSecond != 0 && os.Getenv("REQUESTS_PER_SECOND") == "" {
		cfg.RequestsPerSecond = f.API.RequestsPerSecond
	}
	if f.Templates.CacheSize != 0 && os.Getenv("FRAGMENT_CACHE_SIZE") == "" {
		cfg.FragmentCacheSize = f.Templates.CacheSize
	}
	if err := overlayDuration(&cfg.RequestTimeout, "REQUEST_TIMEOUT", f.API.Timeout); err != nil {
		return err
	}
	return overlayDuration(&cfg.FragmentCacheTTL, "FRAGMENT_CACHE_TTL", f.Templates.CacheTTL)
}

func overlay(dst *string, envKey, value string) {
	if value == "" || os.Getenv(envKey) != "" {
		return
	}
	*dst = value
}

func overlayDuration(dst *time.Duration, envKey, value string) error {
	if value == "" || os.Getenv(envKey) != "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s from config file: %w", envKey, err)
	}
	*dst = d
	return nil
}
