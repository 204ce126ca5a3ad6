package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// APIKeyEnv overrides ocr.api_key when set in the environment.
const APIKeyEnv = "OCR_SPACE_API_KEY"

const (
	DefaultOCRURL         = "https://api.ocr.space/parse/image"
	DefaultOCRAPIKey      = "helloworld"
	DefaultOCRLanguage    = "eng"
	DefaultOCREngine      = "2"
	DefaultOCRTimeout     = 20
	DefaultCalendarTitle  = "Syllabus Calendar"
	DefaultLogLevel       = "info"
	TriggerNoText         = "no_text"
	TriggerNoEvents       = "no_events"
	defaultConfigFileMode = 0o600
)

// OCRConfig describes the external OCR fallback.
type OCRConfig struct {
	// URL is the OCR.space compatible parse endpoint.
	URL string `yaml:"url" json:"url"`
	// APIKey is sent as the "apikey" form field. Empty disables OCR.
	APIKey   string `yaml:"api_key" json:"-"`
	Language string `yaml:"language" json:"language"`
	// Engine selects the OCR engine variant; "2" is the higher-accuracy one.
	Engine string `yaml:"engine" json:"engine"`
	// TimeoutSeconds caps the single OCR request.
	TimeoutSeconds int `yaml:"timeout_seconds" json:"timeout_seconds"`

	// Trigger decides when the pipeline escalates to OCR:
	//   - "no_events" (default): whenever structured extraction produced no events
	//   - "no_text": only when no page yielded any text
	Trigger string `yaml:"trigger" json:"trigger"`
}

// Timeout returns TimeoutSeconds as a duration.
func (o OCRConfig) Timeout() time.Duration {
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// Enabled reports whether an OCR request can be attempted at all.
func (o OCRConfig) Enabled() bool {
	return o.URL != "" && o.APIKey != ""
}

type CalendarConfig struct {
	// Title is the X-WR-CALNAME used when the caller supplies none.
	Title string `yaml:"title" json:"title"`
}

// Config is the top-level configuration. It is read once at startup and
// passed by value into constructors afterwards.
type Config struct {
	OCR      OCRConfig      `yaml:"ocr" json:"ocr"`
	Calendar CalendarConfig `yaml:"calendar" json:"calendar"`
	LogLevel string         `yaml:"log_level" json:"log_level"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			URL:            DefaultOCRURL,
			APIKey:         DefaultOCRAPIKey,
			Language:       DefaultOCRLanguage,
			Engine:         DefaultOCREngine,
			TimeoutSeconds: DefaultOCRTimeout,
			Trigger:        TriggerNoEvents,
		},
		Calendar: CalendarConfig{
			Title: DefaultCalendarTitle,
		},
		LogLevel: DefaultLogLevel,
	}
}

// Normalize fills in missing/zero values so partially-filled files still
// behave correctly. APIKey is left alone: an explicit empty key disables OCR.
func (c *Config) Normalize() {
	if c.OCR.URL == "" {
		c.OCR.URL = DefaultOCRURL
	}
	if c.OCR.Language == "" {
		c.OCR.Language = DefaultOCRLanguage
	}
	if c.OCR.Engine == "" {
		c.OCR.Engine = DefaultOCREngine
	}
	if c.OCR.TimeoutSeconds <= 0 {
		c.OCR.TimeoutSeconds = DefaultOCRTimeout
	}
	switch strings.ToLower(c.OCR.Trigger) {
	case TriggerNoText, TriggerNoEvents:
		c.OCR.Trigger = strings.ToLower(c.OCR.Trigger)
	default:
		c.OCR.Trigger = TriggerNoEvents
	}
	if strings.TrimSpace(c.Calendar.Title) == "" {
		c.Calendar.Title = DefaultCalendarTitle
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// ApplyEnv applies environment overrides on top of file values.
func (c *Config) ApplyEnv() {
	if key, ok := os.LookupEnv(APIKeyEnv); ok {
		c.OCR.APIKey = key
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written with 0600
//     perms and returned.
//   - If the file exists, it is unmarshalled and normalized.
//
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				cfg.ApplyEnv()
				return cfg, err
			}
			cfg.ApplyEnv()
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	cfg.ApplyEnv()

	return cfg, nil
}

// Save writes cfg to path atomically (temp file + rename) with 0600 perms,
// creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".syllabuscal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, defaultConfigFileMode); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
