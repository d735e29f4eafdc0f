package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"docsum/internal/domain"
	"docsum/internal/extract"
	"docsum/internal/summarizer"
)

// SummarizerConfig configures the extractive summarizer.
type SummarizerConfig struct {
	Policy   string             `yaml:"policy"`
	MinWords int                `yaml:"min_words"`
	Weights  summarizer.Weights `yaml:"weights"`
}

// ExtractConfig configures document extraction and OCR.
type ExtractConfig struct {
	OCRLanguages []string `yaml:"ocr_languages"`
	PageMarker   string   `yaml:"page_marker"`
}

// HistoryConfig selects and configures the history store.
type HistoryConfig struct {
	Type  string `yaml:"type"`
	DSN   string `yaml:"dsn"`
	Limit int    `yaml:"limit"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Extract    ExtractConfig    `yaml:"extract"`
	History    HistoryConfig    `yaml:"history"`
	Log        LogConfig        `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// Keys missing from the file keep their default values. DOCSUM_* environment
// variables, including ones from a .env file, override the result.
func Load(path string) (*AppConfig, error) {
	_ = godotenv.Load()
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	applyConfigDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/docsum/config.yaml.
// If neither exists, it writes defaults to ~/.config/docsum/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err != nil {
		if err := Save(userPath, defaultConfig()); err != nil {
			return nil, "", err
		}
	}
	cfg, err := Load(userPath)
	return cfg, userPath, err
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports settings no component can run with.
func (c *AppConfig) Validate() error {
	if _, err := domain.ParsePolicy(c.Summarizer.Policy); err != nil {
		return err
	}
	switch c.History.Type {
	case "memory":
	case "sqlite":
		if c.History.DSN == "" {
			return errors.New("history.dsn is required for sqlite history")
		}
	default:
		return fmt.Errorf("unknown history type: %q", c.History.Type)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format: %q", c.Log.Format)
	}
	return nil
}

// Policy returns the configured default length policy.
func (c *AppConfig) Policy() domain.LengthPolicy {
	p, err := domain.ParsePolicy(c.Summarizer.Policy)
	if err != nil {
		return domain.PolicyMedium
	}
	return p
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "docsum", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Summarizer: SummarizerConfig{
			Policy:   string(domain.PolicyMedium),
			MinWords: summarizer.DefaultMinWords,
			Weights:  summarizer.DefaultWeights(),
		},
		Extract: ExtractConfig{
			OCRLanguages: []string{"ara", "eng"},
			PageMarker:   extract.DefaultPageMarker,
		},
		History: HistoryConfig{Type: "memory", DSN: "history.db", Limit: 50},
		Log:     LogConfig{Level: "info", Format: "json", Output: "stderr"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Summarizer.MinWords <= 0 {
		cfg.Summarizer.MinWords = summarizer.DefaultMinWords
	}
	if len(cfg.Extract.OCRLanguages) == 0 {
		cfg.Extract.OCRLanguages = []string{"ara", "eng"}
	}
	if cfg.Extract.PageMarker == "" {
		cfg.Extract.PageMarker = extract.DefaultPageMarker
	}
	if cfg.History.Type == "" {
		cfg.History.Type = "memory"
	}
	if cfg.History.Limit <= 0 {
		cfg.History.Limit = 50
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}
}

func applyEnv(cfg *AppConfig) {
	cfg.Summarizer.Policy = getEnv("DOCSUM_POLICY", cfg.Summarizer.Policy)
	cfg.Summarizer.MinWords = getEnvInt("DOCSUM_MIN_WORDS", cfg.Summarizer.MinWords)
	cfg.History.Type = getEnv("DOCSUM_HISTORY_TYPE", cfg.History.Type)
	cfg.History.DSN = getEnv("DOCSUM_HISTORY_DSN", cfg.History.DSN)
	cfg.Log.Level = getEnv("DOCSUM_LOG_LEVEL", cfg.Log.Level)
	if langs := getEnv("DOCSUM_OCR_LANGUAGES", ""); langs != "" {
		cfg.Extract.OCRLanguages = strings.FieldsFunc(langs, func(r rune) bool { return r == ',' || r == '+' || r == ' ' })
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
