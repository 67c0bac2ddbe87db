// Package config loads runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/lyngdoh/curiouskids/internal/llm"
)

// Config is the complete runtime configuration.
type Config struct {
	LLM llm.Config

	// DBPath overrides the default database location.
	DBPath string `env:"CURIOUSKIDS_DB"`

	// LogMode is "dev", "prod" or "off".
	LogMode string `env:"CURIOUSKIDS_LOG_MODE" envDefault:"dev"`

	// LogFile receives logs. Empty means a file in the data directory
	// for the TUI and stderr for other commands.
	LogFile string `env:"CURIOUSKIDS_LOG_FILE"`

	// MaxRefetches bounds silent re-requests in the math games.
	MaxRefetches int `env:"CURIOUSKIDS_MAX_REFETCHES" envDefault:"5"`

	SpeechLanguage    string `env:"CURIOUSKIDS_SPEECH_LANGUAGE" envDefault:"en-US"`
	SpeechCredentials string `env:"CURIOUSKIDS_SPEECH_CREDENTIALS"`
	TTSCommand        string `env:"CURIOUSKIDS_TTS_COMMAND"`

	// ImageMaxDimension is the longest side of pictures sent to the model.
	ImageMaxDimension int `env:"CURIOUSKIDS_IMAGE_MAX_DIMENSION" envDefault:"1024"`
}

// Load parses the environment on top of the defaults and discovers an
// LLM API key from the vendor variables if none was configured.
func Load() (Config, error) {
	cfg := Config{LLM: llm.DefaultConfig()}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.LLM.Discover()

	if cfg.MaxRefetches < 0 {
		return Config{}, fmt.Errorf("CURIOUSKIDS_MAX_REFETCHES must not be negative, got %d", cfg.MaxRefetches)
	}
	if cfg.ImageMaxDimension <= 0 {
		return Config{}, fmt.Errorf("CURIOUSKIDS_IMAGE_MAX_DIMENSION must be positive, got %d", cfg.ImageMaxDimension)
	}
	return cfg, nil
}
