package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Storage     StorageConfig     `mapstructure:"storage" validate:"required"`
	Recognition RecognitionConfig `mapstructure:"recognition" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StorageConfig contains the persistence settings.
type StorageConfig struct {
	// Path is the SQLite database file backing the key-value snapshots.
	Path string `mapstructure:"path" validate:"required"`
}

// RecognitionConfig contains the food-recognition provider settings.
type RecognitionConfig struct {
	// Provider selects the analyzer backend.
	Provider string `mapstructure:"provider" validate:"required,oneof=openai gemini"`

	// APIKey authenticates against the selected provider.
	APIKey string `mapstructure:"api_key" validate:"required"`

	// Model is the vision model to query. Defaults per provider.
	Model string `mapstructure:"model"`

	// BaseURL overrides the OpenAI-compatible endpoint. Ignored by the
	// gemini provider.
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`

	// Timeout bounds a single recognition call.
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`
}
