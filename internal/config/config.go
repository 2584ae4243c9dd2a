// Package config loads the omakase configuration from a YAML file and
// environment variables.
package config

import "time"

// Config is the root application configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Storage  StorageConfig  `yaml:"storage"`
	Server   ServerConfig   `yaml:"server"`
	Mnemonic MnemonicConfig `yaml:"mnemonic"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"OMAKASE_LOG_LEVEL"  env-default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" env:"OMAKASE_LOG_FORMAT" env-default:"text" validate:"oneof=json text"`
}

// StorageConfig holds database locations.
type StorageConfig struct {
	// PreferencesPath bbolt файл с настройками пользователей и ассоциациями строк
	PreferencesPath string `yaml:"preferences_path" env:"OMAKASE_PREFERENCES_PATH" env-default:"omakase-prefs.db"      validate:"required"`
	// CollectionPath SQLite файл с колодами, заметками и карточками
	CollectionPath string `yaml:"collection_path"  env:"OMAKASE_COLLECTION_PATH"  env-default:"omakase-collection.db" validate:"required"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address         string        `yaml:"address"          env:"OMAKASE_SERVER_ADDRESS"          env-default:"localhost:8080" validate:"hostname_port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"OMAKASE_SERVER_READ_TIMEOUT"     env-default:"10s"            validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"OMAKASE_SERVER_WRITE_TIMEOUT"    env-default:"30s"            validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"OMAKASE_SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"            validate:"gt=0"`
	// SessionRate сколько сессий можно открыть с одного IP за SessionRateWindow
	SessionRate       int           `yaml:"session_rate"        env:"OMAKASE_SERVER_SESSION_RATE"        env-default:"30" validate:"gt=0"`
	SessionRateWindow time.Duration `yaml:"session_rate_window" env:"OMAKASE_SERVER_SESSION_RATE_WINDOW" env-default:"1m" validate:"gt=0"`
}

// MnemonicConfig holds mnemonic tool settings.
type MnemonicConfig struct {
	// DebounceDelay пауза без изменений перед записью ассоциаций строк
	DebounceDelay time.Duration `yaml:"debounce_delay" env:"OMAKASE_MNEMONIC_DEBOUNCE_DELAY" env-default:"5s" validate:"gt=0"`
}
