package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "wingmate.cfg.json"

// MemoryConfig holds JSON snapshot export settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// SQLiteConfig holds snapshot archive settings
type SQLiteConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// StorageConfig selects and configures the snapshot storage backend
type StorageConfig struct {
	Type   string       `json:"type" mapstructure:"type"`
	Memory MemoryConfig `json:"memory" mapstructure:"memory"`
	SQLite SQLiteConfig `json:"sqlite" mapstructure:"sqlite"`
}

// OTelConfig holds metrics settings
type OTelConfig struct {
	Enabled     bool   `json:"enabled" mapstructure:"enabled"`
	ServiceName string `json:"serviceName" mapstructure:"serviceName"`
}

// setDefaults registers every default so the app runs without a config file.
func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./wingmatelogs")
	viper.SetDefault("logToFile", false)

	viper.SetDefault("pwcgfcPath", ".")
	viper.SetDefault("cache.capacity", 128)
	viper.SetDefault("workers", 4)

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./snapshots")
	viper.SetDefault("storage.memory.compressOutput", false)
	viper.SetDefault("storage.sqlite.path", "./wingmate.db")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "wingmate")
}

// Load reads configuration from the JSON file in configDir and sets default
// values. Environment variables prefixed WINGMATE_ override file values
// (WINGMATE_CACHE_CAPACITY for cache.capacity). Defaults stay in effect
// when the file cannot be read.
func Load(configDir string) error {
	setDefaults()

	viper.SetEnvPrefix("wingmate")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetCacheCapacity returns the JSON payload cache size, never below 1.
func GetCacheCapacity() int {
	return max(viper.GetInt("cache.capacity"), 1)
}

// GetWorkers returns how many campaigns may be aggregated at once.
func GetWorkers() int {
	return max(viper.GetInt("workers"), 1)
}

// GetStorageConfig returns the snapshot storage configuration.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
		SQLite: SQLiteConfig{
			Path: viper.GetString("storage.sqlite.path"),
		},
	}
}

// GetOTelConfig returns the metrics configuration.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:     viper.GetBool("otel.enabled"),
		ServiceName: viper.GetString("otel.serviceName"),
	}
}
