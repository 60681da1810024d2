package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arkmod-labs/arkmod/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Well-known configuration keys.
const (
	KeyManifestPath   = "manifest.path"
	KeyMatchMode      = "match.mode"
	KeyBackupEnabled  = "backup.enabled"
	KeyBackupKeep     = "backup.keep"
	KeyReceiptEnabled = "receipt.enabled"
)

// Dir returns the path to the ArkMod config directory (~/.arkmod/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.arkmod/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// BackupDir returns the directory that holds rotated pre-write backups.
func BackupDir() string {
	return filepath.Join(Dir(), "backups")
}

// ReceiptDir returns the directory that holds per-run JSON receipts.
func ReceiptDir() string {
	return filepath.Join(Dir(), "receipts")
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyManifestPath, "modifications.yaml")
	viper.SetDefault(KeyMatchMode, "strict")
	viper.SetDefault(KeyBackupEnabled, true)
	viper.SetDefault(KeyBackupKeep, 5)
	viper.SetDefault(KeyReceiptEnabled, true)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// GetBool returns a boolean config value by key.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetInt returns an integer config value by key.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
