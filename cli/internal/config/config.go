// Package config loads and saves CLI configuration.
package config

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem handle; swappable in tests.
var AppFs = afero.NewOsFs()

// Config holds the CLI configuration.
type Config struct {
	DatabasePath string
	TableName    string
}

// Load reads configuration from the config file, environment variables
// (SLUGSTORE_ prefix) and .env files, in that order of increasing priority.
func Load() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName(".slugstore")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "slugstore"))

	viper.SetEnvPrefix("SLUGSTORE")
	viper.AutomaticEnv()

	viper.SetDefault("database_path", "slugstore.db")
	viper.SetDefault("table_name", "records")

	// Missing config file is fine; defaults and env cover it.
	_ = viper.ReadInConfig()

	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	return &Config{
		DatabasePath: viper.GetString("database_path"),
		TableName:    viper.GetString("table_name"),
	}, nil
}

// Save writes the configuration to $HOME/.config/slugstore.
func Save(cfg *Config) error {
	viper.Set("database_path", cfg.DatabasePath)
	viper.Set("table_name", cfg.TableName)

	home, err := homedir.Dir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".config", "slugstore")
	if err := AppFs.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return viper.WriteConfigAs(filepath.Join(dir, ".slugstore.yaml"))
}
