package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config exposes the application settings read from config.yaml and
// the TRANSFERDESK_* environment.
type Config struct {
	Storage StorageConfig
	Logger  LoggerConfig
}

type StorageConfig struct {
	v *viper.Viper
}

// Driver selects the storage backend: "json" or "bolt".
func (c StorageConfig) Driver() string {
	return c.v.GetString("storage.driver")
}

// Dir is the document directory for the json driver.
func (c StorageConfig) Dir() string {
	return c.v.GetString("storage.dir")
}

// BoltPath is the database file for the bolt driver.
func (c StorageConfig) BoltPath() string {
	return c.v.GetString("storage.bolt_path")
}

type LoggerConfig struct {
	v *viper.Viper
}

func (c LoggerConfig) Debug() bool {
	return c.v.GetBool("logger.debug")
}

func (c LoggerConfig) LogToFile() bool {
	return c.v.GetBool("logger.log_to_file")
}

func (c LoggerConfig) LogsDir() string {
	return c.v.GetString("logger.logs_dir")
}

// NewConfig loads config.yaml from the working directory, with
// environment variables taking precedence. A missing file is fine; the
// defaults stand on their own.
func NewConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TRANSFERDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage.driver", "json")
	v.SetDefault("storage.dir", "data")
	v.SetDefault("storage.bolt_path", "data/transferdesk.db")
	v.SetDefault("logger.debug", false)
	v.SetDefault("logger.log_to_file", false)
	v.SetDefault("logger.logs_dir", "logs")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	switch driver := v.GetString("storage.driver"); driver {
	case "json", "bolt":
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}

	return &Config{
		Storage: StorageConfig{v: v},
		Logger:  LoggerConfig{v: v},
	}, nil
}
