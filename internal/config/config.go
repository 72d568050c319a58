// Package config loads lmsctl settings from LMS_* environment variables and an
// optional dotenv file.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/mind-engage/mindengage-classroom/internal/api"
	"github.com/mind-engage/mindengage-classroom/internal/validate"
)

// EnvPrefix is prepended to every setting's environment variable.
const EnvPrefix = "LMS"

// Storage drivers for the session record.
const (
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

type Config struct {
	APIBaseURL    string        `mapstructure:"api_base_url" json:"LMS_API_BASE_URL" validate:"url"`
	HTTPTimeout   time.Duration `mapstructure:"http_timeout" json:"LMS_HTTP_TIMEOUT" validate:"gt=0"`
	StorageDriver string        `mapstructure:"storage_driver" json:"LMS_STORAGE_DRIVER" validate:"oneof=file sqlite postgres"`
	StorageDSN    string        `mapstructure:"storage_dsn" json:"LMS_STORAGE_DSN"`
	StateDir      string        `mapstructure:"state_dir" json:"LMS_STATE_DIR" validate:"notblank"`
	ExportDir     string        `mapstructure:"export_dir" json:"LMS_EXPORT_DIR" validate:"notblank"`
	EnvFile       string        `mapstructure:"env_file" json:"LMS_ENV_FILE"`
}

// SQLiteDSN is the storage DSN to use with the sqlite driver.
func (c Config) SQLiteDSN() string {
	if c.StorageDSN != "" {
		return c.StorageDSN
	}
	return "file:" + filepath.Join(c.StateDir, "lmsctl.db") + "?mode=rwc&_pragma=busy_timeout(5000)"
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".lmsctl"
	}
	return filepath.Join(home, ".lmsctl")
}

// Load reads the dotenv file (LMS_ENV_FILE, else <state dir>/.env when it
// exists) without overriding variables already set, then decodes LMS_*.
func Load() (Config, error) {
	stateDir := envOr(EnvPrefix+"_STATE_DIR", defaultStateDir())
	envFile := os.Getenv(EnvPrefix + "_ENV_FILE")
	switch {
	case envFile != "":
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, errors.Wrapf(err, "config: load %s", envFile)
		}
	default:
		p := filepath.Join(stateDir, ".env")
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err != nil {
				return Config{}, errors.Wrapf(err, "config: load %s", p)
			}
			envFile = p
		} else if !os.IsNotExist(err) {
			return Config{}, errors.Wrapf(err, "config: stat %s", p)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetDefault("api_base_url", api.DefaultBaseURL)
	v.SetDefault("http_timeout", 30*time.Second)
	v.SetDefault("storage_driver", StorageFile)
	v.SetDefault("storage_dsn", "")
	v.SetDefault("state_dir", defaultStateDir())
	v.SetDefault("export_dir", ".")
	v.SetDefault("env_file", envFile)
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "config: decode")
	}
	if c.EnvFile == "" {
		c.EnvFile = envFile
	}
	if err := validate.Struct(c); err != nil {
		return Config{}, errors.Wrap(err, "config")
	}
	return c, nil
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
