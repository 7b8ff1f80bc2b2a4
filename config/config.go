package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lunagic/quill/database"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const envPrefix = "QUILL"

type Config struct {
	Driver       string `mapstructure:"driver"`
	DatabaseName string `mapstructure:"database_name"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	SSLMode      string `mapstructure:"sslmode"`
	LogLevel     string `mapstructure:"log_level"`
}

func NewConfig() Config {
	return Config{
		Driver:       "sqlite3",
		DatabaseName: "database.sqlite",
		Host:         "127.0.0.1",
		LogLevel:     "info",
	}
}

// Load reads quill.yaml, .env and .env.local from dir and then the QUILL_*
// environment. Later sources win.
func Load(fileSystem afero.Fs, dir string) (Config, error) {
	v := viper.New()
	v.SetFs(fileSystem)

	defaults := NewConfig()
	v.SetDefault("driver", defaults.Driver)
	v.SetDefault("database_name", defaults.DatabaseName)
	v.SetDefault("host", defaults.Host)
	v.SetDefault("port", defaults.Port)
	v.SetDefault("username", defaults.Username)
	v.SetDefault("password", defaults.Password)
	v.SetDefault("sslmode", defaults.SSLMode)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetConfigName("quill")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return Config{}, err
		}
	}

	for _, name := range []string{".env", ".env.local"} {
		values, err := readDotEnv(fileSystem, filepath.Join(dir, name))
		if err != nil {
			return Config{}, err
		}

		for key, value := range values {
			if _, found := os.LookupEnv(key); found {
				continue
			}

			if !strings.HasPrefix(key, envPrefix+"_") {
				continue
			}

			v.Set(strings.ToLower(strings.TrimPrefix(key, envPrefix+"_")), value)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	config := Config{}
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, err
	}

	return config, nil
}

func readDotEnv(fileSystem afero.Fs, path string) (map[string]string, error) {
	raw, err := afero.ReadFile(fileSystem, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}

		return nil, err
	}

	values, err := godotenv.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return values, nil
}

// Credentials only carries the settings that hold a value, so a driver
// missing one of its required keys is reported as bad credentials.
func (config Config) Credentials() database.Credentials {
	credentials := database.Credentials{}
	for key, value := range map[string]string{
		database.KeyDriver:       config.Driver,
		database.KeyDatabaseName: config.DatabaseName,
		database.KeyHost:         config.Host,
		database.KeyUsername:     config.Username,
		database.KeyPassword:     config.Password,
		database.KeySSLMode:      config.SSLMode,
	} {
		if value != "" {
			credentials[key] = value
		}
	}

	if config.Port != 0 {
		credentials[database.KeyPort] = strconv.Itoa(config.Port)
	}

	return credentials
}

func (config Config) Connection(configFuncs ...database.ConnectionConfigFunc) (*database.Connection, error) {
	return database.NewConnection(config.Credentials(), configFuncs...)
}

func (config Config) Logger() *slog.Logger {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(config.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
