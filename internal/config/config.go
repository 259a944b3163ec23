package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

const (
	AppDirName            = "daypad"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "daypad.db"
	DefaultEnvFile        = ".env"
)

type LogConfig struct {
	Path  string `toml:"path"`
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

type Config struct {
	DBPath               string    `toml:"db_path" validate:"required"`
	Driver               string    `toml:"driver" validate:"oneof=sqlite3 sqlite"`
	DefaultView          string    `toml:"default_view" validate:"oneof=today notes timer"`
	TimerPresets         []int     `toml:"timer_presets" validate:"min=1,dive,min=1,max=180"`
	DefaultTimer         int       `toml:"default_timer" validate:"min=1,max=180"`
	TickBuffer           int       `toml:"tick_buffer" validate:"min=1,max=1024"`
	DesktopNotifications bool      `toml:"desktop_notifications"`
	Log                  LogConfig `toml:"log"`
}

// Options names the files Load reads. Empty fields select the defaults; a
// missing file is not an error.
type Options struct {
	ConfigPath string
	EnvFile    string
}

func Default() Config {
	return Config{
		DBPath:               filepath.Join(DefaultDir(), DefaultDBName),
		Driver:               "sqlite3",
		DefaultView:          "today",
		TimerPresets:         []int{25, 15, 5},
		DefaultTimer:         25,
		TickBuffer:           8,
		DesktopNotifications: false,
		Log:                  LogConfig{Level: "info"},
	}
}

// DefaultDir is the per-user directory holding the config file and database.
func DefaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return "." + AppDirName
	}
	return filepath.Join(base, AppDirName)
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultDir(), DefaultConfigFileName)
}

// Load layers defaults, the TOML file, the .env file and DAYPAD_* variables,
// in that order, and validates the result. Real environment variables take
// precedence over entries in the .env file.
func Load(opts Options) (Config, error) {
	cfg := Default()

	path := strings.TrimSpace(opts.ConfigPath)
	if path == "" {
		path = DefaultConfigPath()
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	envFile := strings.TrimSpace(opts.EnvFile)
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("read %s: %w", envFile, err)
	}

	cfg = FromEnv(cfg, func(name string) string {
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return dotenv[name]
	})
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// FromEnv applies DAYPAD_* overrides read through getenv. Values that do not
// parse are ignored.
func FromEnv(base Config, getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := base
	if v, ok := getEnvString(getenv, "DAYPAD_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString(getenv, "DAYPAD_DRIVER"); ok {
		cfg.Driver = strings.ToLower(v)
	}
	if v, ok := getEnvString(getenv, "DAYPAD_DEFAULT_VIEW"); ok {
		cfg.DefaultView = strings.ToLower(v)
	}
	if v, ok := getEnvInt(getenv, "DAYPAD_DEFAULT_TIMER"); ok && v > 0 {
		cfg.DefaultTimer = v
	}
	if v, ok := getEnvInt(getenv, "DAYPAD_TICK_BUFFER"); ok && v > 0 {
		cfg.TickBuffer = v
	}
	if v, ok := getEnvBool(getenv, "DAYPAD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvString(getenv, "DAYPAD_LOG_PATH"); ok {
		cfg.Log.Path = v
	}
	if v, ok := getEnvString(getenv, "DAYPAD_LOG_LEVEL"); ok {
		cfg.Log.Level = strings.ToLower(v)
	}
	return cfg
}

var validate = validator.New()

func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for _, p := range cfg.TimerPresets {
		if p == cfg.DefaultTimer {
			return nil
		}
	}
	return fmt.Errorf("%w: default_timer %d is not one of timer_presets %v", ErrInvalidConfig, cfg.DefaultTimer, cfg.TimerPresets)
}

func getEnvString(getenv func(string) string, name string) (string, bool) {
	raw := strings.TrimSpace(getenv(name))
	return raw, raw != ""
}

func getEnvInt(getenv func(string) string, name string) (int, bool) {
	raw := strings.TrimSpace(getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(getenv func(string) string, name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
