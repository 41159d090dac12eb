package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultDBFileName = ".minder.db"
	DefaultLogLevel   = "warn"

	configFileName = ".minder.toml"

	configDirEnvKey          = "MINDER_CONFIG_DIR"
	trustProjectConfigEnvKey = "MINDER_TRUST_PROJECT_CONFIG"
	dbEnvKey                 = "MINDER_DB"
	authorEnvKey             = "MINDER_AUTHOR"
	logLevelEnvKey           = "MINDER_LOG_LEVEL"
)

// Config defines runtime configuration for minder.
type Config struct {
	DBPath   string `toml:"db_path"`
	LogLevel string `toml:"log_level"`
	Author   string `toml:"author"`

	TrustedProjectConfigPath string `toml:"-"`
}

// Default returns default configuration values. The database path defaults
// to a file in the working directory, resolved at load time.
func Default() Config {
	return Config{
		DBPath:   "",
		LogLevel: DefaultLogLevel,
		Author:   "",
	}
}

var allowedKeys = []string{
	"db_path",
	"log_level",
	"author",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "db_path":
		return c.DBPath, nil
	case "log_level":
		return c.LogLevel, nil
	case "author":
		return c.Author, nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

func loadFile(path string, cfg *Config) error {
	_, err := loadFileIfExists(path, cfg)
	return err
}

func loadFileIfExists(path string, cfg *Config) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return false, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return true, nil
}

func overrideConfigPath() (string, bool) {
	dir := strings.TrimSpace(os.Getenv(configDirEnvKey))
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, configFileName), true
}

func trustProjectConfig() bool {
	raw := strings.TrimSpace(os.Getenv(trustProjectConfigEnvKey))
	switch strings.ToLower(raw) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// GlobalPath returns the path to the global config file.
func GlobalPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// ProjectPath returns the path to the working-directory config file.
func ProjectPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, configFileName), nil
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}
	data[key] = strings.TrimSpace(value)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

// Load reads config from trusted files and applies env overrides. The
// global file always loads; the working-directory file only loads when the
// user opts in, since repositories are untrusted input.
func Load() (*Config, error) {
	cfg := Default()

	if overridePath, ok := overrideConfigPath(); ok {
		if err := loadFile(overridePath, &cfg); err != nil {
			return nil, err
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			if err := loadFile(filepath.Join(home, configFileName), &cfg); err != nil {
				return nil, err
			}
		}

		if trustProjectConfig() {
			if cwd, err := os.Getwd(); err == nil {
				projectPath := filepath.Join(cwd, configFileName)
				loaded, err := loadFileIfExists(projectPath, &cfg)
				if err != nil {
					return nil, err
				}
				if loaded {
					cfg.TrustedProjectConfigPath = projectPath
				}
			}
		}
	}

	if dbPath := os.Getenv(dbEnvKey); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if author := os.Getenv(authorEnvKey); author != "" {
		cfg.Author = author
	}
	if level := os.Getenv(logLevelEnvKey); level != "" {
		cfg.LogLevel = level
	}

	if cfg.DBPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfg.DBPath = filepath.Join(cwd, DefaultDBFileName)
		}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	return &cfg, nil
}
