package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	DB           DBConfig           `yaml:"db"`
	Log          LogConfig          `yaml:"log"`
	Presentation PresentationConfig `yaml:"presentation"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// DBConfig holds database settings.
type DBConfig struct {
	Path string `yaml:"path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Server   LogSettings `yaml:"server"`
	Requests LogSettings `yaml:"requests"`
}

// LogSettings holds settings for a specific logger.
type LogSettings struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// PresentationConfig holds presentation engine settings.
type PresentationConfig struct {
	// ChorusExpansion interleaves the current chorus after each verse of
	// labeled songs. Disabled, slides present in stored order.
	ChorusExpansion bool `yaml:"chorus_expansion"`
	// DefaultTranslation is used when a bible command omits one.
	DefaultTranslation string `yaml:"default_translation"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	dataDir := filepath.Join(xdg.DataHome, "doxa")
	stateDir := filepath.Join(xdg.StateHome, "doxa")

	return &Config{
		Server: ServerConfig{
			Address: "localhost:1820",
		},
		DB: DBConfig{
			Path: filepath.Join(dataDir, "doxa.db"),
		},
		Log: LogConfig{
			Server: LogSettings{
				Path:  filepath.Join(stateDir, "logs", "server.log"),
				Level: "INFO",
			},
			Requests: LogSettings{
				Path:  filepath.Join(stateDir, "logs", "requests.log"),
				Level: "INFO",
			},
		},
		Presentation: PresentationConfig{
			ChorusExpansion:    true,
			DefaultTranslation: "VDC",
		},
	}
}

// Load loads the configuration from the given path.
// If the file does not exist, it creates it with default values.
// If the file exists, it merges defaults with existing values but does NOT
// save back to disk (to preserve user formatting and comments).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		applyEnv(cfg)
		return cfg, nil
	}

	if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}
	return cfg, nil
}

// applyEnv fills gaps from the environment (populated via .env in main).
func applyEnv(cfg *Config) {
	if addr := os.Getenv("DOXA_ADDRESS"); addr != "" {
		cfg.Server.Address = addr
	}
	if dbPath := os.Getenv("DOXA_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Doxa Configuration
# ------------------
# server.address is the bind address controllers and displays connect to.
# Keep it on a LAN-reachable interface if remotes run on other devices.

`)
	data = append(header, data...)

	return os.WriteFile(path, data, 0o644)
}

// GenerateDefault writes a fresh default config to the path, overwriting
// any existing file.
func GenerateDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return Save(path, DefaultConfig())
}
