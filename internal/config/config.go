package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/mainbong/file_manager/internal/filesystem"
)

// StartDirEnv overrides the configured start directory.
const StartDirEnv = "FILE_MANAGER_START_DIR"

// Config holds the application configuration
type Config struct {
	StartDir       string `json:"start_dir" yaml:"start_dir" toml:"start_dir"`
	LogDir         string `json:"log_dir" yaml:"log_dir" toml:"log_dir"`
	LogLevel       string `json:"log_level" yaml:"log_level" toml:"log_level"` // "debug", "info", "warn", "error"
	JournalDir     string `json:"journal_dir" yaml:"journal_dir" toml:"journal_dir"`
	JournalEnabled bool   `json:"journal_enabled" yaml:"journal_enabled" toml:"journal_enabled"`
	ShowHidden     bool   `json:"show_hidden" yaml:"show_hidden" toml:"show_hidden"`
	Color          bool   `json:"color" yaml:"color" toml:"color"`

	// fileStartDir is start_dir as read from disk. While StartDir still holds
	// the value LoadWithFS resolved, saving writes fileStartDir back instead.
	fileStartDir     string
	resolvedStartDir string
}

var (
	configDir = filepath.Join(homeDir(), ".file-manager")
	defaultFS = filesystem.NewOSFileSystem()

	// candidates are probed in order; the first existing file wins.
	candidates = []string{"config.json", "config.yaml", "config.yml", "config.toml"}
)

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.Getenv("HOME")
}

// Load loads the configuration from file or creates a default one
func Load() (*Config, error) {
	return LoadWithFS(defaultFS, configDir, FindConfigFile(defaultFS, configDir))
}

// FindConfigFile returns the first config file present in dir, or the
// default config.json path when none exists yet.
func FindConfigFile(fs filesystem.FileSystem, dir string) string {
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if _, err := fs.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(dir, candidates[0])
}

// LoadWithFS loads the configuration using a custom FileSystem (for testing)
func LoadWithFS(fs filesystem.FileSystem, dir, file string) (*Config, error) {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := Default(dir)

	if _, err := fs.Stat(file); err == nil {
		data, err := fs.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := decode(file, data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else {
		if err := cfg.SaveWithFS(fs, file); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	if _, ok := validLevels[strings.ToLower(cfg.LogLevel)]; !ok {
		cfg.LogLevel = "info"
	}

	if err := cfg.ensureDir(fs, file, "log_dir", &cfg.LogDir, filepath.Join(dir, "logs")); err != nil {
		return nil, err
	}
	if cfg.JournalEnabled {
		if err := cfg.ensureDir(fs, file, "journal_dir", &cfg.JournalDir, filepath.Join(dir, "journal")); err != nil {
			return nil, err
		}
	}

	// Environment wins over the file but is never persisted.
	cfg.fileStartDir = cfg.StartDir
	if envDir := strings.TrimSpace(os.Getenv(StartDirEnv)); envDir != "" {
		cfg.StartDir = envDir
	}

	if strings.TrimSpace(cfg.StartDir) == "" {
		cfg.StartDir = defaultStartDir()
	}
	if err := cfg.ResolveStartDir(); err != nil {
		return nil, err
	}
	cfg.resolvedStartDir = cfg.StartDir

	return cfg, nil
}

// Default returns the built-in configuration rooted at dir.
func Default(dir string) *Config {
	return &Config{
		LogDir:         filepath.Join(dir, "logs"),
		LogLevel:       "info",
		JournalDir:     filepath.Join(dir, "journal"),
		JournalEnabled: true,
		ShowHidden:     false,
		Color:          true,
	}
}

func defaultStartDir() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return string(filepath.Separator)
}

// ResolveStartDir makes StartDir absolute against the process working
// directory.
func (c *Config) ResolveStartDir() error {
	abs, err := filepath.Abs(c.StartDir)
	if err != nil {
		return fmt.Errorf("failed to resolve start_dir %q: %w", c.StartDir, err)
	}
	c.StartDir = abs
	return nil
}

// Save saves the configuration to file
func (c *Config) Save() error {
	return c.SaveWithFS(defaultFS, FindConfigFile(defaultFS, configDir))
}

// SaveWithFS saves the configuration using a custom FileSystem (for testing)
func (c *Config) SaveWithFS(fs filesystem.FileSystem, file string) error {
	data, err := encode(file, c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(file)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := fs.WriteFile(file, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	return configDir
}

// GetConfigFile returns the configuration file path
func GetConfigFile() string {
	return FindConfigFile(defaultFS, configDir)
}

// Format determines the config encoding based on extension
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return "json"
	}
}

func decode(file string, data []byte, cfg *Config) error {
	switch Format(file) {
	case "yaml":
		return yaml.Unmarshal(data, cfg)
	case "toml":
		return toml.Unmarshal(data, cfg)
	default:
		return json.Unmarshal(data, cfg)
	}
}

func encode(file string, cfg *Config) ([]byte, error) {
	if cfg.resolvedStartDir != "" && cfg.StartDir == cfg.resolvedStartDir {
		persisted := *cfg
		persisted.StartDir = cfg.fileStartDir
		cfg = &persisted
	}

	switch Format(file) {
	case "yaml":
		return yaml.Marshal(cfg)
	case "toml":
		return toml.Marshal(cfg)
	default:
		return json.MarshalIndent(cfg, "", "  ")
	}
}

func (c *Config) ensureDir(fs filesystem.FileSystem, file, key string, value *string, fallback string) error {
	if strings.TrimSpace(*value) == "" {
		*value = fallback
		if err := c.SaveWithFS(fs, file); err != nil {
			return fmt.Errorf("failed to save default %s: %w", key, err)
		}
	}

	if err := fs.MkdirAll(*value, 0755); err != nil {
		*value = fallback
		if err := fs.MkdirAll(*value, 0755); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", key, err)
		}
		if err := c.SaveWithFS(fs, file); err != nil {
			return fmt.Errorf("failed to save fallback %s: %w", key, err)
		}
	}

	return nil
}

var validLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Keys lists the settable configuration keys in display order.
func Keys() []string {
	return []string{"start_dir", "log_dir", "log_level", "journal_dir", "journal_enabled", "show_hidden", "color"}
}

// Get returns the string form of a config value.
func (c *Config) Get(key string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "start_dir":
		return c.StartDir, nil
	case "log_dir":
		return c.LogDir, nil
	case "log_level":
		return c.LogLevel, nil
	case "journal_dir":
		return c.JournalDir, nil
	case "journal_enabled":
		return strconv.FormatBool(c.JournalEnabled), nil
	case "show_hidden":
		return strconv.FormatBool(c.ShowHidden), nil
	case "color":
		return strconv.FormatBool(c.Color), nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

// Set updates a config value by key.
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "start_dir":
		if !filepath.IsAbs(value) {
			return fmt.Errorf("invalid start_dir: %s (must be absolute)", value)
		}
		c.StartDir = filepath.Clean(value)
		c.fileStartDir = c.StartDir
		c.resolvedStartDir = c.StartDir
	case "log_dir":
		c.LogDir = value
	case "log_level":
		level := strings.ToLower(value)
		if _, ok := validLevels[level]; !ok {
			return fmt.Errorf("invalid log_level: %s", value)
		}
		c.LogLevel = level
	case "journal_dir":
		c.JournalDir = value
	case "journal_enabled", "show_hidden", "color":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %s", key, value)
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "journal_enabled":
			c.JournalEnabled = parsed
		case "show_hidden":
			c.ShowHidden = parsed
		default:
			c.Color = parsed
		}
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	return nil
}
