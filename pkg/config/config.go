package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultFileName is looked up in the working directory when no
	// configuration path is given on the command line
	DefaultFileName = ".pre-commit-checkstyle.yaml"

	// DefaultToolPath is the checkstyle script relative to the repository root
	DefaultToolPath = "tools/uncrustify/scripts/checkstyle.py"

	// ToolEnvVar overrides the configured checkstyle tool path
	ToolEnvVar = "CHECKSTYLE_TOOL"

	logFileName = "pre-commit-checkstyle.log"
)

// Config represents the application configuration
type Config struct {
	Extensions []string         `yaml:"extensions"`
	Checkstyle CheckstyleConfig `yaml:"checkstyle"`
	Hook       HookConfig       `yaml:"hook"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LogConfig        `yaml:"logging"`
}

// CheckstyleConfig contains settings for the external style checker
type CheckstyleConfig struct {
	Tool string `yaml:"tool"`
}

// HookConfig contains settings for the hook run itself
type HookConfig struct {
	Timeout int `yaml:"timeout"` // in seconds, 0 disables the timeout
}

// OutputConfig contains settings for terminal output
type OutputConfig struct {
	Color *bool `yaml:"color"` // nil means detect from the terminal
}

// LogConfig contains settings for logging
type LogConfig struct {
	LogToFile   *bool  `yaml:"log_to_file"`
	LogFilePath string `yaml:"log_file_path"`
	MaxSize     int    `yaml:"max_size"`    // maximum size in megabytes
	MaxBackups  int    `yaml:"max_backups"` // maximum number of old log files to retain
	MaxAge      int    `yaml:"max_age"`     // maximum number of days to retain old log files
	Compress    *bool  `yaml:"compress"`    // compress determines if the rotated log files should be compressed
}

// FileEnabled reports whether logs are written to LogFilePath
func (l LogConfig) FileEnabled() bool {
	return l.LogToFile != nil && *l.LogToFile
}

// CompressEnabled reports whether rotated log files are compressed
func (l LogConfig) CompressEnabled() bool {
	return l.Compress != nil && *l.Compress
}

// DefaultLogFilePath returns the log file location used when none is
// configured. It lives in the user cache directory so that the hook never
// writes into the work tree it runs in.
func DefaultLogFilePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "pre-commit-checkstyle", logFileName)
}

// LoadDefault returns a configuration with default values
func LoadDefault() *Config {
	logToFile := false
	compress := true
	return &Config{
		Extensions: []string{".c", ".h"},
		Checkstyle: CheckstyleConfig{
			Tool: DefaultToolPath,
		},
		Hook: HookConfig{
			Timeout: 0,
		},
		Logging: LogConfig{
			LogToFile:   &logToFile,
			LogFilePath: DefaultLogFilePath(),
			MaxSize:     10,
			MaxBackups:  3,
			MaxAge:      28,
			Compress:    &compress,
		},
	}
}

// Default returns a configuration with default values with environment
// overrides applied
func Default() *Config {
	cfg := LoadDefault()
	applyEnv(cfg)
	return cfg
}

// Load reads configuration from a file and merges it with default values
func Load(configPath string) (*Config, error) {
	cfg := LoadDefault()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if len(fileCfg.Extensions) > 0 {
		cfg.Extensions = fileCfg.Extensions
	}

	if fileCfg.Checkstyle.Tool != "" {
		cfg.Checkstyle.Tool = fileCfg.Checkstyle.Tool
	}

	if fileCfg.Hook.Timeout < 0 {
		return nil, fmt.Errorf("invalid hook timeout %d: must not be negative", fileCfg.Hook.Timeout)
	}
	if fileCfg.Hook.Timeout > 0 {
		cfg.Hook.Timeout = fileCfg.Hook.Timeout
	}

	if fileCfg.Output.Color != nil {
		cfg.Output.Color = fileCfg.Output.Color
	}

	// Merge logging configuration
	if fileCfg.Logging.LogToFile != nil {
		cfg.Logging.LogToFile = fileCfg.Logging.LogToFile
	}
	if fileCfg.Logging.LogFilePath != "" {
		cfg.Logging.LogFilePath = fileCfg.Logging.LogFilePath
	}
	if fileCfg.Logging.MaxSize > 0 {
		cfg.Logging.MaxSize = fileCfg.Logging.MaxSize
	}
	if fileCfg.Logging.MaxBackups > 0 {
		cfg.Logging.MaxBackups = fileCfg.Logging.MaxBackups
	}
	if fileCfg.Logging.MaxAge > 0 {
		cfg.Logging.MaxAge = fileCfg.Logging.MaxAge
	}
	if fileCfg.Logging.Compress != nil {
		cfg.Logging.Compress = fileCfg.Logging.Compress
	}

	applyEnv(cfg)

	return cfg, nil
}

// LoadOrDefault attempts to load configuration from a file
// If the file doesn't exist or can't be parsed, it returns default configuration
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", configPath, err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg = Default()
	}
	return cfg
}

// Resolve picks the configuration for a run. An explicit path wins,
// then DefaultFileName in the working directory, then the defaults.
func Resolve(configPath string) *Config {
	if configPath != "" {
		return LoadOrDefault(configPath)
	}
	if _, err := os.Stat(DefaultFileName); err == nil {
		return LoadOrDefault(DefaultFileName)
	}
	return Default()
}

// Timeout returns the hook timeout as a duration, zero when disabled
func (c *Config) Timeout() time.Duration {
	if c.Hook.Timeout <= 0 {
		return 0
	}
	return time.Duration(c.Hook.Timeout) * time.Second
}

// ColorEnabled resolves the color setting, using detected when the
// configuration leaves it open
func (c *Config) ColorEnabled(detected bool) bool {
	if c.Output.Color == nil {
		return detected
	}
	return *c.Output.Color
}

func applyEnv(cfg *Config) {
	if tool := os.Getenv(ToolEnvVar); tool != "" {
		cfg.Checkstyle.Tool = tool
	}
}
