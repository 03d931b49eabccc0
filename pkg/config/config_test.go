package config

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv(ToolEnvVar, "")
	tempDir := t.TempDir()

	// Test case 1: Valid configuration file
	validConfigPath := filepath.Join(tempDir, "valid-config.yaml")
	validConfigContent := `
extensions:
  - .c
  - .h
  - .inc
checkstyle:
  tool: scripts/checkstyle.sh
hook:
  timeout: 30
output:
  color: false
logging:
  log_to_file: true
  log_file_path: /tmp/hook.log
`
	if err := os.WriteFile(validConfigPath, []byte(validConfigContent), 0644); err != nil {
		t.Fatalf("Failed to write valid config file: %v", err)
	}

	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf("Failed to load valid config: %v", err)
	}

	expectedExtensions := []string{".c", ".h", ".inc"}
	if !reflect.DeepEqual(cfg.Extensions, expectedExtensions) {
		t.Errorf("Expected extensions %v, got %v", expectedExtensions, cfg.Extensions)
	}
	if cfg.Checkstyle.Tool != "scripts/checkstyle.sh" {
		t.Errorf("Expected tool 'scripts/checkstyle.sh', got '%s'", cfg.Checkstyle.Tool)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Expected timeout 30s, got %v", cfg.Timeout())
	}
	if cfg.ColorEnabled(true) {
		t.Error("Expected color to be disabled")
	}
	if !cfg.Logging.FileEnabled() || cfg.Logging.LogFilePath != "/tmp/hook.log" {
		t.Errorf("Expected file logging to /tmp/hook.log, got %+v", cfg.Logging)
	}
	// Untouched logging values keep their defaults
	if cfg.Logging.MaxSize != 10 {
		t.Errorf("Expected default max size 10, got %d", cfg.Logging.MaxSize)
	}

	// Test case 2: Default values when settings are omitted
	minimalConfigPath := filepath.Join(tempDir, "minimal-config.yaml")
	minimalConfigContent := `
hook:
  timeout: 5
`
	if err := os.WriteFile(minimalConfigPath, []byte(minimalConfigContent), 0644); err != nil {
		t.Fatalf("Failed to write minimal config file: %v", err)
	}

	minimalCfg, err := Load(minimalConfigPath)
	if err != nil {
		t.Fatalf("Failed to load minimal config: %v", err)
	}
	if !reflect.DeepEqual(minimalCfg.Extensions, []string{".c", ".h"}) {
		t.Errorf("Expected default extensions, got %v", minimalCfg.Extensions)
	}
	if minimalCfg.Checkstyle.Tool != DefaultToolPath {
		t.Errorf("Expected default tool %s, got %s", DefaultToolPath, minimalCfg.Checkstyle.Tool)
	}
	if !minimalCfg.ColorEnabled(true) || minimalCfg.ColorEnabled(false) {
		t.Error("Expected color to follow terminal detection when unset")
	}

	// Test case 3: Invalid configuration file
	invalidConfigPath := filepath.Join(tempDir, "invalid-config.yaml")
	invalidConfigContent := `
extensions:
  - .c
  -
invalid yaml format
`
	if err := os.WriteFile(invalidConfigPath, []byte(invalidConfigContent), 0644); err != nil {
		t.Fatalf("Failed to write invalid config file: %v", err)
	}
	if _, err := Load(invalidConfigPath); err == nil {
		t.Errorf("Expected error when loading invalid config, got nil")
	}

	// Test case 4: Non-existent file
	if _, err := Load(filepath.Join(tempDir, "non-existent.yaml")); err == nil {
		t.Errorf("Expected error when loading non-existent file, got nil")
	}

	// Test case 5: Negative timeout
	negativePath := filepath.Join(tempDir, "negative.yaml")
	if err := os.WriteFile(negativePath, []byte("hook:\n  timeout: -1\n"), 0644); err != nil {
		t.Fatalf("Failed to write negative config file: %v", err)
	}
	if _, err := Load(negativePath); err == nil {
		t.Errorf("Expected error for negative timeout, got nil")
	}
}

func TestLoadDefaultConfig(t *testing.T) {
	cfg := LoadDefault()

	if !reflect.DeepEqual(cfg.Extensions, []string{".c", ".h"}) {
		t.Errorf("Expected default extensions [.c .h], got %v", cfg.Extensions)
	}
	if cfg.Checkstyle.Tool != DefaultToolPath {
		t.Errorf("Expected default tool %s, got %s", DefaultToolPath, cfg.Checkstyle.Tool)
	}
	if cfg.Timeout() != 0 {
		t.Errorf("Expected no timeout by default, got %v", cfg.Timeout())
	}
	if cfg.Logging.FileEnabled() {
		t.Error("Expected file logging to be disabled by default")
	}
	if !cfg.Logging.CompressEnabled() {
		t.Error("Expected rotated logs to be compressed by default")
	}
	if !filepath.IsAbs(cfg.Logging.LogFilePath) {
		t.Errorf("Expected an absolute default log path, got %s", cfg.Logging.LogFilePath)
	}
	if cfg.Logging.LogFilePath != DefaultLogFilePath() {
		t.Errorf("Expected %s, got %s", DefaultLogFilePath(), cfg.Logging.LogFilePath)
	}
}

func TestLoadConfigFalseBooleans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	content := "logging:\n  log_to_file: false\n  compress: false\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Logging.CompressEnabled() {
		t.Error("Expected compress: false to override the default")
	}
	if cfg.Logging.FileEnabled() {
		t.Error("Expected file logging to stay disabled")
	}
}

func TestDefaultLogFilePathOutsideWorkTree(t *testing.T) {
	cacheDir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheDir)
	t.Setenv("HOME", cacheDir)

	expected := filepath.Join(cacheDir, "pre-commit-checkstyle", "pre-commit-checkstyle.log")
	if runtime.GOOS == "linux" {
		if got := DefaultLogFilePath(); got != expected {
			t.Errorf("Expected %s, got %s", expected, got)
		}
	}
	if !filepath.IsAbs(DefaultLogFilePath()) {
		t.Errorf("Expected an absolute path, got %s", DefaultLogFilePath())
	}
}

func TestToolEnvOverride(t *testing.T) {
	t.Setenv(ToolEnvVar, "/opt/bin/checkstyle")

	if got := Default().Checkstyle.Tool; got != "/opt/bin/checkstyle" {
		t.Errorf("Expected env override for Default, got %s", got)
	}

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("checkstyle:\n  tool: from/file\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Checkstyle.Tool != "/opt/bin/checkstyle" {
		t.Errorf("Expected env to win over file, got %s", cfg.Checkstyle.Tool)
	}

	if got := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml")).Checkstyle.Tool; got != "/opt/bin/checkstyle" {
		t.Errorf("Expected env override on fallback, got %s", got)
	}
}

func TestResolve(t *testing.T) {
	t.Setenv(ToolEnvVar, "")

	dir := t.TempDir()
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	defer os.Chdir(originalDir)
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	if got := Resolve("").Checkstyle.Tool; got != DefaultToolPath {
		t.Errorf("Expected defaults without a config file, got %s", got)
	}

	if err := os.WriteFile(DefaultFileName, []byte("checkstyle:\n  tool: local/tool\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if got := Resolve("").Checkstyle.Tool; got != "local/tool" {
		t.Errorf("Expected working directory config to be picked up, got %s", got)
	}

	explicit := filepath.Join(dir, "explicit.yaml")
	if err := os.WriteFile(explicit, []byte("checkstyle:\n  tool: explicit/tool\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if got := Resolve(explicit).Checkstyle.Tool; got != "explicit/tool" {
		t.Errorf("Expected explicit config to win, got %s", got)
	}
}
