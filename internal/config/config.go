// Package config provides hierarchical configuration management for verlog using koanf.
// Configuration is loaded with priority: environment variables > project config (.verlog/config.yml)
// > user config (~/.config/verlog/config.yml) > defaults. Config files may be YAML or JSON,
// chosen by file extension.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "VERLOG_"

// Configuration represents the verlog configuration
type Configuration struct {
	// Source is the root the changelog data is read from: an http(s) base URL
	// or a local directory.
	Source string `koanf:"source" yaml:"source" validate:"required"`

	// IndexFile is the manifest path relative to Source.
	IndexFile string `koanf:"index_file" yaml:"index_file" validate:"required"`
	// VersionsDir is the directory of version files relative to Source.
	VersionsDir string `koanf:"versions_dir" yaml:"versions_dir" validate:"required"`

	// ContainerID is the id of the host page element version blocks go into.
	ContainerID string `koanf:"container_id" yaml:"container_id" validate:"required,elementid"`
	// Page is the host page file. Empty uses the built-in page.
	Page string `koanf:"page" yaml:"page"`
	// Output is where render writes the page. Empty means stdout.
	Output string `koanf:"output" yaml:"output"`
	// RawHTML inserts fetched text without escaping. Only for trusted data.
	RawHTML bool `koanf:"raw_html" yaml:"raw_html"`

	MaxParallel int `koanf:"max_parallel" yaml:"max_parallel" validate:"min=0,max=256"`
	// Timeout is the per-request timeout in seconds for http sources.
	Timeout int `koanf:"timeout" yaml:"timeout" validate:"min=0"`

	ListenAddr string `koanf:"listen_addr" yaml:"listen_addr" validate:"required"`

	LogLevel  string `koanf:"log_level" yaml:"log_level" validate:"oneof=debug info warn warning error"`
	LogFormat string `koanf:"log_format" yaml:"log_format" validate:"oneof=text json"`
}

// TimeoutDuration returns Timeout as a duration. Zero means no timeout.
func (c *Configuration) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .verlog/config.yml)
	ProjectConfigPath string
	// SkipUserConfig ignores the user-level config file
	SkipUserConfig bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k, opts.ProjectConfigPath)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level config if it exists.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	if err := loadConfigFile(k, path, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the project-level config. An explicitly given path
// must exist; the default path is optional.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	path := ProjectConfigPath()
	if customPath != "" {
		path = customPath
		if !fileExists(path) {
			return &ValidationError{FilePath: path, Message: "config file not found"}
		}
	}

	if !fileExists(path) {
		return nil
	}
	if err := loadConfigFile(k, path, "project"); err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	return nil
}

// loadConfigFile validates and loads a config file, picking the parser by extension
func loadConfigFile(k *koanf.Koanf, path, configType string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf, filePath string) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if filePath == "" {
		filePath = "config"
	}
	if err := ValidateConfigValues(&cfg, filePath); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.Page = expandHomePath(cfg.Page)
	cfg.Output = expandHomePath(cfg.Output)
	if !isURL(cfg.Source) {
		cfg.Source = expandHomePath(cfg.Source)
	}

	return &cfg, nil
}

// envTransform converts environment variable names to config keys
// Example: VERLOG_MAX_PARALLEL -> max_parallel
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
