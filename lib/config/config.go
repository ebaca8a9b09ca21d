// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/framewright/media/lib/resolve"
)

// DefaultRoot is used for both roots when nothing else is configured.
const DefaultRoot = "data/local_assets"

// ConfigEnvVar names the environment variable holding the config file
// path when --config is not given.
const ConfigEnvVar = "MEDIA_CONFIG"

// Config is the resolver configuration. Precedence, lowest first:
// [Default], the YAML file, the environment, then command-line
// overrides applied by the CLI through [Config.Override].
type Config struct {
	// LibraryRoot holds images/, audio/ and licenses/.
	LibraryRoot string `yaml:"library_root" env:"MEDIA_LIBRARY_ROOT"`

	// FallbackRoot holds one directory per asset type.
	FallbackRoot string `yaml:"fallback_root" env:"MEDIA_FALLBACK_ROOT"`

	// RunDir holds AssetManifest.json for verification and receives
	// AssetManifest.media.json. Only the verifier requires it.
	RunDir string `yaml:"run_dir" env:"RUN_DIR"`

	// Timestamp is the sentinel policy: "epoch", "manifest", or an
	// RFC 3339 timestamp.
	Timestamp string `yaml:"timestamp" env:"MEDIA_TIMESTAMP"`

	// Strict turns placeholders into failures.
	Strict bool `yaml:"strict" env:"MEDIA_STRICT"`

	// Source is the config file path, "" when none was loaded.
	Source string `yaml:"-" env:"-"`
}

// legacyEnvironment holds variables kept for older run scripts. They
// are applied before the current names, which win when both are set.
type legacyEnvironment struct {
	LocalAssetsRoot string `env:"LOCAL_ASSETS_ROOT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LibraryRoot:  DefaultRoot,
		FallbackRoot: DefaultRoot,
		Timestamp:    resolve.PolicyEpoch,
	}
}

// Load builds the configuration from defaults, the file at path (or
// $MEDIA_CONFIG when path is empty) and the environment. Having no
// config file at all is fine; a named file that is missing is an
// error. There is no discovery of config files.
func Load(path string) (*Config, error) {
	config := Default()

	if path == "" {
		path = os.Getenv(ConfigEnvVar)
	}
	if path != "" {
		if err := config.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := config.applyEnvironment(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFile loads a config file on top of [Default] without consulting
// the environment.
func LoadFile(path string) (*Config, error) {
	config := Default()
	if err := config.loadFile(path); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	// Paths in the file are relative to the file, not to wherever the
	// command happens to run.
	base := filepath.Dir(path)
	for _, field := range []*string{&c.LibraryRoot, &c.FallbackRoot, &c.RunDir} {
		*field = expandVars(*field)
		if *field != "" && !filepath.IsAbs(*field) {
			*field = filepath.Join(base, *field)
		}
	}
	c.Source = path
	return nil
}

func (c *Config) applyEnvironment() error {
	var legacy legacyEnvironment
	if err := ParseEnv(&legacy); err != nil {
		return err
	}
	if legacy.LocalAssetsRoot != "" {
		c.FallbackRoot = legacy.LocalAssetsRoot
	}
	return ParseEnv(c)
}

// ParseEnv fills target's env-tagged fields from the environment.
// Fields whose variable is unset keep their current value.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars replaces ${VAR} and ${VAR:-default} with environment
// values. An unset or empty variable takes the default, or "".
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// Overrides carries command-line values. Empty strings and a false
// Strict leave the configuration unchanged.
type Overrides struct {
	LibraryRoot  string
	FallbackRoot string
	RunDir       string
	Timestamp    string
	Strict       bool
}

// Override applies command-line values on top of the loaded
// configuration.
func (c *Config) Override(overrides Overrides) {
	for _, pair := range []struct {
		target *string
		value  string
	}{
		{&c.LibraryRoot, overrides.LibraryRoot},
		{&c.FallbackRoot, overrides.FallbackRoot},
		{&c.RunDir, overrides.RunDir},
		{&c.Timestamp, overrides.Timestamp},
	} {
		if pair.value != "" {
			*pair.target = pair.value
		}
	}
	if overrides.Strict {
		c.Strict = true
	}
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if c.LibraryRoot == "" {
		errs = append(errs, errors.New("library_root is required"))
	}
	if c.FallbackRoot == "" {
		errs = append(errs, errors.New("fallback_root is required"))
	}
	if _, err := resolve.ParseTimestampPolicy(c.Timestamp); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Roots returns both roots as absolute paths.
func (c *Config) Roots() (resolve.Roots, error) {
	return resolve.Roots{Library: c.LibraryRoot, Fallback: c.FallbackRoot}.Absolute()
}

// TimestampPolicy parses the configured timestamp policy.
func (c *Config) TimestampPolicy() (resolve.TimestampPolicy, error) {
	return resolve.ParseTimestampPolicy(c.Timestamp)
}

// RequireRunDir returns the absolute run directory, or an error when
// none is configured.
func (c *Config) RequireRunDir() (string, error) {
	if c.RunDir == "" {
		return "", errors.New("run directory not set; use --run-dir or RUN_DIR")
	}
	return filepath.Abs(c.RunDir)
}
