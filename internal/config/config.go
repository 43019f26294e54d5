// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"

	"github.com/jeranaias/salesbrief/internal/util"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CurrentVersion is written to new config files.
const CurrentVersion = "1"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete salesbrief configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Insight service connection
	Service ServiceConfig `toml:"service" json:"service"`

	// Terminal UI behaviour
	UI UIConfig `toml:"ui" json:"ui"`

	// Log file
	Log LogConfig `toml:"log" json:"log"`
}

// ServiceConfig describes how to reach the insight service.
type ServiceConfig struct {
	// BaseURL includes the API prefix, e.g. http://localhost:8000/api/v1
	BaseURL string `toml:"base_url" json:"base_url"`
	// TimeoutSecs is the per-request timeout. 0 leaves the transport default.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// RequestsPerMinute paces outbound requests. 0 disables pacing.
	RequestsPerMinute int    `toml:"requests_per_minute" json:"requests_per_minute"`
	UserAgent         string `toml:"user_agent" json:"user_agent"`
}

// Timeout returns TimeoutSecs as a duration.
func (s ServiceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSecs) * time.Second
}

// UIConfig contains terminal UI configuration.
type UIConfig struct {
	// QuickMode preselects the quick brief on the dashboard
	QuickMode bool `toml:"quick_mode" json:"quick_mode"`
	// HistoryLimit is the default row count for `salesbrief history`
	HistoryLimit int `toml:"history_limit" json:"history_limit"`
	// GlamourStyle is the markdown style: auto, dark, light, notty
	GlamourStyle string `toml:"glamour_style" json:"glamour_style"`
	// ExportDir receives briefs exported from the result view.
	// Empty uses ~/.salesbrief/briefs
	ExportDir string `toml:"export_dir" json:"export_dir"`
	// ExportFormat is the result view export format: md, json, html
	ExportFormat string `toml:"export_format" json:"export_format"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	// Path of the log file. Empty uses ~/.salesbrief/salesbrief.log
	Path       string `toml:"path" json:"path"`
	Level      string `toml:"level" json:"level"`
	MaxSizeMB  int    `toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" json:"max_age_days"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a configuration with every field set.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Service: ServiceConfig{
			BaseURL:   "http://localhost:8000/api/v1",
			UserAgent: "salesbrief/0.1",
		},
		UI: UIConfig{
			QuickMode:    false,
			HistoryLimit: 10,
			GlamourStyle: "auto",
			ExportFormat: "md",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// SetDefaults fills zero-valued fields that have no meaningful zero.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Service.BaseURL == "" {
		c.Service.BaseURL = d.Service.BaseURL
	}
	c.Service.BaseURL = strings.TrimRight(c.Service.BaseURL, "/")
	if c.Service.UserAgent == "" {
		c.Service.UserAgent = d.Service.UserAgent
	}
	if c.UI.HistoryLimit == 0 {
		c.UI.HistoryLimit = d.UI.HistoryLimit
	}
	if c.UI.GlamourStyle == "" {
		c.UI.GlamourStyle = d.UI.GlamourStyle
	}
	if c.UI.ExportFormat == "" {
		c.UI.ExportFormat = d.UI.ExportFormat
	}
	c.UI.ExportFormat = strings.ToLower(c.UI.ExportFormat)
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = d.Log.MaxSizeMB
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = d.Log.MaxBackups
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = d.Log.MaxAgeDays
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the salesbrief configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".salesbrief"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LogPath returns the configured log file, or the default under ConfigDir.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "salesbrief.log"), nil
}

// BriefDir returns where the result view writes exported briefs.
func (c *Config) BriefDir() (string, error) {
	if c.UI.ExportDir != "" {
		return c.UI.ExportDir, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "briefs"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads ~/.salesbrief/config.toml, falling back to config.json and
// then to defaults. Environment overrides are applied last. The returned
// path is the file that was read, or "" when none existed.
func Load() (*Config, string, error) {
	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		cfg, err := LoadFromPath(path)
		return cfg, path, err
	}

	cfg := Default()
	if err := cfg.finish(); err != nil {
		return nil, "", err
	}
	return cfg, "", nil
}

// LoadFromPath loads a specific file. A .json suffix selects JSON,
// anything else is read as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}
	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

func (c *Config) finish() error {
	c.ApplyEnvOverrides()
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to path, or to the default TOML file when path is empty.
func Save(cfg *Config, path string) (string, error) {
	if path == "" {
		p, err := ConfigPathTOML()
		if err != nil {
			return "", err
		}
		path = p
	}
	if strings.HasSuffix(path, ".json") {
		return path, SaveJSON(cfg, path)
	}
	return path, SaveTOML(cfg, path)
}

// SaveTOML writes cfg as TOML with owner-only permissions.
func SaveTOML(cfg *Config, path string) error {
	var b strings.Builder
	b.WriteString("# salesbrief configuration file\n")
	b.WriteString("# Environment variables SALESBRIEF_* override these values.\n\n")
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes cfg as indented JSON with owner-only permissions.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var (
	validLogLevels     = []string{"debug", "info", "warn", "error"}
	validGlamourStyles = []string{"auto", "dark", "light", "notty"}
	validExportFormats = []string{"md", "json", "html"}
)

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.Service.BaseURL); err != nil || !u.IsAbs() || u.Host == "" {
		errs = append(errs, ValidationError{Field: "service.base_url", Message: fmt.Sprintf("must be an absolute URL, got %q", c.Service.BaseURL)})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, ValidationError{Field: "service.base_url", Message: fmt.Sprintf("scheme must be http or https, got %q", u.Scheme)})
	}
	if c.Service.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{Field: "service.timeout_secs", Message: "must not be negative"})
	}
	if c.Service.RequestsPerMinute < 0 {
		errs = append(errs, ValidationError{Field: "service.requests_per_minute", Message: "must not be negative"})
	}

	if c.UI.HistoryLimit < 1 || c.UI.HistoryLimit > 100 {
		errs = append(errs, ValidationError{Field: "ui.history_limit", Message: fmt.Sprintf("must be between 1 and 100, got %d", c.UI.HistoryLimit)})
	}
	if !contains(validGlamourStyles, c.UI.GlamourStyle) {
		errs = append(errs, ValidationError{Field: "ui.glamour_style", Message: fmt.Sprintf("must be one of %s", strings.Join(validGlamourStyles, ", "))})
	}
	if !contains(validExportFormats, c.UI.ExportFormat) {
		errs = append(errs, ValidationError{Field: "ui.export_format", Message: fmt.Sprintf("must be one of %s", strings.Join(validExportFormats, ", "))})
	}

	if !contains(validLogLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, ValidationError{Field: "log.level", Message: fmt.Sprintf("must be one of %s", strings.Join(validLogLevels, ", "))})
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		errs = append(errs, ValidationError{Field: "log", Message: "rotation limits must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// Environment variable names.
const (
	EnvAPIURL      = "SALESBRIEF_API_URL"
	EnvTimeoutSecs = "SALESBRIEF_TIMEOUT_SECS"
	EnvQuick       = "SALESBRIEF_QUICK"
	EnvLogLevel    = "SALESBRIEF_LOG_LEVEL"
	EnvLogPath     = "SALESBRIEF_LOG_PATH"
)

// ApplyEnvOverrides applies environment variable overrides to the config.
// Unparseable numeric or boolean values are ignored.
//
// Supported environment variables:
//   - SALESBRIEF_API_URL: overrides service.base_url
//   - SALESBRIEF_TIMEOUT_SECS: overrides service.timeout_secs
//   - SALESBRIEF_QUICK: "1"/"true" preselects quick mode
//   - SALESBRIEF_LOG_LEVEL: overrides log.level
//   - SALESBRIEF_LOG_PATH: overrides log.path
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.Service.BaseURL = v
	}
	if v := os.Getenv(EnvTimeoutSecs); v != "" {
		if secs, err := cast.ToIntE(v); err == nil {
			c.Service.TimeoutSecs = secs
		}
	}
	if v := os.Getenv(EnvQuick); v != "" {
		if quick, err := cast.ToBoolE(v); err == nil {
			c.UI.QuickMode = quick
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogPath); v != "" {
		c.Log.Path = v
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a value by its dotted TOML key, e.g. "service.base_url".
func (c *Config) Get(key string) (any, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set assigns a value by its dotted TOML key. String input is converted to
// the field's type.
func (c *Config) Set(key string, value any) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")
	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field, ok := fieldByTag(v, part)
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("%s is a section, not a value", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if tomlName(t.Field(i)) == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func tomlName(f reflect.StructField) string {
	tag, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
	if tag == "" {
		return strings.ToLower(f.Name)
	}
	return tag
}

func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		s, err := cast.ToStringE(value)
		if err != nil {
			return fmt.Errorf("invalid string value: %w", err)
		}
		field.SetString(s)
	case reflect.Int, reflect.Int64:
		n, err := cast.ToInt64E(value)
		if err != nil {
			return fmt.Errorf("invalid integer value: %w", err)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value: %w", err)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("cannot assign %T to %s", value, field.Type())
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns every settable key in dot notation, sorted.
func GetAllKeys() []string {
	var keys []string
	var walk func(prefix string, t reflect.Type)
	walk = func(prefix string, t reflect.Type) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := prefix + tomlName(f)
			if f.Type.Kind() == reflect.Struct {
				walk(name+".", f.Type)
				continue
			}
			keys = append(keys, name)
		}
	}
	walk("", reflect.TypeOf(Config{}))
	sort.Strings(keys)
	return keys
}

// Clone returns a copy of the config. Config holds only values, so a
// shallow copy is a deep copy.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String renders the config as TOML.
func (c *Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
