package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by Defaults.
type Config struct {
	Addr         string `json:"addr" yaml:"addr" toml:"addr"`
	ModelPath    string `json:"model_path" yaml:"model_path" toml:"model_path"`
	EncodersPath string `json:"encoders_path" yaml:"encoders_path" toml:"encoders_path"`
	// EagerLoad loads artifacts at startup instead of on the first request.
	EagerLoad *bool `json:"eager_load" yaml:"eager_load" toml:"eager_load"`
	// CacheSize bounds the prediction cache; negative disables it.
	CacheSize    int   `json:"cache_size" yaml:"cache_size" toml:"cache_size"`
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`

	ScoreMin     *float64 `json:"score_min" yaml:"score_min" toml:"score_min"`
	ScoreMax     *float64 `json:"score_max" yaml:"score_max" toml:"score_max"`
	ScoreDefault *float64 `json:"score_default" yaml:"score_default" toml:"score_default"`
	ScoreStep    float64  `json:"score_step" yaml:"score_step" toml:"score_step"`
	// NumericConstraints maps a numeric field to a CEL expression over `value`.
	// Unset fields get the [score_min, score_max] range.
	NumericConstraints map[string]string `json:"numeric_constraints" yaml:"numeric_constraints" toml:"numeric_constraints"`
	// FallbackOptions overrides the choices offered when a field has no encoder.
	FallbackOptions map[string][]string `json:"fallback_options" yaml:"fallback_options" toml:"fallback_options"`
	// Locale is the page language when Accept-Language matches nothing (en, id).
	Locale string `json:"locale" yaml:"locale" toml:"locale"`

	CORSEnabled        bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSAllowedOrigins []string `json:"cors_allowed_origins" yaml:"cors_allowed_origins" toml:"cors_allowed_origins"`
	CORSAllowedMethods []string `json:"cors_allowed_methods" yaml:"cors_allowed_methods" toml:"cors_allowed_methods"`
	CORSAllowedHeaders []string `json:"cors_allowed_headers" yaml:"cors_allowed_headers" toml:"cors_allowed_headers"`

	LogLevel      string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat     string `json:"log_format" yaml:"log_format" toml:"log_format"`
	LogFile       string `json:"log_file" yaml:"log_file" toml:"log_file"`
	LogMaxSizeMB  int    `json:"log_max_size_mb" yaml:"log_max_size_mb" toml:"log_max_size_mb"`
	LogMaxBackups int    `json:"log_max_backups" yaml:"log_max_backups" toml:"log_max_backups"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
