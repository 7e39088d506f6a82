package config

import (
	"fmt"
	"os"
	"strconv"
)

// Default values used by Defaults.
const (
	DefaultAddr          = ":8080"
	DefaultModelPath     = "artifacts/model.json"
	DefaultEncodersPath  = "artifacts/encoders.json"
	DefaultCacheSize     = 1024
	DefaultMaxBodyBytes  = 1 << 20
	DefaultLocale        = "en"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	DefaultLogMaxSizeMB  = 50
	DefaultLogMaxBackups = 3
)

func ptr[T any](v T) *T { return &v }

// Defaults returns cfg with unspecified fields filled in.
func Defaults(cfg Config) Config {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.ModelPath == "" {
		cfg.ModelPath = DefaultModelPath
	}
	if cfg.EncodersPath == "" {
		cfg.EncodersPath = DefaultEncodersPath
	}
	if cfg.EagerLoad == nil {
		cfg.EagerLoad = ptr(true)
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.ScoreMin == nil {
		cfg.ScoreMin = ptr(0.0)
	}
	if cfg.ScoreMax == nil {
		cfg.ScoreMax = ptr(100.0)
	}
	if cfg.ScoreDefault == nil {
		cfg.ScoreDefault = ptr(70.0)
	}
	if cfg.ScoreStep <= 0 {
		cfg.ScoreStep = 1.0
	}
	if cfg.Locale == "" {
		cfg.Locale = DefaultLocale
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	if cfg.LogMaxSizeMB <= 0 {
		cfg.LogMaxSizeMB = DefaultLogMaxSizeMB
	}
	if cfg.LogMaxBackups <= 0 {
		cfg.LogMaxBackups = DefaultLogMaxBackups
	}
	if len(cfg.CORSAllowedMethods) == 0 {
		cfg.CORSAllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.CORSAllowedHeaders) == 0 {
		cfg.CORSAllowedHeaders = []string{"Content-Type", "Accept-Language", "X-Log-Level"}
	}
	return cfg
}

// Validate checks a defaulted config for inconsistent values.
func Validate(cfg Config) error {
	if cfg.ScoreMin == nil || cfg.ScoreMax == nil || cfg.ScoreDefault == nil {
		return fmt.Errorf("score bounds unset; call Defaults first")
	}
	if *cfg.ScoreMin > *cfg.ScoreMax {
		return fmt.Errorf("score_min %g is greater than score_max %g", *cfg.ScoreMin, *cfg.ScoreMax)
	}
	if *cfg.ScoreDefault < *cfg.ScoreMin || *cfg.ScoreDefault > *cfg.ScoreMax {
		return fmt.Errorf("score_default %g is outside [%g, %g]", *cfg.ScoreDefault, *cfg.ScoreMin, *cfg.ScoreMax)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "off":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log_format %q", cfg.LogFormat)
	}
	for field, opts := range cfg.FallbackOptions {
		if len(opts) == 0 {
			return fmt.Errorf("fallback_options[%q] is empty", field)
		}
	}
	return nil
}

// FromEnv overlays SCORED_* environment variables onto cfg.
func FromEnv(cfg Config) Config {
	if v := os.Getenv("SCORED_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("SCORED_MODEL_PATH"); v != "" {
		cfg.ModelPath = v
	}
	if v := os.Getenv("SCORED_ENCODERS_PATH"); v != "" {
		cfg.EncodersPath = v
	}
	if v := os.Getenv("SCORED_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SCORED_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("SCORED_LOCALE"); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv("SCORED_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CacheSize = n
		}
	}
	return cfg
}
