package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scored/internal/config"
)

// flags collects the persistent command-line overrides.
type flags struct {
	configPath  string
	addr        string
	modelPath   string
	encoders    string
	logLevel    string
	logFormat   string
	logFile     string
	locale      string
	corsOrigins string
	cacheSize   int
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "scored",
		Short:         "Math score prediction service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", os.Getenv("SCORED_CONFIG"), "Config file (.yaml, .json, .toml)")
	pf.StringVar(&f.addr, "addr", "", "HTTP listen address, e.g. :8080")
	pf.StringVar(&f.modelPath, "model", "", "Model artifact path")
	pf.StringVar(&f.encoders, "encoders", "", "Encoder artifact path")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level: debug|info|warn|error|off")
	pf.StringVar(&f.logFormat, "log-format", "", "Log format: json|console")
	pf.StringVar(&f.logFile, "log-file", "", "Also write logs to this file (rotated)")
	pf.StringVar(&f.locale, "locale", "", "Page language when Accept-Language matches nothing: en|id")
	pf.StringVar(&f.corsOrigins, "cors-origins", "", "Comma-separated allowed CORS origins; enables CORS")
	pf.IntVar(&f.cacheSize, "cache-size", 0, "Prediction cache entries (negative disables)")

	serve := newServeCmd(f)
	root.RunE = serve.RunE
	root.AddCommand(serve, newCheckCmd(f), newPredictCmd(f))
	return root
}

// resolveConfig merges, in increasing precedence: config file, SCORED_*
// environment, explicitly set flags. Defaults fill what remains.
func resolveConfig(cmd *cobra.Command, f *flags) (config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		c, err := config.Load(f.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", f.configPath, err)
		}
		cfg = c
	}
	cfg = config.FromEnv(cfg)

	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}
	if changed("addr") {
		cfg.Addr = f.addr
	}
	if changed("model") {
		cfg.ModelPath = f.modelPath
	}
	if changed("encoders") {
		cfg.EncodersPath = f.encoders
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	if changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if changed("locale") {
		cfg.Locale = f.locale
	}
	if changed("cache-size") {
		cfg.CacheSize = f.cacheSize
	}
	if changed("cors-origins") {
		cfg.CORSAllowedOrigins = splitCSV(f.corsOrigins)
		cfg.CORSEnabled = len(cfg.CORSAllowedOrigins) > 0
	}

	cfg = config.Defaults(cfg)
	if err := config.Validate(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
