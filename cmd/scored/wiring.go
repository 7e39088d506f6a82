package main

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"scored/internal/artifact"
	"scored/internal/config"
	"scored/internal/constraint"
	"scored/internal/encoding"
	"scored/internal/predictor"
)

// newLogger builds the process logger. The returned closer releases the
// optional log file.
func newLogger(cfg config.Config, stderr io.Writer) (zerolog.Logger, io.Closer) {
	var out io.Writer = stderr
	if cfg.LogFormat == "console" {
		out = zerolog.ConsoleWriter{Out: stderr, TimeFormat: "15:04:05"}
	}
	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
		}
		out = zerolog.MultiLevelWriter(out, lj)
		closer = lj
	}
	return zerolog.New(out).Level(zerologLevel(cfg.LogLevel)).With().Timestamp().Str("svc", "scored").Logger(), closer
}

func zerologLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "off":
		return zerolog.Disabled
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// numericConstraints returns configured CEL expressions, defaulting each
// numeric field to the score range.
func numericConstraints(cfg config.Config) (*constraint.Set, error) {
	exprs := make(map[string]string, len(encoding.NumericFields))
	for _, f := range encoding.NumericFields {
		exprs[f] = constraint.Range(*cfg.ScoreMin, *cfg.ScoreMax)
	}
	for f, e := range cfg.NumericConstraints {
		exprs[f] = e
	}
	return constraint.Compile(exprs)
}

func fallbacks(cfg config.Config) map[string][]string {
	fb := encoding.DefaultFallbacks()
	for f, opts := range cfg.FallbackOptions {
		fb[f] = append([]string(nil), opts...)
	}
	return fb
}

func newService(cfg config.Config, log zerolog.Logger) (*predictor.Service, error) {
	cons, err := numericConstraints(cfg)
	if err != nil {
		return nil, err
	}
	return predictor.New(predictor.Config{
		Loader:      artifact.NewLoader(cfg.ModelPath, cfg.EncodersPath),
		Constraints: cons,
		Fallbacks:   fallbacks(cfg),
		Bounds: predictor.Bounds{
			Min:     *cfg.ScoreMin,
			Max:     *cfg.ScoreMax,
			Default: *cfg.ScoreDefault,
			Step:    cfg.ScoreStep,
		},
		CacheSize: cfg.CacheSize,
		Logger:    &log,
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
