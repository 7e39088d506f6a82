package httpapi

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is the HTTP layer logger. When nil, outcome lines go to the standard
// log package.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// parseLevel maps a ?log= or X-Log-Level value to the least severe outcome
// a request still logs. "1" is shorthand for debug.
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off", "none":
		return zerolog.Disabled
	case "1", "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// defaultLogLevel applies when a request carries no override.
var defaultLogLevel = func() zerolog.Level {
	if v, ok := os.LookupEnv("SCORED_REQUEST_LOG"); ok {
		return parseLevel(v)
	}
	return zerolog.InfoLevel
}()

func requestLogLevel(r *http.Request) zerolog.Level {
	if v := r.URL.Query().Get("log"); v != "" {
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

// outcomeLevel grades a finished request by its status.
func outcomeLevel(status int) zerolog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case status >= http.StatusBadRequest:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// logPredictEnd writes one line per prediction request when its outcome is at
// least as severe as the request's log level.
func logPredictEnd(r *http.Request, status int, start time.Time, predictionID string, err error) {
	floor := requestLogLevel(r)
	lvl := outcomeLevel(status)
	if floor == zerolog.Disabled || lvl < floor {
		return
	}
	dur := time.Since(start)
	if zlog == nil {
		log.Printf("predict %s status=%d dur=%s id=%s err=%v", r.URL.Path, status, dur, predictionID, err)
		return
	}
	ev := zlog.WithLevel(lvl).Str("path", r.URL.Path).Int("status", status).Dur("dur", dur)
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		ev = ev.Str("request_id", rid)
	}
	if predictionID != "" {
		ev = ev.Str("prediction_id", predictionID)
	}
	if floor == zerolog.DebugLevel {
		ev = ev.Str("remote", r.RemoteAddr).Str("lang", r.Header.Get("Accept-Language"))
	}
	ev.Err(err).Msg("predict end")
}
