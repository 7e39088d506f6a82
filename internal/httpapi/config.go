package httpapi

import (
	"github.com/go-chi/cors"

	"scored/internal/i18n"
)

const defaultMaxBodyBytes int64 = 1 << 20

// maxBodyBytes caps JSON and form request bodies.
var maxBodyBytes = defaultMaxBodyBytes

// SetMaxBodyBytes sets the request body cap; n <= 0 restores 1 MiB.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		n = defaultMaxBodyBytes
	}
	maxBodyBytes = n
}

// corsOptions is nil unless CORS was enabled.
var corsOptions *cors.Options

// SetCORSOptions enables CORS for the listed origins, methods and headers, or
// disables it.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	if !enabled {
		corsOptions = nil
		return
	}
	corsOptions = &cors.Options{
		AllowedOrigins: append([]string(nil), origins...),
		AllowedMethods: append([]string(nil), methods...),
		AllowedHeaders: append([]string(nil), headers...),
		MaxAge:         300,
	}
}

// messages translates user-facing page text.
var messages = i18n.New("en")

// SetLocale sets the page language used when Accept-Language matches nothing.
func SetLocale(fallback string) { messages = i18n.New(fallback) }
