// Package i18n provides the user-facing strings of the prediction page in
// English and Indonesian. The language is negotiated from Accept-Language.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key.
const (
	Title           = "Math Score Prediction"
	Caption         = "Input: student profile + reading score + writing score. Output: predicted math score."
	Submit          = "Predict"
	Predicted       = "Predicted math score: %s"
	LoadFailed      = "Failed to load the model/encoder. Check the artifact files and their format."
	PredictFailed   = "An error occurred during prediction. Possibly a column name / encoder / version mismatch."
	InvalidInput    = "Invalid input. Choose one of the listed values and try again."
	ServiceNotReady = "The model is still loading. Try again shortly."
)

var supported = []language.Tag{language.English, language.Indonesian}

var translations = map[language.Tag]map[string]string{
	language.Indonesian: {
		Title:           "Prediksi Math Score",
		Caption:         "Input: profil siswa + reading score + writing score. Output: prediksi math score.",
		Submit:          "Prediksi",
		Predicted:       "Prediksi math score: %s",
		LoadFailed:      "Gagal memuat model/encoder. Cek file artefak dan formatnya.",
		PredictFailed:   "Terjadi error saat prediksi. Kemungkinan mismatch nama kolom / encoder / versi library.",
		InvalidInput:    "Input tidak valid. Pilih salah satu nilai yang tersedia lalu coba lagi.",
		ServiceNotReady: "Model masih dimuat. Coba lagi sebentar lagi.",
	},
}

// Catalog resolves printers for negotiated languages.
type Catalog struct {
	cat      catalog.Catalog
	matcher  language.Matcher
	fallback language.Tag
}

// New builds the catalog. fallback is used when Accept-Language matches
// nothing; an unknown fallback means English.
func New(fallback string) *Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, key := range []string{Title, Caption, Submit, Predicted, LoadFailed, PredictFailed, InvalidInput, ServiceNotReady} {
		_ = b.SetString(language.English, key, key)
	}
	for tag, msgs := range translations {
		for key, msg := range msgs {
			_ = b.SetString(tag, key, msg)
		}
	}
	fb := language.English
	if t, err := language.Parse(fallback); err == nil {
		m := language.NewMatcher(supported)
		if _, idx, conf := m.Match(t); conf != language.No {
			fb = supported[idx]
		}
	}
	return &Catalog{cat: b, matcher: language.NewMatcher(supported), fallback: fb}
}

// Tag negotiates the response language from an Accept-Language header value.
func (c *Catalog) Tag(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.fallback
	}
	return supported[idx]
}

// Printer returns a printer for the negotiated language.
func (c *Catalog) Printer(acceptLanguage string) *message.Printer {
	return message.NewPrinter(c.Tag(acceptLanguage), message.Catalog(c.cat))
}
