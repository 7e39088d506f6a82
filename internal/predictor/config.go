package predictor

import (
	"github.com/rs/zerolog"

	"scored/internal/artifact"
	"scored/internal/constraint"
	"scored/internal/encoding"
)

// Defaults applied when corresponding Config fields are unset.
const (
	DefaultScoreMin     = 0.0
	DefaultScoreMax     = 100.0
	DefaultScoreDefault = 70.0
	DefaultScoreStep    = 1.0
	DefaultCacheSize    = 1024
)

// Bounds describes the numeric entry range offered by the form.
type Bounds struct {
	Min, Max, Default, Step float64
}

// Config encapsulates all tunables for Service construction.
type Config struct {
	Loader *artifact.Loader
	// Constraints checks numeric fields; nil means Range(Bounds.Min, Bounds.Max)
	// for every numeric field.
	Constraints *constraint.Set
	// Fallbacks are offered for categorical fields without an encoder.
	Fallbacks map[string][]string
	Bounds    Bounds
	// CacheSize is the number of cached predictions; negative disables caching.
	CacheSize int
	Publisher EventPublisher
	Logger    *zerolog.Logger
}

func (c *Config) applyDefaults() error {
	if c.Bounds == (Bounds{}) {
		c.Bounds = Bounds{Min: DefaultScoreMin, Max: DefaultScoreMax, Default: DefaultScoreDefault, Step: DefaultScoreStep}
	}
	if c.Bounds.Step <= 0 {
		c.Bounds.Step = DefaultScoreStep
	}
	if c.Fallbacks == nil {
		c.Fallbacks = encoding.DefaultFallbacks()
	}
	if c.CacheSize == 0 {
		c.CacheSize = DefaultCacheSize
	}
	if c.Publisher == nil {
		c.Publisher = noopPublisher{}
	}
	if c.Logger == nil {
		l := zerolog.Nop()
		c.Logger = &l
	}
	if c.Constraints == nil {
		exprs := make(map[string]string, len(encoding.NumericFields))
		for _, f := range encoding.NumericFields {
			exprs[f] = constraint.Range(c.Bounds.Min, c.Bounds.Max)
		}
		set, err := constraint.Compile(exprs)
		if err != nil {
			return err
		}
		c.Constraints = set
	}
	return nil
}
