package predictor

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"scored/internal/artifact"
	"scored/internal/constraint"
	"scored/internal/encoding"
	"scored/pkg/types"
)

// State is the artifact lifecycle state reported by Status.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Service scores records against the loaded artifacts. It is safe for
// concurrent use.
type Service struct {
	loader      *artifact.Loader
	constraints *constraint.Set
	fallbacks   map[string][]string
	bounds      Bounds
	cache       *lru.Cache[string, float64]
	pub         EventPublisher
	log         *zerolog.Logger

	startTime   time.Time
	predictions atomic.Uint64
}

// New constructs a Service from cfg. cfg.Loader is required.
func New(cfg Config) (*Service, error) {
	if cfg.Loader == nil {
		return nil, fmt.Errorf("predictor: loader is required")
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, fmt.Errorf("predictor: constraints: %w", err)
	}
	s := &Service{
		loader:      cfg.Loader,
		constraints: cfg.Constraints,
		fallbacks:   cfg.Fallbacks,
		bounds:      cfg.Bounds,
		pub:         cfg.Publisher,
		log:         cfg.Logger,
		startTime:   time.Now(),
	}
	if cfg.CacheSize > 0 {
		c, err := lru.New[string, float64](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("predictor: cache: %w", err)
		}
		s.cache = c
	}
	prev := cfg.Loader.OnLoad
	cfg.Loader.OnLoad = func(art *artifact.Artifacts, err error, dur time.Duration) {
		s.onLoad(art, err, dur)
		if prev != nil {
			prev(art, err, dur)
		}
	}
	return s, nil
}

func (s *Service) onLoad(art *artifact.Artifacts, err error, dur time.Duration) {
	artifactLoadDuration.Set(dur.Seconds())
	mp, ep := s.loader.Paths()
	if err != nil {
		artifactLoadsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("model_path", mp).Str("encoders_path", ep).Dur("dur", dur).Msg("artifact load failed")
		s.pub.Publish(Event{Name: EventLoadFailed, Fields: map[string]any{"error": err.Error()}})
		return
	}
	artifactLoadsTotal.WithLabelValues("ok").Inc()
	s.log.Info().
		Str("model_path", mp).
		Str("encoders_path", ep).
		Str("kind", art.Model.Kind()).
		Strs("features", art.Model.FeatureNames()).
		Strs("encoded_fields", art.Encoders.Fields()).
		Dur("dur", dur).
		Msg("artifacts loaded")
	s.pub.Publish(Event{Name: EventArtifactsLoaded, Fields: map[string]any{"kind": art.Model.Kind()}})
}

// Warm loads the artifacts now instead of on the first request.
func (s *Service) Warm(ctx context.Context) error {
	_, err := s.loader.Load(ctx)
	return err
}

// Ready reports whether the artifacts are loaded without error.
func (s *Service) Ready() bool {
	art, done, err := s.loader.Peek()
	return done && err == nil && art != nil
}

// LoadErr returns the artifact load error, if loading has finished and failed.
func (s *Service) LoadErr() error {
	_, _, err := s.loader.Peek()
	return err
}

// Bounds returns the numeric entry range.
func (s *Service) Bounds() Bounds { return s.bounds }

// Options returns the valid choices for every categorical field and the
// numeric bounds. It loads the artifacts if needed.
func (s *Service) Options(ctx context.Context) (types.OptionsResponse, error) {
	art, err := s.loader.Load(ctx)
	if err != nil {
		return types.OptionsResponse{}, err
	}
	var resp types.OptionsResponse
	for _, f := range encoding.CategoricalFields {
		_, fromEnc := art.Encoders.Encoder(f)
		resp.Categorical = append(resp.Categorical, types.FieldOptions{
			Field:       f,
			Options:     art.Encoders.Options(f, s.fallbacks[f]),
			FromEncoder: fromEnc,
		})
	}
	for _, f := range encoding.NumericFields {
		resp.Numeric = append(resp.Numeric, types.NumericBounds{
			Field:   f,
			Min:     s.bounds.Min,
			Max:     s.bounds.Max,
			Default: s.bounds.Default,
			Step:    s.bounds.Step,
		})
	}
	return resp, nil
}

// Status reports artifact state and counters.
func (s *Service) Status() types.StatusResponse {
	mp, ep := s.loader.Paths()
	now := time.Now()
	resp := types.StatusResponse{
		State:            string(StateLoading),
		ModelPath:        mp,
		EncodersPath:     ep,
		PredictionsTotal: s.predictions.Load(),
		UptimeSeconds:    int64(now.Sub(s.startTime).Seconds()),
		ServerTimeUnix:   now.Unix(),
	}
	if s.cache != nil {
		resp.CacheEntries = s.cache.Len()
	}
	art, done, err := s.loader.Peek()
	switch {
	case !done:
	case err != nil:
		resp.State = string(StateError)
		resp.LoadError = err.Error()
	default:
		resp.State = string(StateReady)
		resp.ModelKind = art.Model.Kind()
		resp.FeatureNames = art.Model.FeatureNames()
		resp.EncodedFields = art.Encoders.Fields()
	}
	return resp
}
