package predictor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"scored/internal/encoding"
	"scored/pkg/types"
)

// RecordFromRequest converts the API payload into an input record. Unset
// scores are left out of the record.
func RecordFromRequest(req types.PredictRequest) encoding.Record {
	rec := encoding.Record{
		encoding.FieldGender:            req.Gender,
		encoding.FieldRaceEthnicity:     req.RaceEthnicity,
		encoding.FieldParentalEducation: req.ParentalEducation,
		encoding.FieldLunch:             req.Lunch,
		encoding.FieldTestPreparation:   req.TestPreparation,
	}
	if req.ReadingScore != nil {
		rec[encoding.FieldReadingScore] = *req.ReadingScore
	}
	if req.WritingScore != nil {
		rec[encoding.FieldWritingScore] = *req.WritingScore
	}
	return rec
}

// Predict scores one API request. Both scores are required; a missing one is
// an *encoding.ValidationError.
func (s *Service) Predict(ctx context.Context, req types.PredictRequest) (types.PredictResponse, error) {
	for _, f := range []struct {
		name string
		v    *float64
	}{
		{encoding.FieldReadingScore, req.ReadingScore},
		{encoding.FieldWritingScore, req.WritingScore},
	} {
		if f.v == nil {
			err := &encoding.ValidationError{Field: f.name, Value: nil, Reason: "required"}
			s.reject(uuid.NewString(), err)
			return types.PredictResponse{}, err
		}
	}
	return s.PredictRecord(ctx, RecordFromRequest(req))
}

// PredictRecord validates, encodes and scores rec. Errors are an
// *artifact.LoadError, an *encoding.ValidationError, a *PredictionError or
// ctx.Err() when ctx was already done.
func (s *Service) PredictRecord(ctx context.Context, rec encoding.Record) (types.PredictResponse, error) {
	start := time.Now()
	id := uuid.NewString()

	art, err := s.loader.Load(ctx)
	if err != nil {
		predictionsTotal.WithLabelValues(outcomeLoadError).Inc()
		return types.PredictResponse{}, err
	}

	rec, err = s.checkNumeric(rec)
	if err != nil {
		s.reject(id, err)
		return types.PredictResponse{}, err
	}
	enc, err := art.Encoders.Encode(rec)
	if errors.Is(err, encoding.ErrNoEncoder) {
		predictionsTotal.WithLabelValues(outcomeModelError).Inc()
		return types.PredictResponse{}, &PredictionError{Op: "assemble", Err: err}
	}
	if err != nil {
		s.reject(id, err)
		return types.PredictResponse{}, err
	}
	row, err := AssembleRow(art.Model.FeatureNames(), enc)
	if err != nil {
		predictionsTotal.WithLabelValues(outcomeModelError).Inc()
		return types.PredictResponse{}, err
	}

	key := cacheKey(row)
	y, cached := s.cacheGet(key)
	if !cached {
		y, err = art.Model.Predict(row)
		if err != nil {
			predictionsTotal.WithLabelValues(outcomeModelError).Inc()
			return types.PredictResponse{}, &PredictionError{Op: "predict", Err: err}
		}
		if s.cache != nil {
			s.cache.Add(key, y)
		}
	}

	s.predictions.Add(1)
	predictionsTotal.WithLabelValues(outcomeOK).Inc()
	predictionDuration.Observe(time.Since(start).Seconds())
	resp := types.PredictResponse{ID: id, MathScore: y, Formatted: FormatScore(y), Cached: cached}
	s.log.Debug().Str("prediction_id", id).Float64("math_score", y).Bool("cached", cached).Dur("dur", time.Since(start)).Msg("predicted")
	s.pub.Publish(Event{Name: EventPredicted, Fields: map[string]any{"prediction_id": id, "math_score": y, "cached": cached}})
	return resp, nil
}

// checkNumeric converts the numeric fields present in rec to float64 and
// checks each against its constraint. It returns a copy of rec holding the
// converted values; rec itself is not modified.
func (s *Service) checkNumeric(rec encoding.Record) (encoding.Record, error) {
	out := make(encoding.Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	for _, f := range encoding.NumericFields {
		raw, ok := rec[f]
		if !ok {
			continue // AssembleRow reports the missing column
		}
		v, err := encoding.ToFloat(raw)
		if err != nil {
			return nil, &encoding.ValidationError{Field: f, Value: raw, Reason: "expected a number", Err: err}
		}
		if err := s.constraints.Check(f, v); err != nil {
			return nil, &encoding.ValidationError{Field: f, Value: raw, Reason: err.Error(), Err: err}
		}
		out[f] = v
	}
	return out, nil
}

func (s *Service) reject(id string, err error) {
	predictionsTotal.WithLabelValues(outcomeInvalid).Inc()
	s.log.Info().Str("prediction_id", id).Err(err).Msg("prediction rejected")
	s.pub.Publish(Event{Name: EventPredictionRejected, Fields: map[string]any{"prediction_id": id, "error": err.Error()}})
}

func (s *Service) cacheGet(key string) (float64, bool) {
	if s.cache == nil {
		return 0, false
	}
	y, ok := s.cache.Get(key)
	if ok {
		cacheLookupsTotal.WithLabelValues("hit").Inc()
	} else {
		cacheLookupsTotal.WithLabelValues("miss").Inc()
	}
	return y, ok
}

// AssembleRow orders enc by the model's feature names. A missing or an extra
// column is a *PredictionError.
func AssembleRow(names []string, enc encoding.Encoded) ([]float64, error) {
	row := make([]float64, len(names))
	for i, n := range names {
		v, ok := enc[n]
		if !ok {
			return nil, &PredictionError{Op: "assemble", Err: fmt.Errorf("missing column %q", n)}
		}
		row[i] = v
	}
	if len(enc) != len(names) {
		want := make(map[string]struct{}, len(names))
		for _, n := range names {
			want[n] = struct{}{}
		}
		var extra []string
		for k := range enc {
			if _, ok := want[k]; !ok {
				extra = append(extra, strconv.Quote(k))
			}
		}
		sort.Strings(extra)
		return nil, &PredictionError{Op: "assemble", Err: fmt.Errorf("unexpected columns %s", strings.Join(extra, ", "))}
	}
	return row, nil
}

func cacheKey(row []float64) string {
	var b strings.Builder
	for i, v := range row {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return b.String()
}

// FormatScore renders y with exactly two decimals, rounding half away from zero.
func FormatScore(y float64) string {
	return decimal.NewFromFloat(y).StringFixed(2)
}
