package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scored/internal/artifact"
	"scored/internal/constraint"
	"scored/internal/encoding"
	"scored/pkg/types"
)

const (
	fixtureModel    = "../../testdata/model.json"
	fixtureEncoders = "../../testdata/encoders.json"
)

func scenarioRequest() types.PredictRequest {
	return types.PredictRequest{
		Gender:            "female",
		RaceEthnicity:     "group B",
		ParentalEducation: "bachelor's degree",
		Lunch:             "standard",
		TestPreparation:   "none",
		ReadingScore:      ptr(72.0),
		WritingScore:      ptr(74.0),
	}
}

func ptr(v float64) *float64 { return &v }

func newService(t *testing.T, cfg Config) (*Service, *MemoryPublisher) {
	t.Helper()
	if cfg.Loader == nil {
		cfg.Loader = artifact.NewLoader(fixtureModel, fixtureEncoders)
	}
	pub := NewMemoryPublisher()
	cfg.Publisher = pub
	svc, err := New(cfg)
	require.NoError(t, err)
	return svc, pub
}

func TestPredict_Scenario(t *testing.T) {
	svc, pub := newService(t, Config{})
	resp, err := svc.Predict(context.Background(), scenarioRequest())
	require.NoError(t, err)
	// forest leaves reached: 77.6, 72.2, 62.1
	assert.InDelta(t, (77.6+72.2+62.1)/3, resp.MathScore, 1e-9)
	assert.Equal(t, "70.63", resp.Formatted)
	assert.NotEmpty(t, resp.ID)
	assert.False(t, resp.Cached)
	assert.Equal(t, []string{EventArtifactsLoaded, EventPredicted}, pub.Names())
	assert.True(t, svc.Ready())
}

func TestPredict_CacheHit(t *testing.T) {
	svc, _ := newService(t, Config{})
	first, err := svc.Predict(context.Background(), scenarioRequest())
	require.NoError(t, err)
	second, err := svc.Predict(context.Background(), scenarioRequest())
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.MathScore, second.MathScore)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 1, svc.Status().CacheEntries)
	assert.Equal(t, uint64(2), svc.Status().PredictionsTotal)
}

func TestPredict_CacheDisabled(t *testing.T) {
	svc, _ := newService(t, Config{CacheSize: -1})
	_, err := svc.Predict(context.Background(), scenarioRequest())
	require.NoError(t, err)
	again, err := svc.Predict(context.Background(), scenarioRequest())
	require.NoError(t, err)
	assert.False(t, again.Cached)
	assert.Equal(t, 0, svc.Status().CacheEntries)
}

func TestPredict_UnknownGender(t *testing.T) {
	svc, pub := newService(t, Config{})
	req := scenarioRequest()
	req.Gender = "other"
	_, err := svc.Predict(context.Background(), req)
	var ve *encoding.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "gender", ve.Field)
	assert.Equal(t, "other", ve.Value)
	assert.Equal(t, []string{"female", "male"}, ve.Accepted)
	assert.Contains(t, err.Error(), `"other"`)
	assert.Contains(t, pub.Names(), EventPredictionRejected)
}

func TestPredict_ScoreOutOfRange(t *testing.T) {
	svc, _ := newService(t, Config{})
	for _, v := range []float64{-1, 100.5} {
		req := scenarioRequest()
		req.WritingScore = ptr(v)
		_, err := svc.Predict(context.Background(), req)
		var ve *encoding.ValidationError
		require.ErrorAs(t, err, &ve, "v=%g", v)
		assert.Equal(t, encoding.FieldWritingScore, ve.Field)
	}
	for _, v := range []float64{0, 100} {
		req := scenarioRequest()
		req.ReadingScore = ptr(v)
		_, err := svc.Predict(context.Background(), req)
		assert.NoError(t, err, "v=%g", v)
	}
}

func TestPredictRecord_NumericTypes(t *testing.T) {
	svc, _ := newService(t, Config{})
	cases := []struct {
		name  string
		value any
		ok    bool
	}{
		{"int in range", 72, true},
		{"int64 in range", int64(72), true},
		{"json number in range", json.Number("72"), true},
		{"string in range", "72", true},
		{"int above max", 150, false},
		{"int64 below min", int64(-5), false},
		{"json number above max", json.Number("150"), false},
		{"string above max", "150", false},
		{"string NaN", "NaN", false},
		{"string Inf", "+Inf", false},
		{"json number NaN", json.Number("NaN"), false},
		{"not a number", "abc", false},
		{"bool", true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := RecordFromRequest(scenarioRequest())
			rec[encoding.FieldReadingScore] = tc.value
			resp, err := svc.PredictRecord(context.Background(), rec)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, "70.63", resp.Formatted)
				return
			}
			var ve *encoding.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, encoding.FieldReadingScore, ve.Field)
			assert.Equal(t, tc.value, ve.Value)
		})
	}
}

func TestPredictRecord_DoesNotMutateInput(t *testing.T) {
	svc, _ := newService(t, Config{})
	rec := RecordFromRequest(scenarioRequest())
	rec[encoding.FieldWritingScore] = "74"
	_, err := svc.PredictRecord(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "74", rec[encoding.FieldWritingScore])
}

func TestPredict_ViolationIsUnwrappable(t *testing.T) {
	svc, _ := newService(t, Config{})
	req := scenarioRequest()
	req.ReadingScore = ptr(101)
	_, err := svc.Predict(context.Background(), req)
	var viol *constraint.ViolationError
	require.ErrorAs(t, err, &viol)
	assert.Equal(t, encoding.FieldReadingScore, viol.Field)
	assert.Equal(t, 101.0, viol.Value)
	assert.Equal(t, http.StatusUnprocessableEntity, viol.StatusCode())
}

func TestPredict_MissingScore(t *testing.T) {
	svc, pub := newService(t, Config{})
	for _, field := range []string{encoding.FieldReadingScore, encoding.FieldWritingScore} {
		req := scenarioRequest()
		if field == encoding.FieldReadingScore {
			req.ReadingScore = nil
		} else {
			req.WritingScore = nil
		}
		_, err := svc.Predict(context.Background(), req)
		var ve *encoding.ValidationError
		require.ErrorAs(t, err, &ve, field)
		assert.Equal(t, field, ve.Field)
		assert.Equal(t, "required", ve.Reason)
		assert.Equal(t, http.StatusUnprocessableEntity, ve.StatusCode())
	}
	assert.Equal(t, []string{EventPredictionRejected, EventPredictionRejected}, pub.Names())
	assert.Equal(t, uint64(0), svc.Status().PredictionsTotal)
}

func TestPredict_MissingCategoricalEncoder(t *testing.T) {
	dir := t.TempDir()
	enc := filepath.Join(dir, "enc.yaml")
	require.NoError(t, writeString(enc, `race/ethnicity:
  classes: [group A, group B, group C, group D, group E]
parental level of education:
  classes: [associate's degree, bachelor's degree, high school, master's degree, some college, some high school]
lunch:
  classes: [free/reduced, standard]
test preparation course:
  classes: [completed, none]
`))
	svc, pub := newService(t, Config{Loader: artifact.NewLoader(fixtureModel, enc)})
	_, err := svc.Predict(context.Background(), scenarioRequest())
	var pe *PredictionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "assemble", pe.Op)
	assert.True(t, errors.Is(err, encoding.ErrNoEncoder))
	assert.False(t, encoding.IsValidation(err))
	assert.Equal(t, http.StatusInternalServerError, pe.StatusCode())
	assert.NotContains(t, pub.Names(), EventPredictionRejected)
}

func TestCheckNumeric_InfFromFloat(t *testing.T) {
	svc, _ := newService(t, Config{})
	rec := RecordFromRequest(scenarioRequest())
	rec[encoding.FieldWritingScore] = math.Inf(1)
	_, err := svc.PredictRecord(context.Background(), rec)
	assert.True(t, encoding.IsValidation(err))
}

func TestPredict_CustomBounds(t *testing.T) {
	svc, _ := newService(t, Config{Bounds: Bounds{Min: 10, Max: 90, Default: 50, Step: 0.5}})
	req := scenarioRequest()
	req.ReadingScore = ptr(95)
	_, err := svc.Predict(context.Background(), req)
	assert.True(t, encoding.IsValidation(err))
	assert.Equal(t, Bounds{Min: 10, Max: 90, Default: 50, Step: 0.5}, svc.Bounds())
}

func TestPredict_LoadError(t *testing.T) {
	dir := t.TempDir()
	svc, pub := newService(t, Config{Loader: artifact.NewLoader(filepath.Join(dir, "m.json"), filepath.Join(dir, "e.json"))})
	_, err := svc.Predict(context.Background(), scenarioRequest())
	require.Error(t, err)
	assert.True(t, artifact.IsLoadError(err))
	assert.False(t, svc.Ready())
	assert.Error(t, svc.LoadErr())
	assert.Equal(t, []string{EventLoadFailed}, pub.Names())

	st := svc.Status()
	assert.Equal(t, string(StateError), st.State)
	assert.NotEmpty(t, st.LoadError)

	_, err = svc.Options(context.Background())
	assert.True(t, artifact.IsLoadError(err))
}

func TestPredictRecord_ExtraColumn(t *testing.T) {
	svc, _ := newService(t, Config{})
	rec := RecordFromRequest(scenarioRequest())
	rec["math score"] = 50.0
	_, err := svc.PredictRecord(context.Background(), rec)
	var pe *PredictionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "assemble", pe.Op)
	assert.Contains(t, err.Error(), `"math score"`)
	assert.Equal(t, 500, pe.StatusCode())
}

func TestPredictRecord_MissingColumn(t *testing.T) {
	svc, _ := newService(t, Config{})
	rec := RecordFromRequest(scenarioRequest())
	delete(rec, encoding.FieldLunch)
	_, err := svc.PredictRecord(context.Background(), rec)
	assert.True(t, IsPrediction(err))
	assert.Contains(t, err.Error(), `missing column "lunch"`)
}

func TestAssembleRow_UsesModelOrder(t *testing.T) {
	row, err := AssembleRow([]string{"b", "a"}, encoding.Encoded{"a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1}, row)
}

func TestOptions(t *testing.T) {
	svc, _ := newService(t, Config{})
	opts, err := svc.Options(context.Background())
	require.NoError(t, err)
	require.Len(t, opts.Categorical, len(encoding.CategoricalFields))
	for _, fo := range opts.Categorical {
		assert.True(t, fo.FromEncoder, fo.Field)
	}
	assert.Equal(t, []string{"free/reduced", "standard"}, opts.Categorical[3].Options)
	require.Len(t, opts.Numeric, 2)
	assert.Equal(t, 70.0, opts.Numeric[0].Default)
	assert.Equal(t, 100.0, opts.Numeric[1].Max)
}

func TestOptions_FallbackForMissingEncoder(t *testing.T) {
	dir := t.TempDir()
	enc := filepath.Join(dir, "enc.yaml")
	require.NoError(t, writeString(enc, "gender:\n  classes: [male, female]\n"))
	fallbacks := encoding.DefaultFallbacks()
	svc, _ := newService(t, Config{Loader: artifact.NewLoader(fixtureModel, enc), Fallbacks: fallbacks})
	opts, err := svc.Options(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"male", "female"}, opts.Categorical[0].Options)
	assert.True(t, opts.Categorical[0].FromEncoder)
	assert.Equal(t, fallbacks[encoding.FieldRaceEthnicity], opts.Categorical[1].Options)
	assert.False(t, opts.Categorical[1].FromEncoder)
}

func TestPredict_Concurrent(t *testing.T) {
	svc, _ := newService(t, Config{})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Predict(context.Background(), scenarioRequest())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(16), svc.Status().PredictionsTotal)
}

func TestFormatScore(t *testing.T) {
	cases := map[float64]string{
		70.63333: "70.63",
		68.0:     "68.00",
		99.999:   "100.00",
		0.125:    "0.13",
		-1.005:   "-1.01",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatScore(in), "in=%v", in)
	}
}

func TestNew_RequiresLoader(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestStatus_BeforeLoad(t *testing.T) {
	svc, _ := newService(t, Config{})
	st := svc.Status()
	assert.Equal(t, string(StateLoading), st.State)
	require.NoError(t, svc.Warm(context.Background()))
	st = svc.Status()
	assert.Equal(t, string(StateReady), st.State)
	assert.Equal(t, "random_forest", st.ModelKind)
	assert.Len(t, st.FeatureNames, 7)
}
