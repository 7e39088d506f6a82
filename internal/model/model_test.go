package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stump splits on feature f at thr: <= thr -> lo, else hi.
func stump(f int, thr, lo, hi float64) TreeSpec {
	return TreeSpec{
		ChildrenLeft:  []int{1, -1, -1},
		ChildrenRight: []int{2, -1, -1},
		Feature:       []int{f, -2, -2},
		Threshold:     []float64{thr, -2, -2},
		Value:         []float64{(lo + hi) / 2, lo, hi},
	}
}

func TestForest_PredictAveragesTrees(t *testing.T) {
	m, err := New(Spec{
		Kind:         KindRandomForest,
		FeatureNames: []string{"a", "b"},
		Trees:        []TreeSpec{stump(0, 50, 10, 20), stump(1, 0.5, 30, 40)},
	})
	require.NoError(t, err)
	assert.Equal(t, KindRandomForest, m.Kind())
	assert.Equal(t, []string{"a", "b"}, m.FeatureNames())

	cases := []struct {
		row  []float64
		want float64
	}{
		{[]float64{10, 0}, (10 + 30) / 2.0},
		{[]float64{50, 1}, (10 + 40) / 2.0},
		{[]float64{51, 1}, (20 + 40) / 2.0},
	}
	for _, c := range cases {
		got, err := m.Predict(c.row)
		require.NoError(t, err)
		assert.InDelta(t, c.want, got, 1e-9, "row %v", c.row)
	}
}

func TestForest_RowLengthMismatch(t *testing.T) {
	m, err := New(Spec{Kind: KindRandomForest, FeatureNames: []string{"a"}, Trees: []TreeSpec{stump(0, 1, 0, 1)}})
	require.NoError(t, err)
	_, err = m.Predict([]float64{1, 2})
	assert.ErrorContains(t, err, "row has 2 values, model expects 1")
}

func TestForest_InvalidSpecs(t *testing.T) {
	bad := stump(0, 1, 0, 1)
	bad.ChildrenLeft = []int{0, -1, -1}
	short := stump(0, 1, 0, 1)
	short.Value = short.Value[:2]
	cases := map[string]Spec{
		"no trees":        {Kind: KindRandomForest, FeatureNames: []string{"a"}},
		"self loop":       {Kind: KindRandomForest, FeatureNames: []string{"a"}, Trees: []TreeSpec{bad}},
		"short arrays":    {Kind: KindRandomForest, FeatureNames: []string{"a"}, Trees: []TreeSpec{short}},
		"feature oob":     {Kind: KindRandomForest, FeatureNames: []string{"a"}, Trees: []TreeSpec{stump(3, 1, 0, 1)}},
		"empty node list": {Kind: KindRandomForest, FeatureNames: []string{"a"}, Trees: []TreeSpec{{}}},
	}
	for name, spec := range cases {
		_, err := New(spec)
		assert.Error(t, err, name)
	}
}

func TestLinear_Predict(t *testing.T) {
	m, err := New(Spec{Kind: KindLinear, FeatureNames: []string{"x", "y"}, Coefficients: []float64{2, -1}, Intercept: 3})
	require.NoError(t, err)
	got, err := m.Predict([]float64{4, 5})
	require.NoError(t, err)
	assert.Equal(t, 6.0, got)

	_, err = New(Spec{Kind: KindLinear, FeatureNames: []string{"x", "y"}, Coefficients: []float64{1}})
	assert.Error(t, err)
}

func TestNew_KindAndNames(t *testing.T) {
	_, err := New(Spec{FeatureNames: []string{"a"}})
	assert.ErrorContains(t, err, "kind is required")
	_, err = New(Spec{Kind: "xgboost", FeatureNames: []string{"a"}})
	assert.ErrorContains(t, err, `unsupported model kind "xgboost"`)
	_, err = New(Spec{Kind: KindLinear})
	assert.ErrorContains(t, err, "feature_names is empty")
	_, err = New(Spec{Kind: KindLinear, FeatureNames: []string{"a", "a"}, Coefficients: []float64{1, 1}})
	assert.ErrorContains(t, err, "duplicate feature name")
}
