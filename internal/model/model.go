// Package model evaluates regressors exported from the offline training job.
//
// Two artifact kinds are understood:
//
//   - random_forest: a list of trees, each stored as parallel node arrays
//     (children_left, children_right, feature, threshold, value). A node is a
//     leaf when its left child is -1. The forest output is the mean of the trees.
//   - linear: one coefficient per feature plus an intercept.
//
// Rows are addressed positionally; FeatureNames gives the column order.
package model

import (
	"fmt"
)

// Kinds accepted in Spec.Kind.
const (
	KindRandomForest = "random_forest"
	KindLinear       = "linear"
)

// Regressor is a pre-fit model that predicts one value from one row.
type Regressor interface {
	Kind() string
	// FeatureNames returns the column order Predict expects.
	FeatureNames() []string
	Predict(row []float64) (float64, error)
}

// Spec is the on-disk layout of a model artifact.
type Spec struct {
	Kind         string     `json:"kind" yaml:"kind" toml:"kind"`
	FeatureNames []string   `json:"feature_names" yaml:"feature_names" toml:"feature_names"`
	Trees        []TreeSpec `json:"trees,omitempty" yaml:"trees,omitempty" toml:"trees,omitempty"`
	Coefficients []float64  `json:"coefficients,omitempty" yaml:"coefficients,omitempty" toml:"coefficients,omitempty"`
	Intercept    float64    `json:"intercept,omitempty" yaml:"intercept,omitempty" toml:"intercept,omitempty"`
}

// TreeSpec is one regression tree in flat array form.
type TreeSpec struct {
	ChildrenLeft  []int     `json:"children_left" yaml:"children_left" toml:"children_left"`
	ChildrenRight []int     `json:"children_right" yaml:"children_right" toml:"children_right"`
	Feature       []int     `json:"feature" yaml:"feature" toml:"feature"`
	Threshold     []float64 `json:"threshold" yaml:"threshold" toml:"threshold"`
	Value         []float64 `json:"value" yaml:"value" toml:"value"`
}

// New validates spec and builds the matching Regressor.
func New(spec Spec) (Regressor, error) {
	if err := checkFeatureNames(spec.FeatureNames); err != nil {
		return nil, err
	}
	switch spec.Kind {
	case KindRandomForest:
		return newForest(spec)
	case KindLinear:
		return newLinear(spec)
	case "":
		return nil, fmt.Errorf("model kind is required")
	default:
		return nil, fmt.Errorf("unsupported model kind %q", spec.Kind)
	}
}

func checkFeatureNames(names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("feature_names is empty")
	}
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			return fmt.Errorf("feature_names contains an empty name")
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("duplicate feature name %q", n)
		}
		seen[n] = struct{}{}
	}
	return nil
}

func checkRow(names []string, row []float64) error {
	if len(row) != len(names) {
		return fmt.Errorf("row has %d values, model expects %d", len(row), len(names))
	}
	return nil
}
