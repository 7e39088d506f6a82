package model

import "fmt"

// Linear computes intercept + sum(coef[i] * row[i]).
type Linear struct {
	names     []string
	coef      []float64
	intercept float64
}

func newLinear(spec Spec) (*Linear, error) {
	if len(spec.Coefficients) != len(spec.FeatureNames) {
		return nil, fmt.Errorf("linear model has %d coefficients for %d features",
			len(spec.Coefficients), len(spec.FeatureNames))
	}
	return &Linear{
		names:     append([]string(nil), spec.FeatureNames...),
		coef:      append([]float64(nil), spec.Coefficients...),
		intercept: spec.Intercept,
	}, nil
}

func (l *Linear) Kind() string { return KindLinear }

func (l *Linear) FeatureNames() []string { return append([]string(nil), l.names...) }

func (l *Linear) Predict(row []float64) (float64, error) {
	if err := checkRow(l.names, row); err != nil {
		return 0, err
	}
	y := l.intercept
	for i, c := range l.coef {
		y += c * row[i]
	}
	return y, nil
}
