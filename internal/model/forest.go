package model

import (
	"fmt"
)

type tree struct {
	left, right []int
	feature     []int
	threshold   []float64
	value       []float64
}

// Forest averages the outputs of its trees.
type Forest struct {
	names []string
	trees []tree
}

func newForest(spec Spec) (*Forest, error) {
	if len(spec.Trees) == 0 {
		return nil, fmt.Errorf("random_forest has no trees")
	}
	f := &Forest{names: append([]string(nil), spec.FeatureNames...)}
	for i, ts := range spec.Trees {
		t, err := buildTree(ts, len(spec.FeatureNames))
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		f.trees = append(f.trees, t)
	}
	return f, nil
}

func buildTree(ts TreeSpec, nFeatures int) (tree, error) {
	n := len(ts.ChildrenLeft)
	if n == 0 {
		return tree{}, fmt.Errorf("no nodes")
	}
	if len(ts.ChildrenRight) != n || len(ts.Feature) != n || len(ts.Threshold) != n || len(ts.Value) != n {
		return tree{}, fmt.Errorf("node arrays differ in length")
	}
	for i := 0; i < n; i++ {
		l, r := ts.ChildrenLeft[i], ts.ChildrenRight[i]
		if l == -1 {
			continue
		}
		// children always come after their parent, so walks terminate
		if l <= i || l >= n || r <= i || r >= n {
			return tree{}, fmt.Errorf("node %d has invalid children (%d, %d)", i, l, r)
		}
		if f := ts.Feature[i]; f < 0 || f >= nFeatures {
			return tree{}, fmt.Errorf("node %d splits on feature %d, model has %d", i, f, nFeatures)
		}
	}
	return tree{
		left:      ts.ChildrenLeft,
		right:     ts.ChildrenRight,
		feature:   ts.Feature,
		threshold: ts.Threshold,
		value:     ts.Value,
	}, nil
}

func (t tree) eval(row []float64) float64 {
	idx := 0
	for t.left[idx] != -1 {
		if row[t.feature[idx]] <= t.threshold[idx] {
			idx = t.left[idx]
		} else {
			idx = t.right[idx]
		}
	}
	return t.value[idx]
}

func (f *Forest) Kind() string { return KindRandomForest }

func (f *Forest) FeatureNames() []string { return append([]string(nil), f.names...) }

// Trees returns the number of trees in the ensemble.
func (f *Forest) Trees() int { return len(f.trees) }

func (f *Forest) Predict(row []float64) (float64, error) {
	if err := checkRow(f.names, row); err != nil {
		return 0, err
	}
	var sum float64
	for _, t := range f.trees {
		sum += t.eval(row)
	}
	return sum / float64(len(f.trees)), nil
}
