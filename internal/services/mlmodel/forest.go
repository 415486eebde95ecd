package mlmodel

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Forest is a bagged ensemble of variance-minimizing regression trees.
// Fitting happens offline in the trainer; serving only calls Predict, so a
// loaded forest is immutable and safe for concurrent use.
type Forest struct {
	Trees       []*treeNode `json:"trees"`
	NumFeatures int         `json:"num_features"`
}

type treeNode struct {
	Leaf      bool      `json:"leaf"`
	Value     float64   `json:"value,omitempty"`
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *treeNode `json:"left,omitempty"`
	Right     *treeNode `json:"right,omitempty"`
}

// ForestConfig controls fitting.
type ForestConfig struct {
	Trees    int
	MaxDepth int
	MinLeaf  int
	Seed     int64
}

// DefaultForestConfig mirrors the training defaults used for the shipped model.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{Trees: 100, MaxDepth: 8, MinLeaf: 1, Seed: 42}
}

// FitForest trains the ensemble on feature matrix X and targets y. Each tree
// sees a bootstrap sample of the rows. Rows must be non-empty and of uniform
// width.
func FitForest(X [][]float64, y []float64, cfg ForestConfig) (*Forest, error) {
	if len(X) == 0 {
		return nil, fmt.Errorf("empty training set")
	}
	if len(X) != len(y) {
		return nil, fmt.Errorf("feature/target length mismatch: %d vs %d", len(X), len(y))
	}
	width := len(X[0])
	for i, row := range X {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d features, want %d", i, len(row), width)
		}
	}
	if cfg.Trees <= 0 {
		cfg.Trees = 100
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 8
	}
	if cfg.MinLeaf <= 0 {
		cfg.MinLeaf = 1
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	f := &Forest{Trees: make([]*treeNode, 0, cfg.Trees), NumFeatures: width}
	for t := 0; t < cfg.Trees; t++ {
		idx := make([]int, len(X))
		for i := range idx {
			idx[i] = rng.Intn(len(X))
		}
		f.Trees = append(f.Trees, buildTree(X, y, idx, cfg.MaxDepth, cfg.MinLeaf))
	}
	return f, nil
}

// Predict returns the mean prediction across all trees.
func (f *Forest) Predict(x []float64) float64 {
	sum := 0.0
	for _, t := range f.Trees {
		sum += t.predict(x)
	}
	return sum / float64(len(f.Trees))
}

func (n *treeNode) predict(x []float64) float64 {
	for !n.Leaf {
		// NaN feature values fail the comparison and descend right,
		// grouping them with the high side of the split
		if x[n.Feature] < n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

func buildTree(X [][]float64, y []float64, idx []int, depth, minLeaf int) *treeNode {
	if depth == 0 || len(idx) <= minLeaf || constantTarget(y, idx) {
		return &treeNode{Leaf: true, Value: meanTarget(y, idx)}
	}

	feature, threshold, ok := bestSplit(X, y, idx, minLeaf)
	if !ok {
		return &treeNode{Leaf: true, Value: meanTarget(y, idx)}
	}

	left := make([]int, 0, len(idx))
	right := make([]int, 0, len(idx))
	for _, i := range idx {
		if X[i][feature] < threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return &treeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      buildTree(X, y, left, depth-1, minLeaf),
		Right:     buildTree(X, y, right, depth-1, minLeaf),
	}
}

// bestSplit scans every feature and candidate threshold for the split with
// the lowest total squared error. Candidate thresholds are midpoints between
// consecutive distinct feature values.
func bestSplit(X [][]float64, y []float64, idx []int, minLeaf int) (int, float64, bool) {
	bestSSE := math.Inf(1)
	bestFeature := -1
	bestThreshold := 0.0

	width := len(X[idx[0]])
	vals := make([]float64, 0, len(idx))
	for feat := 0; feat < width; feat++ {
		vals = vals[:0]
		for _, i := range idx {
			v := X[i][feat]
			if !math.IsNaN(v) {
				vals = append(vals, v)
			}
		}
		if len(vals) < 2 {
			continue
		}
		sort.Float64s(vals)
		for k := 1; k < len(vals); k++ {
			if vals[k] == vals[k-1] {
				continue
			}
			thr := (vals[k] + vals[k-1]) / 2
			sse, nl, nr := splitSSE(X, y, idx, feat, thr)
			if nl < minLeaf || nr < minLeaf {
				continue
			}
			if sse < bestSSE {
				bestSSE = sse
				bestFeature = feat
				bestThreshold = thr
			}
		}
	}
	return bestFeature, bestThreshold, bestFeature >= 0
}

func splitSSE(X [][]float64, y []float64, idx []int, feat int, thr float64) (sse float64, nl, nr int) {
	var sumL, sumL2, sumR, sumR2 float64
	for _, i := range idx {
		v := y[i]
		if X[i][feat] < thr {
			sumL += v
			sumL2 += v * v
			nl++
		} else {
			sumR += v
			sumR2 += v * v
			nr++
		}
	}
	if nl > 0 {
		sse += sumL2 - sumL*sumL/float64(nl)
	}
	if nr > 0 {
		sse += sumR2 - sumR*sumR/float64(nr)
	}
	return sse, nl, nr
}

func meanTarget(y []float64, idx []int) float64 {
	sum := 0.0
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}

func constantTarget(y []float64, idx []int) bool {
	for _, i := range idx[1:] {
		if y[i] != y[idx[0]] {
			return false
		}
	}
	return true
}
