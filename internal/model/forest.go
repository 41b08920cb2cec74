// Package model loads and evaluates the pre-trained random forest that
// estimates rain amount from a feature row.
package model

import (
	"fmt"
	"math"
	"slices"
)

// Format identifies the artifact layout this package reads.
const Format = "rain-forest/v1"

const leaf = -1

// Node is one entry of a tree's flat node table. A node whose children are
// both -1 is a leaf and yields Value; otherwise rows with
// x[Feature] <= Threshold go Left and the rest go Right.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

func (n Node) isLeaf() bool {
	return n.Left == leaf && n.Right == leaf
}

type Tree struct {
	Nodes []Node `json:"nodes"`
}

// validate checks that every walk from the root ends at a leaf and only
// reads features in [0, width). Children must sit after their parent, which
// rules out cycles.
func (t Tree) validate(width int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("%w: no nodes", ErrMalformedTree)
	}
	for i, n := range t.Nodes {
		if n.isLeaf() {
			if math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
				return fmt.Errorf("%w: node %d has non-finite value", ErrMalformedTree, i)
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= width {
			return fmt.Errorf("%w: node %d splits on feature %d, want [0,%d)", ErrMalformedTree, i, n.Feature, width)
		}
		for _, child := range []int{n.Left, n.Right} {
			if child <= i || child >= len(t.Nodes) {
				return fmt.Errorf("%w: node %d has child %d out of range", ErrMalformedTree, i, child)
			}
		}
	}
	return nil
}

func (t Tree) predict(x []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.isLeaf() {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// Forest is an immutable ensemble of regression trees. The prediction is the
// mean of the tree outputs. Safe for concurrent use once loaded.
type Forest struct {
	name     string
	features []string
	trees    []Tree
}

// NewForest builds a forest trained on the given feature layout and validates
// every tree.
func NewForest(name string, features []string, trees []Tree) (*Forest, error) {
	if len(trees) == 0 {
		return nil, ErrEmptyForest
	}
	for i, t := range trees {
		if err := t.validate(len(features)); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return &Forest{
		name:     name,
		features: slices.Clone(features),
		trees:    slices.Clone(trees),
	}, nil
}

func (f *Forest) Name() string {
	return f.name
}

// NumFeatures is the input width the forest was trained on.
func (f *Forest) NumFeatures() int {
	return len(f.features)
}

// Features returns a copy of the trained feature layout.
func (f *Forest) Features() []string {
	return slices.Clone(f.features)
}

func (f *Forest) NumTrees() int {
	return len(f.trees)
}

// Predict returns the forest estimate for one positional feature row.
func (f *Forest) Predict(x []float64) (float64, error) {
	if len(x) != len(f.features) {
		return 0, fmt.Errorf("%w: got %d values, model expects %d", ErrShape, len(x), len(f.features))
	}

	var sum float64
	for _, t := range f.trees {
		sum += t.predict(x)
	}
	return sum / float64(len(f.trees)), nil
}
