// Package lightgbm implements gradient boosted decision trees for regression
// with a scikit-learn compatible API. It covers the subset of LightGBM used
// for forecasting on tabular lag features: L2/L1 objectives, exact greedy
// split search and leaf-wise growth with shrinkage.
package lightgbm

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// NodeType represents the type of a tree node.
type NodeType int

const (
	// LeafNode represents a terminal node with a value.
	LeafNode NodeType = iota
	// NumericalNode represents a node with a numerical split.
	NumericalNode
)

// Node represents a single node in a decision tree.
type Node struct {
	NodeID     int      // Unique identifier for the node
	ParentID   int      // Parent node ID (-1 for root)
	LeftChild  int      // Left child node ID (-1 if leaf)
	RightChild int      // Right child node ID (-1 if leaf)
	NodeType   NodeType // Type of the node

	// Split information (for non-leaf nodes)
	SplitFeature int     // Feature index used for splitting
	Threshold    float64 // Threshold value: x <= threshold goes left
	DefaultLeft  bool    // Default direction for missing values
	Gain         float64 // Split gain (reduction in loss)

	// Leaf information (for leaf nodes)
	LeafValue float64 // Raw value at leaf node, before shrinkage
	LeafCount int     // Number of samples at leaf
}

// IsLeaf returns true if the node is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.LeftChild == -1 && n.RightChild == -1
}

// Tree represents a single decision tree in the ensemble.
type Tree struct {
	TreeIndex     int     // Index of the tree in the ensemble
	NumLeaves     int     // Number of leaf nodes
	ShrinkageRate float64 // Learning rate applied to this tree

	Nodes []Node // All nodes, root at index 0
}

// Predict returns this tree's (shrunk) contribution for a single sample.
func (t *Tree) Predict(features []float64) float64 {
	nodeID := 0

	for nodeID >= 0 && nodeID < len(t.Nodes) {
		node := &t.Nodes[nodeID]

		if node.IsLeaf() {
			return node.LeafValue * t.ShrinkageRate
		}

		featureValue := features[node.SplitFeature]
		if math.IsNaN(featureValue) {
			if node.DefaultLeft {
				nodeID = node.LeftChild
			} else {
				nodeID = node.RightChild
			}
			continue
		}

		if featureValue <= node.Threshold {
			nodeID = node.LeftChild
		} else {
			nodeID = node.RightChild
		}
	}

	return 0.0
}

// Model is a trained boosted-tree ensemble.
type Model struct {
	Trees        []Tree
	NumIteration int
	NumFeatures  int
	Objective    string
	LearningRate float64

	// InitScore is the base prediction before any tree contribution
	// (mean of targets for L2, median for L1).
	InitScore float64
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{}
}

// PredictRow returns the ensemble prediction for a single feature vector.
func (m *Model) PredictRow(features []float64) float64 {
	pred := m.InitScore
	for i := range m.Trees {
		pred += m.Trees[i].Predict(features)
	}
	return pred
}

// Predict returns an n×1 matrix of predictions for the rows of X.
func (m *Model) Predict(X mat.Matrix) *mat.Dense {
	rows, cols := X.Dims()
	out := mat.NewDense(rows, 1, nil)
	features := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			features[j] = X.At(i, j)
		}
		out.Set(i, 0, m.PredictRow(features))
	}
	return out
}
