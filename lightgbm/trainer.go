package lightgbm

import (
	"math"
	"sort"

	"github.com/Naren8520/mlforecast/pkg/errors"
	"github.com/Naren8520/mlforecast/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// TrainingParams contains the training hyperparameters.
type TrainingParams struct {
	NumIterations int     `json:"num_iterations"`
	LearningRate  float64 `json:"learning_rate"`
	NumLeaves     int     `json:"num_leaves"`
	MaxDepth      int     `json:"max_depth"`
	MinDataInLeaf int     `json:"min_data_in_leaf"`

	// Regularization
	Lambda         float64 `json:"lambda_l2"`
	MinGainToSplit float64 `json:"min_gain_to_split"`

	Objective string `json:"objective"`

	// Seed and Deterministic are accepted for LightGBM parameter
	// compatibility. Training here has no sampling step, so every run is
	// reproducible regardless of their values; Seed becomes meaningful once
	// row or feature subsampling is added.
	Seed          int  `json:"seed"`
	Deterministic bool `json:"deterministic"`

	Verbosity int `json:"verbosity"`
}

// SplitInfo contains information about a potential split.
type SplitInfo struct {
	Feature    int
	Threshold  float64
	Gain       float64
	LeftCount  int
	RightCount int
	LeftGrad   float64
	RightGrad  float64
	LeftHess   float64
	RightHess  float64
}

// Trainer implements the boosting training loop: at each iteration it
// computes gradients of the objective at the current ensemble prediction and
// fits one tree to them.
type Trainer struct {
	params TrainingParams

	// Data
	X *mat.Dense
	y []float64

	// Per-sample state
	gradients   []float64
	hessians    []float64
	predictions []float64 // cached ensemble prediction per sample

	trees     []Tree
	iteration int

	objective ObjectiveFunction
	initScore float64
}

// NewTrainer creates a trainer with defaults filled in for zero-valued params.
func NewTrainer(params TrainingParams) *Trainer {
	if params.NumIterations == 0 {
		params.NumIterations = 100
	}
	if params.LearningRate == 0 {
		params.LearningRate = 0.1
	}
	if params.NumLeaves == 0 {
		params.NumLeaves = 31
	}
	if params.MinDataInLeaf == 0 {
		params.MinDataInLeaf = 20
	}

	return &Trainer{params: params}
}

// Fit trains the boosted ensemble on X and the n×1 target matrix y.
func (t *Trainer) Fit(X, y mat.Matrix) error {
	rows, cols := X.Dims()
	yRows, yCols := y.Dims()
	if rows == 0 || cols == 0 {
		return errors.NewModelError("Trainer.Fit", "empty training data", errors.ErrEmptyData)
	}
	if yRows != rows {
		return errors.NewDimensionError("Trainer.Fit", rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewDimensionError("Trainer.Fit", 1, yCols, 1)
	}

	t.X = mat.DenseCopyOf(X)
	t.y = make([]float64, rows)
	for i := 0; i < rows; i++ {
		t.y[i] = y.At(i, 0)
	}
	if err := errors.CheckNumericalStability("Trainer.Fit", t.y, 0); err != nil {
		return err
	}

	objFunc, err := CreateObjectiveFunction(t.params.Objective)
	if err != nil {
		return err
	}
	t.objective = objFunc
	t.initScore = t.objective.GetInitScore(t.y)

	t.gradients = make([]float64, rows)
	t.hessians = make([]float64, rows)
	t.predictions = make([]float64, rows)
	for i := range t.predictions {
		t.predictions[i] = t.initScore
	}
	t.trees = t.trees[:0]

	logger := log.GetLoggerWithName("lightgbm.trainer")

	for iter := 0; iter < t.params.NumIterations; iter++ {
		t.iteration = iter
		t.calculateGradients()

		tree := t.buildTree()
		t.trees = append(t.trees, tree)
		t.updatePredictions(&tree)

		if t.params.Verbosity > 0 && iter%10 == 0 {
			logger.Debug("Training progress",
				log.IterationKey, iter,
				"loss", t.calculateLoss())
		}
	}

	return nil
}

// calculateGradients computes gradients and hessians at the cached predictions.
func (t *Trainer) calculateGradients() {
	for i := range t.y {
		t.gradients[i] = t.objective.CalculateGradient(t.predictions[i], t.y[i])
		t.hessians[i] = t.objective.CalculateHessian(t.predictions[i], t.y[i])
	}
}

// updatePredictions adds the new tree's contribution to the prediction cache.
func (t *Trainer) updatePredictions(tree *Tree) {
	_, cols := t.X.Dims()
	features := make([]float64, cols)
	for i := range t.predictions {
		for j := 0; j < cols; j++ {
			features[j] = t.X.At(i, j)
		}
		t.predictions[i] += tree.Predict(features)
	}
}

// buildTree constructs a single decision tree on the current gradients.
func (t *Trainer) buildTree() Tree {
	tree := Tree{
		TreeIndex:     t.iteration,
		ShrinkageRate: t.params.LearningRate,
		Nodes:         []Node{},
	}

	rows, _ := t.X.Dims()
	rootIndices := make([]int, rows)
	for i := 0; i < rows; i++ {
		rootIndices[i] = i
	}

	t.buildNode(&tree, rootIndices, -1, 0)
	tree.NumLeaves = countLeaves(&tree)

	return tree
}

// buildNode recursively grows the tree and returns the new node's index.
func (t *Trainer) buildNode(tree *Tree, indices []int, parentIdx, depth int) int {
	nodeIdx := len(tree.Nodes)

	if t.shouldStop(tree, indices, depth) {
		tree.Nodes = append(tree.Nodes, t.makeLeaf(nodeIdx, parentIdx, indices))
		return nodeIdx
	}

	bestSplit := t.findBestSplit(indices)
	if bestSplit.Gain < t.params.MinGainToSplit || bestSplit.Gain <= 0 {
		tree.Nodes = append(tree.Nodes, t.makeLeaf(nodeIdx, parentIdx, indices))
		return nodeIdx
	}

	// Children start at -1 so countOpenLeaves sees this branch as pending
	// until both subtrees are attached below.
	tree.Nodes = append(tree.Nodes, Node{
		NodeID:       nodeIdx,
		ParentID:     parentIdx,
		NodeType:     NumericalNode,
		SplitFeature: bestSplit.Feature,
		Threshold:    bestSplit.Threshold,
		Gain:         bestSplit.Gain,
		LeftChild:    -1,
		RightChild:   -1,
	})

	leftIndices, rightIndices := t.splitData(indices, bestSplit)

	leftChild := t.buildNode(tree, leftIndices, nodeIdx, depth+1)
	rightChild := t.buildNode(tree, rightIndices, nodeIdx, depth+1)

	tree.Nodes[nodeIdx].LeftChild = leftChild
	tree.Nodes[nodeIdx].RightChild = rightChild

	return nodeIdx
}

func (t *Trainer) shouldStop(tree *Tree, indices []int, depth int) bool {
	if t.params.MaxDepth > 0 && depth >= t.params.MaxDepth {
		return true
	}
	if len(indices) < 2*t.params.MinDataInLeaf {
		return true
	}
	if t.params.NumLeaves > 0 && countOpenLeaves(tree)+1 >= t.params.NumLeaves {
		return true
	}
	return false
}

func (t *Trainer) makeLeaf(nodeIdx, parentIdx int, indices []int) Node {
	return Node{
		NodeID:     nodeIdx,
		ParentID:   parentIdx,
		NodeType:   LeafNode,
		LeafValue:  t.calculateLeafValue(indices),
		LeafCount:  len(indices),
		LeftChild:  -1,
		RightChild: -1,
	}
}

// findBestSplit searches all features for the highest-gain split.
func (t *Trainer) findBestSplit(indices []int) SplitInfo {
	_, cols := t.X.Dims()
	bestSplit := SplitInfo{Gain: -math.MaxFloat64}

	for j := 0; j < cols; j++ {
		split := t.findBestSplitForFeature(indices, j)
		if split.Gain > bestSplit.Gain {
			bestSplit = split
		}
	}

	return bestSplit
}

// findBestSplitForFeature scans the sorted feature values of the node's
// samples and evaluates every distinct threshold.
func (t *Trainer) findBestSplitForFeature(indices []int, feature int) SplitInfo {
	type valueIdx struct {
		value float64
		idx   int
	}
	values := make([]valueIdx, len(indices))
	for i, idx := range indices {
		values[i] = valueIdx{value: t.X.At(idx, feature), idx: idx}
	}

	sort.Slice(values, func(i, j int) bool {
		if values[i].value != values[j].value {
			return values[i].value < values[j].value
		}
		// Tie-break on index so a fixed seed reproduces the same tree.
		return values[i].idx < values[j].idx
	})

	totalGrad := 0.0
	totalHess := 0.0
	for _, idx := range indices {
		totalGrad += t.gradients[idx]
		totalHess += t.hessians[idx]
	}

	bestSplit := SplitInfo{
		Feature: feature,
		Gain:    -math.MaxFloat64,
	}

	leftGrad := 0.0
	leftHess := 0.0
	leftCount := 0

	for i := 0; i < len(values)-1; i++ {
		idx := values[i].idx
		leftGrad += t.gradients[idx]
		leftHess += t.hessians[idx]
		leftCount++

		// Cannot split between equal values.
		if values[i].value == values[i+1].value {
			continue
		}

		rightCount := len(indices) - leftCount
		if leftCount < t.params.MinDataInLeaf || rightCount < t.params.MinDataInLeaf {
			continue
		}

		rightGrad := totalGrad - leftGrad
		rightHess := totalHess - leftHess

		gain := t.calculateSplitGain(leftGrad, leftHess, rightGrad, rightHess, totalGrad, totalHess)
		if gain > bestSplit.Gain {
			bestSplit.Gain = gain
			bestSplit.Threshold = (values[i].value + values[i+1].value) / 2
			bestSplit.LeftCount = leftCount
			bestSplit.RightCount = rightCount
			bestSplit.LeftGrad = leftGrad
			bestSplit.RightGrad = rightGrad
			bestSplit.LeftHess = leftHess
			bestSplit.RightHess = rightHess
		}
	}

	return bestSplit
}

// calculateSplitGain applies the LightGBM split gain formula.
func (t *Trainer) calculateSplitGain(leftGrad, leftHess, rightGrad, rightHess, totalGrad, totalHess float64) float64 {
	lambda := t.params.Lambda

	leftScore := (leftGrad * leftGrad) / (leftHess + lambda)
	rightScore := (rightGrad * rightGrad) / (rightHess + lambda)
	totalScore := (totalGrad * totalGrad) / (totalHess + lambda)

	return 0.5 * (leftScore + rightScore - totalScore)
}

func (t *Trainer) splitData(indices []int, split SplitInfo) ([]int, []int) {
	leftIndices := make([]int, 0, split.LeftCount)
	rightIndices := make([]int, 0, split.RightCount)

	for _, idx := range indices {
		if t.X.At(idx, split.Feature) <= split.Threshold {
			leftIndices = append(leftIndices, idx)
		} else {
			rightIndices = append(rightIndices, idx)
		}
	}

	return leftIndices, rightIndices
}

// calculateLeafValue returns the Newton step for the leaf with L2 regularization.
func (t *Trainer) calculateLeafValue(indices []int) float64 {
	sumGrad := 0.0
	sumHess := 0.0

	for _, idx := range indices {
		sumGrad += t.gradients[idx]
		sumHess += t.hessians[idx]
	}

	const epsilon = 1e-10
	if math.Abs(sumHess) < epsilon {
		sumHess = epsilon
	}

	return -sumGrad / (sumHess + t.params.Lambda)
}

// calculateLoss returns the mean training loss at the cached predictions.
func (t *Trainer) calculateLoss() float64 {
	loss := 0.0
	for i := range t.y {
		loss += t.objective.CalculateLoss(t.predictions[i], t.y[i])
	}
	return loss / float64(len(t.y))
}

func countLeaves(tree *Tree) int {
	count := 0
	for i := range tree.Nodes {
		if tree.Nodes[i].NodeType == LeafNode {
			count++
		}
	}
	return count
}

// countOpenLeaves counts nodes that currently terminate a branch, including
// internal nodes whose children have not been attached yet.
func countOpenLeaves(tree *Tree) int {
	count := 0
	for i := range tree.Nodes {
		n := &tree.Nodes[i]
		if n.NodeType == LeafNode || (n.LeftChild == -1 && n.RightChild == -1) {
			count++
		}
	}
	return count
}

// GetModel returns the trained model.
func (t *Trainer) GetModel() *Model {
	model := NewModel()
	model.Trees = t.trees
	model.NumIteration = len(t.trees)
	model.NumFeatures = t.X.RawMatrix().Cols
	model.Objective = t.objective.Name()
	model.LearningRate = t.params.LearningRate
	model.InitScore = t.initScore
	return model
}
