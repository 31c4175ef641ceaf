// AngelaMos | 2026
// model.go

package paywall

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

var (
	ErrAlreadyTrained = errors.New("model already trained")
	ErrNoTrainingData = errors.New("no training data")
)

// TrainingDataSource supplies labeled feature rows for model fitting.
// Rows must be exactly FeatureCount wide with binary (0/1) labels.
type TrainingDataSource interface {
	TrainingData(ctx context.Context) (features [][]float64, labels []int, err error)
}

// DecisionTree is a CART-style binary classifier split on Gini impurity.
// Train fits it once; after that the tree is immutable and safe for
// concurrent Predict calls without synchronization.
type DecisionTree struct {
	root     *treeNode
	maxDepth int
}

type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	leaf      bool
	grant     bool
}

func NewDecisionTree(maxDepth int) *DecisionTree {
	if maxDepth < 1 {
		maxDepth = 5
	}

	return &DecisionTree{maxDepth: maxDepth}
}

// Trained reports whether Train has completed.
func (t *DecisionTree) Trained() bool {
	return t.root != nil
}

func (t *DecisionTree) Train(features [][]float64, labels []int) error {
	if t.root != nil {
		return ErrAlreadyTrained
	}
	if len(features) == 0 || len(features) != len(labels) {
		return ErrNoTrainingData
	}
	for i, row := range features {
		if len(row) != FeatureCount {
			return fmt.Errorf(
				"training row %d: want %d features, got %d",
				i, FeatureCount, len(row),
			)
		}
	}

	t.root = grow(features, labels, t.maxDepth)

	return nil
}

// TrainFrom fits the tree from a pluggable data source.
func (t *DecisionTree) TrainFrom(
	ctx context.Context,
	source TrainingDataSource,
) error {
	features, labels, err := source.TrainingData(ctx)
	if err != nil {
		return fmt.Errorf("load training data: %w", err)
	}

	return t.Train(features, labels)
}

// Predict classifies a feature vector into a grant suggestion. A vector of
// the wrong width means an internal bug upstream, so it conservatively
// yields false rather than an error. An untrained tree also yields false.
func (t *DecisionTree) Predict(features []float64) bool {
	if len(features) != FeatureCount || t.root == nil {
		return false
	}

	node := t.root
	for !node.leaf {
		if features[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}

	return node.grant
}

func grow(features [][]float64, labels []int, depth int) *treeNode {
	positives := 0
	for _, l := range labels {
		if l == 1 {
			positives++
		}
	}

	if depth == 0 || positives == 0 || positives == len(labels) {
		return &treeNode{leaf: true, grant: positives*2 > len(labels)}
	}

	feature, threshold, ok := bestSplit(features, labels)
	if !ok {
		return &treeNode{leaf: true, grant: positives*2 > len(labels)}
	}

	var (
		leftF, rightF [][]float64
		leftL, rightL []int
	)
	for i, row := range features {
		if row[feature] <= threshold {
			leftF = append(leftF, row)
			leftL = append(leftL, labels[i])
		} else {
			rightF = append(rightF, row)
			rightL = append(rightL, labels[i])
		}
	}

	if len(leftF) == 0 || len(rightF) == 0 {
		return &treeNode{leaf: true, grant: positives*2 > len(labels)}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      grow(leftF, leftL, depth-1),
		right:     grow(rightF, rightL, depth-1),
	}
}

func bestSplit(features [][]float64, labels []int) (int, float64, bool) {
	bestGini := gini(labels)
	bestFeature := -1
	bestThreshold := 0.0

	for f := 0; f < FeatureCount; f++ {
		values := make([]float64, len(features))
		for i, row := range features {
			values[i] = row[f]
		}
		sort.Float64s(values)

		for i := 1; i < len(values); i++ {
			if values[i] == values[i-1] {
				continue
			}
			threshold := (values[i] + values[i-1]) / 2

			var leftL, rightL []int
			for j, row := range features {
				if row[f] <= threshold {
					leftL = append(leftL, labels[j])
				} else {
					rightL = append(rightL, labels[j])
				}
			}

			n := float64(len(labels))
			weighted := float64(len(leftL))/n*gini(leftL) +
				float64(len(rightL))/n*gini(rightL)
			if weighted < bestGini {
				bestGini = weighted
				bestFeature = f
				bestThreshold = threshold
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}

	return bestFeature, bestThreshold, true
}

func gini(labels []int) float64 {
	if len(labels) == 0 {
		return 0
	}

	positives := 0
	for _, l := range labels {
		if l == 1 {
			positives++
		}
	}

	p := float64(positives) / float64(len(labels))

	return 2 * p * (1 - p)
}
