// AngelaMos | 2026
// model_test.go

package paywall

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainedTree(t *testing.T) *DecisionTree {
	t.Helper()

	tree := NewDecisionTree(5)
	err := tree.TrainFrom(
		context.Background(),
		SyntheticSource{Samples: 1000, Seed: 42},
	)
	require.NoError(t, err)

	return tree
}

func TestPredictShapeGuard(t *testing.T) {
	tree := trainedTree(t)

	tests := []struct {
		name     string
		features []float64
	}{
		{"nil vector", nil},
		{"empty vector", []float64{}},
		{"five features", []float64{1, 2, 3, 4, 5}},
		{"seven features", []float64{1, 2, 3, 4, 5, 6, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, tree.Predict(tt.features))
		})
	}
}

func TestPredictUntrainedDenies(t *testing.T) {
	tree := NewDecisionTree(5)
	assert.False(t, tree.Trained())
	assert.False(t, tree.Predict(make([]float64, FeatureCount)))
}

func TestTrainOnce(t *testing.T) {
	tree := trainedTree(t)
	assert.True(t, tree.Trained())

	err := tree.Train([][]float64{make([]float64, FeatureCount)}, []int{0})
	assert.ErrorIs(t, err, ErrAlreadyTrained)
}

func TestTrainRejectsBadData(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		err := NewDecisionTree(5).Train(nil, nil)
		assert.ErrorIs(t, err, ErrNoTrainingData)
	})

	t.Run("label mismatch", func(t *testing.T) {
		err := NewDecisionTree(5).Train(
			[][]float64{make([]float64, FeatureCount)},
			[]int{0, 1},
		)
		assert.ErrorIs(t, err, ErrNoTrainingData)
	})

	t.Run("wrong width row", func(t *testing.T) {
		err := NewDecisionTree(5).Train([][]float64{{1, 2}}, []int{0})
		assert.Error(t, err)
	})
}

func TestTrainedTreeSeparatesObviousCases(t *testing.T) {
	tree := trainedTree(t)

	// Deep into the engaged region the synthetic labeling rule marks 1.
	engaged := []float64{200, 280, 0.95, 1, 90, 9}
	assert.True(t, tree.Predict(engaged))

	// And far from it, 0.
	idle := []float64{0, 5, 0.01, 29, 0, 0.1}
	assert.False(t, tree.Predict(idle))
}

func TestSyntheticSourceIsDeterministic(t *testing.T) {
	a, labelsA, err := SyntheticSource{Samples: 50, Seed: 7}.TrainingData(
		context.Background(),
	)
	require.NoError(t, err)

	b, labelsB, err := SyntheticSource{Samples: 50, Seed: 7}.TrainingData(
		context.Background(),
	)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, labelsA, labelsB)

	for _, row := range a {
		assert.Len(t, row, FeatureCount)
	}
}
