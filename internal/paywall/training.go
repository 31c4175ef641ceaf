// AngelaMos | 2026
// training.go

package paywall

import (
	"context"
	"fmt"
	"math/rand"
)

// SyntheticSource generates seeded training rows that encode the engaged-user
// heuristic: long average view time on popular content with a real
// interaction history suggests fallback eligibility.
type SyntheticSource struct {
	Samples int
	Seed    int64
}

func (s SyntheticSource) TrainingData(
	_ context.Context,
) ([][]float64, []int, error) {
	samples := s.Samples
	if samples <= 0 {
		samples = 1000
	}

	rng := rand.New(rand.NewSource(s.Seed))

	features := make([][]float64, samples)
	labels := make([]int, samples)
	for i := range features {
		row := []float64{
			rng.Float64() * 365, // subscription tenure days
			rng.Float64() * 300, // avg view time seconds
			rng.Float64(),       // content popularity
			rng.Float64() * 30,  // days since last seen
			rng.Float64() * 100, // total interactions
			rng.Float64() * 10,  // content avg interaction score
		}
		features[i] = row

		if row[1] > 100 && row[2] > 0.5 && row[4] > 10 {
			labels[i] = 1
		}
	}

	return features, labels, nil
}

// TrainingSample is one labeled row read back from stored behavior history.
type TrainingSample struct {
	Features []float64
	Label    int
}

// TrainingStore reads labeled aggregate rows from persisted interactions.
type TrainingStore interface {
	TrainingSamples(ctx context.Context) ([]TrainingSample, error)
}

// HistoricalSource adapts stored behavior aggregates into training data.
type HistoricalSource struct {
	Store TrainingStore
}

func (h HistoricalSource) TrainingData(
	ctx context.Context,
) ([][]float64, []int, error) {
	samples, err := h.Store.TrainingSamples(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("historical samples: %w", err)
	}

	features := make([][]float64, len(samples))
	labels := make([]int, len(samples))
	for i, s := range samples {
		features[i] = s.Features
		labels[i] = s.Label
	}

	return features, labels, nil
}
