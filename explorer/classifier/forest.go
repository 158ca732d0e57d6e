/*
 *     Copyright 2023 The Dragonfly Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package classifier

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sjwhitworth/golearn/base"
	"gonum.org/v1/gonum/floats"
)

// RandomForestClassifier averages the class probabilities of bootstrapped gini trees.
type RandomForestClassifier struct {
	fitted

	nEstimators int
	maxDepth    int
	seed        int64
	trees       []*tree
}

// Option is a functional option for configuring the random forest.
type Option func(rf *RandomForestClassifier)

// WithSeed sets the seed of bootstrap sampling and feature selection.
func WithSeed(seed int64) Option {
	return func(rf *RandomForestClassifier) {
		rf.seed = seed
	}
}

// NewRandomForest creates a random forest of nEstimators trees no deeper than maxDepth.
func NewRandomForest(nEstimators, maxDepth int, options ...Option) *RandomForestClassifier {
	rf := &RandomForestClassifier{
		nEstimators: nEstimators,
		maxDepth:    maxDepth,
		seed:        RandomSeed,
	}

	for _, opt := range options {
		opt(rf)
	}

	return rf
}

func (rf *RandomForestClassifier) String() string {
	return fmt.Sprintf("RandomForest(max_depth=%d, n_estimators=%d)", rf.maxDepth, rf.nEstimators)
}

func (rf *RandomForestClassifier) Fit(grid base.FixedDataGrid) error {
	X, y, err := rf.fit(grid)
	if err != nil {
		return err
	}

	// Every fit restarts the sequence, so equal inputs grow equal forests.
	rng := rand.New(rand.NewSource(rf.seed))
	maxFeatures := int(math.Sqrt(float64(len(X[0]))))
	if maxFeatures < 1 {
		maxFeatures = 1
	}

	rf.trees = make([]*tree, rf.nEstimators)
	for t := range rf.trees {
		index := make([]int, len(X))
		for i := range index {
			index[i] = rng.Intn(len(X))
		}

		rf.trees[t] = newTree(rf.maxDepth, maxFeatures, rf.classes, rng)
		rf.trees[t].fit(X, y, index)
	}

	return nil
}

func (rf *RandomForestClassifier) Predict(grid base.FixedDataGrid) (base.FixedDataGrid, error) {
	samples, err := rf.samples(grid)
	if err != nil {
		return nil, err
	}

	labels := make([]int, len(samples))
	for i, s := range samples {
		probability := make([]float64, rf.classes)
		for _, t := range rf.trees {
			floats.Add(probability, t.predict(s))
		}
		labels[i] = argmax(probability)
	}

	return rf.predictions(grid, labels)
}
