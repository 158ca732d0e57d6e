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
	"sort"

	"github.com/sjwhitworth/golearn/base"
	"gonum.org/v1/gonum/floats"

	"d7y.io/explorer/internal/dferrors"
)

// KNNClassifier is a k-nearest neighbors classifier with euclidean distance
// and uniform votes.
type KNNClassifier struct {
	fitted

	k int
	X [][]float64
	y []int
}

// NewKNN creates a KNN classifier with k neighbors.
func NewKNN(k int) *KNNClassifier {
	return &KNNClassifier{k: k}
}

func (m *KNNClassifier) String() string {
	return fmt.Sprintf("KNN(K=%d)", m.k)
}

func (m *KNNClassifier) Fit(grid base.FixedDataGrid) error {
	X, y, err := m.fit(grid)
	if err != nil {
		return err
	}

	if m.k > len(X) {
		return fmt.Errorf("%w: K=%d exceeds %d training samples", dferrors.ErrDegenerateParameter, m.k, len(X))
	}

	m.X, m.y = X, y
	return nil
}

func (m *KNNClassifier) Predict(grid base.FixedDataGrid) (base.FixedDataGrid, error) {
	samples, err := m.samples(grid)
	if err != nil {
		return nil, err
	}

	labels := make([]int, len(samples))
	for i, s := range samples {
		labels[i] = m.vote(s)
	}

	return m.predictions(grid, labels)
}

type neighbor struct {
	index    int
	distance float64
}

// vote returns the majority class of the k nearest training samples,
// equal distances keep the training order.
func (m *KNNClassifier) vote(sample []float64) int {
	neighbors := make([]neighbor, len(m.X))
	for i, x := range m.X {
		neighbors[i] = neighbor{index: i, distance: floats.Distance(sample, x, 2)}
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].distance < neighbors[j].distance
	})

	votes := make([]int, m.classes)
	for _, n := range neighbors[:m.k] {
		votes[m.y[n.index]]++
	}

	return argmax(votes)
}
