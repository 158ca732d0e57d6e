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

package projection

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"d7y.io/explorer/internal/dferrors"
)

// Components is the number of principal components kept.
const Components = 2

// Project returns the scores of the centered features on the first two
// principal components, one row per sample. The sign of every component is
// chosen so that its largest magnitude loading is positive.
func Project(features *mat.Dense) (*mat.Dense, error) {
	n, d := features.Dims()
	if n < 2 || d < Components {
		return nil, fmt.Errorf("%w: projection needs at least 2 samples and 2 features, got %dx%d", dferrors.ErrDegenerateInput, n, d)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(features, nil); !ok {
		return nil, errors.New("principal component analysis failed")
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	directions := mat.DenseCopyOf(vecs.Slice(0, d, 0, Components))
	for j := 0; j < Components; j++ {
		fixSign(directions, j)
	}

	centered := mat.DenseCopyOf(features)
	for j := 0; j < d; j++ {
		mean := stat.Mean(mat.Col(nil, j, features), nil)
		for i := 0; i < n; i++ {
			centered.Set(i, j, centered.At(i, j)-mean)
		}
	}

	var scores mat.Dense
	scores.Mul(centered, directions)
	return &scores, nil
}

// fixSign flips column j when its largest magnitude entry is negative.
func fixSign(m *mat.Dense, j int) {
	rows, _ := m.Dims()
	largest := 0
	for i := 1; i < rows; i++ {
		if math.Abs(m.At(i, j)) > math.Abs(m.At(largest, j)) {
			largest = i
		}
	}

	if m.At(largest, j) >= 0 {
		return
	}

	for i := 0; i < rows; i++ {
		m.Set(i, j, -m.At(i, j))
	}
}

// ExplainedVarianceRatio returns the share of the total feature variance held
// by every column of the projection.
func ExplainedVarianceRatio(features, projection *mat.Dense) ([]float64, error) {
	_, d := features.Dims()
	var total float64
	for j := 0; j < d; j++ {
		v, err := stats.SampleVariance(mat.Col(nil, j, features))
		if err != nil {
			return nil, err
		}
		total += v
	}

	if total == 0 {
		return nil, fmt.Errorf("%w: features have no variance", dferrors.ErrDegenerateInput)
	}

	_, k := projection.Dims()
	ratio := make([]float64, k)
	for j := range ratio {
		v, err := stats.SampleVariance(mat.Col(nil, j, projection))
		if err != nil {
			return nil, err
		}
		ratio[j] = v / total
	}

	return ratio, nil
}
