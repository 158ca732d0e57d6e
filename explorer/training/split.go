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

package training

import (
	"fmt"
	"math"
	"math/rand"

	"d7y.io/explorer/internal/dferrors"
)

// Split permutes the row indices of n samples with seed and returns the
// train and test indices, the test set holds ceil(testSize * n) rows.
func Split(n int, testSize float64, seed int64) ([]int, []int, error) {
	if n < 2 {
		return nil, nil, fmt.Errorf("%w: %d samples can not be split", dferrors.ErrDegenerateParameter, n)
	}

	if testSize <= 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("%w: test size %v is out of (0, 1)", dferrors.ErrDegenerateParameter, testSize)
	}

	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest >= n {
		return nil, nil, fmt.Errorf("%w: %d samples leave no training set", dferrors.ErrDegenerateParameter, n)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return perm[nTest:], perm[:nTest], nil
}
