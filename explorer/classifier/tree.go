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
	"math"
	"math/rand"
	"sort"
)

// node is a split node when children are set, otherwise a leaf.
type node struct {
	feature   int
	threshold float64
	left      *node
	right     *node

	// distribution is the class probability of a leaf.
	distribution []float64
}

// tree is a CART decision tree with gini impurity.
type tree struct {
	maxDepth    int
	maxFeatures int
	classes     int
	rng         *rand.Rand
	root        *node
}

func newTree(maxDepth, maxFeatures, classes int, rng *rand.Rand) *tree {
	return &tree{
		maxDepth:    maxDepth,
		maxFeatures: maxFeatures,
		classes:     classes,
		rng:         rng,
	}
}

// fit grows the tree on the rows of X listed in index, duplicates included.
func (t *tree) fit(X [][]float64, y []int, index []int) {
	t.root = t.grow(X, y, index, 0)
}

func (t *tree) predict(sample []float64) []float64 {
	n := t.root
	for n.left != nil {
		if sample[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}

	return n.distribution
}

func (t *tree) grow(X [][]float64, y []int, index []int, depth int) *node {
	counts := make([]float64, t.classes)
	for _, i := range index {
		counts[y[i]]++
	}

	if depth >= t.maxDepth || len(index) < 2 || gini(counts, float64(len(index))) == 0 {
		return t.leaf(counts, len(index))
	}

	feature, threshold, ok := t.split(X, y, index, counts)
	if !ok {
		return t.leaf(counts, len(index))
	}

	var left, right []int
	for _, i := range index {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &node{
		feature:   feature,
		threshold: threshold,
		left:      t.grow(X, y, left, depth+1),
		right:     t.grow(X, y, right, depth+1),
	}
}

func (t *tree) leaf(counts []float64, total int) *node {
	distribution := make([]float64, len(counts))
	for c, count := range counts {
		distribution[c] = count / float64(total)
	}

	return &node{distribution: distribution}
}

// split finds the threshold with the lowest weighted child impurity among
// maxFeatures random features. Constant features are not counted, so the
// search goes on until a non-constant feature is visited.
func (t *tree) split(X [][]float64, y []int, index []int, counts []float64) (int, float64, bool) {
	var (
		bestFeature   int
		bestThreshold float64
		found         bool
		visited       int
	)
	bestScore := math.Inf(1)
	total := float64(len(index))

	sorted := make([]int, len(index))
	for _, feature := range t.rng.Perm(len(X[0])) {
		if visited >= t.maxFeatures && found {
			break
		}

		copy(sorted, index)
		sort.SliceStable(sorted, func(a, b int) bool {
			return X[sorted[a]][feature] < X[sorted[b]][feature]
		})

		if X[sorted[0]][feature] == X[sorted[len(sorted)-1]][feature] {
			continue
		}
		visited++

		left := make([]float64, len(counts))
		right := append([]float64(nil), counts...)
		for k := 0; k < len(sorted)-1; k++ {
			label := y[sorted[k]]
			left[label]++
			right[label]--

			v, next := X[sorted[k]][feature], X[sorted[k+1]][feature]
			if v == next {
				continue
			}

			nl := float64(k + 1)
			nr := total - nl
			score := nl*gini(left, nl) + nr*gini(right, nr)
			if score < bestScore {
				bestScore = score
				bestFeature = feature
				bestThreshold = v/2 + next/2
				if bestThreshold == next {
					bestThreshold = v
				}
				found = true
			}
		}
	}

	return bestFeature, bestThreshold, found
}

func gini(counts []float64, total float64) float64 {
	if total == 0 {
		return 0
	}

	impurity := 1.0
	for _, count := range counts {
		p := count / total
		impurity -= p * p
	}

	return impurity
}
