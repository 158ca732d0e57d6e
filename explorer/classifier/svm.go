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
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/sjwhitworth/golearn/base"
	"gonum.org/v1/gonum/floats"
)

const (
	// defaultSVMTolerance is the stopping tolerance of the solver.
	defaultSVMTolerance = 1e-3

	// tau replaces non-positive curvature in the solver.
	tau = 1e-12
)

// SVMClassifier is a C-support vector classifier with rbf kernel,
// multiclass problems are solved one-vs-one.
type SVMClassifier struct {
	fitted

	c         float64
	tolerance float64
	gamma     float64
	machines  []*binarySVM

	// constant is the only class seen by Fit, or -1.
	constant int
}

// binarySVM separates class pos (+1) from class neg (-1).
type binarySVM struct {
	pos, neg int
	vectors  [][]float64
	coef     []float64
	rho      float64
}

// NewSVM creates a SVM classifier with regularization c.
func NewSVM(c float64) *SVMClassifier {
	return &SVMClassifier{c: c, tolerance: defaultSVMTolerance, constant: -1}
}

func (m *SVMClassifier) String() string {
	return fmt.Sprintf("SVM(C=%g)", m.c)
}

func (m *SVMClassifier) Fit(grid base.FixedDataGrid) error {
	X, y, err := m.fit(grid)
	if err != nil {
		return err
	}

	gamma, err := scaleGamma(X)
	if err != nil {
		return err
	}
	m.gamma = gamma

	present := distinct(y)
	m.machines = nil
	m.constant = -1
	if len(present) == 1 {
		m.constant = present[0]
		return nil
	}

	kernel := make([][]float64, len(X))
	for i := range X {
		kernel[i] = make([]float64, len(X))
		for j := 0; j <= i; j++ {
			kernel[i][j] = m.kernel(X[i], X[j])
			kernel[j][i] = kernel[i][j]
		}
	}

	for a := 0; a < len(present); a++ {
		for b := a + 1; b < len(present); b++ {
			m.machines = append(m.machines, m.train(X, y, kernel, present[a], present[b]))
		}
	}

	return nil
}

func (m *SVMClassifier) Predict(grid base.FixedDataGrid) (base.FixedDataGrid, error) {
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

func (m *SVMClassifier) vote(sample []float64) int {
	if m.constant >= 0 {
		return m.constant
	}

	votes := make([]int, m.classes)
	for _, machine := range m.machines {
		if m.decision(machine, sample) > 0 {
			votes[machine.pos]++
		} else {
			votes[machine.neg]++
		}
	}

	return argmax(votes)
}

func (m *SVMClassifier) decision(machine *binarySVM, sample []float64) float64 {
	var sum float64
	for i, v := range machine.vectors {
		sum += machine.coef[i] * m.kernel(v, sample)
	}

	return sum - machine.rho
}

func (m *SVMClassifier) kernel(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return math.Exp(-m.gamma * d * d)
}

// train solves the dual problem between classes pos and neg.
func (m *SVMClassifier) train(X [][]float64, y []int, kernel [][]float64, pos, neg int) *binarySVM {
	var index []int
	for i, label := range y {
		if label == pos || label == neg {
			index = append(index, i)
		}
	}

	s := &smo{
		n:     len(index),
		c:     m.c,
		eps:   m.tolerance,
		y:     make([]float64, len(index)),
		k:     make([][]float64, len(index)),
		alpha: make([]float64, len(index)),
		grad:  make([]float64, len(index)),
	}

	for a, i := range index {
		s.y[a] = -1
		if y[i] == pos {
			s.y[a] = 1
		}

		s.k[a] = make([]float64, len(index))
		for b, j := range index {
			s.k[a][b] = kernel[i][j]
		}
	}
	s.solve()

	machine := &binarySVM{pos: pos, neg: neg, rho: s.rho()}
	for a, i := range index {
		if s.alpha[a] > 0 {
			machine.vectors = append(machine.vectors, X[i])
			machine.coef = append(machine.coef, s.alpha[a]*s.y[a])
		}
	}

	return machine
}

// smo is a sequential minimal optimization solver using second order
// working set selection.
type smo struct {
	n     int
	c     float64
	eps   float64
	y     []float64
	k     [][]float64
	alpha []float64
	grad  []float64
}

func (s *smo) q(i, j int) float64 {
	return s.y[i] * s.y[j] * s.k[i][j]
}

func (s *smo) isUpper(i int) bool {
	return s.alpha[i] >= s.c
}

func (s *smo) isLower(i int) bool {
	return s.alpha[i] <= 0
}

func (s *smo) solve() {
	for i := range s.grad {
		s.grad[i] = -1
	}

	maxIter := 100 * s.n
	if maxIter < 10000000 {
		maxIter = 10000000
	}

	for iter := 0; iter < maxIter; iter++ {
		i, j, ok := s.selectWorkingSet()
		if !ok {
			return
		}

		s.update(i, j)
	}
}

func (s *smo) selectWorkingSet() (int, int, bool) {
	gmax, gmax2 := math.Inf(-1), math.Inf(-1)
	i := -1
	for t := 0; t < s.n; t++ {
		if s.y[t] > 0 {
			if !s.isUpper(t) && -s.grad[t] >= gmax {
				gmax = -s.grad[t]
				i = t
			}
		} else if !s.isLower(t) && s.grad[t] >= gmax {
			gmax = s.grad[t]
			i = t
		}
	}

	if i == -1 {
		return 0, 0, false
	}

	j := -1
	objMin := math.Inf(1)
	for t := 0; t < s.n; t++ {
		var diff float64
		if s.y[t] > 0 {
			if s.isLower(t) {
				continue
			}
			diff = gmax + s.grad[t]
			if s.grad[t] >= gmax2 {
				gmax2 = s.grad[t]
			}
		} else {
			if s.isUpper(t) {
				continue
			}
			diff = gmax - s.grad[t]
			if -s.grad[t] >= gmax2 {
				gmax2 = -s.grad[t]
			}
		}

		if diff <= 0 {
			continue
		}

		quad := s.k[i][i] + s.k[t][t] - 2*s.y[i]*s.y[t]*s.q(i, t)
		if quad <= 0 {
			quad = tau
		}

		if obj := -(diff * diff) / quad; obj <= objMin {
			objMin = obj
			j = t
		}
	}

	if gmax+gmax2 < s.eps || j == -1 {
		return 0, 0, false
	}

	return i, j, true
}

func (s *smo) update(i, j int) {
	c := s.c
	oldI, oldJ := s.alpha[i], s.alpha[j]

	if s.y[i] != s.y[j] {
		quad := s.k[i][i] + s.k[j][j] + 2*s.q(i, j)
		if quad <= 0 {
			quad = tau
		}

		delta := (-s.grad[i] - s.grad[j]) / quad
		diff := s.alpha[i] - s.alpha[j]
		s.alpha[i] += delta
		s.alpha[j] += delta

		if diff > 0 {
			if s.alpha[j] < 0 {
				s.alpha[j] = 0
				s.alpha[i] = diff
			}
		} else if s.alpha[i] < 0 {
			s.alpha[i] = 0
			s.alpha[j] = -diff
		}

		if diff > 0 {
			if s.alpha[i] > c {
				s.alpha[i] = c
				s.alpha[j] = c - diff
			}
		} else if s.alpha[j] > c {
			s.alpha[j] = c
			s.alpha[i] = c + diff
		}
	} else {
		quad := s.k[i][i] + s.k[j][j] - 2*s.q(i, j)
		if quad <= 0 {
			quad = tau
		}

		delta := (s.grad[i] - s.grad[j]) / quad
		sum := s.alpha[i] + s.alpha[j]
		s.alpha[i] -= delta
		s.alpha[j] += delta

		if sum > c {
			if s.alpha[i] > c {
				s.alpha[i] = c
				s.alpha[j] = sum - c
			}
		} else if s.alpha[j] < 0 {
			s.alpha[j] = 0
			s.alpha[i] = sum
		}

		if sum > c {
			if s.alpha[j] > c {
				s.alpha[j] = c
				s.alpha[i] = sum - c
			}
		} else if s.alpha[i] < 0 {
			s.alpha[i] = 0
			s.alpha[j] = sum
		}
	}

	deltaI, deltaJ := s.alpha[i]-oldI, s.alpha[j]-oldJ
	for t := 0; t < s.n; t++ {
		s.grad[t] += s.q(i, t)*deltaI + s.q(j, t)*deltaJ
	}
}

// rho is the offset of the decision function, free vectors average it.
func (s *smo) rho() float64 {
	var (
		free int
		sum  float64
	)
	ub, lb := math.Inf(1), math.Inf(-1)
	for i := 0; i < s.n; i++ {
		yg := s.y[i] * s.grad[i]
		switch {
		case s.isUpper(i):
			if s.y[i] < 0 {
				ub = math.Min(ub, yg)
			} else {
				lb = math.Max(lb, yg)
			}
		case s.isLower(i):
			if s.y[i] > 0 {
				ub = math.Min(ub, yg)
			} else {
				lb = math.Max(lb, yg)
			}
		default:
			free++
			sum += yg
		}
	}

	if free > 0 {
		return sum / float64(free)
	}

	return (ub + lb) / 2
}

// scaleGamma returns 1 / (n_features * X.var()), or 1 when X is constant.
func scaleGamma(X [][]float64) (float64, error) {
	data := make(stats.Float64Data, 0, len(X)*len(X[0]))
	for _, row := range X {
		data = append(data, row...)
	}

	variance, err := stats.PopulationVariance(data)
	if err != nil {
		return 0, err
	}

	if variance == 0 {
		return 1, nil
	}

	return 1 / (float64(len(X[0])) * variance), nil
}

func distinct(y []int) []int {
	seen := make(map[int]struct{})
	var labels []int
	for _, label := range y {
		if _, ok := seen[label]; !ok {
			seen[label] = struct{}{}
			labels = append(labels, label)
		}
	}

	sort.Ints(labels)
	return labels
}
