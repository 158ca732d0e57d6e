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
	"errors"
	"fmt"

	"github.com/sjwhitworth/golearn/base"

	"d7y.io/explorer/internal/dferrors"
)

// fitted holds the attributes seen by Fit, it is embedded by every classifier.
type fitted struct {
	attrs     []base.Attribute
	classAttr base.Attribute
	classes   int
}

// fit extracts the training features and labels of grid.
func (f *fitted) fit(grid base.FixedDataGrid) ([][]float64, []int, error) {
	classAttrs := grid.AllClassAttributes()
	if len(classAttrs) != 1 {
		return nil, nil, errors.New("only 1 class attribute is permitted")
	}

	classAttr, ok := classAttrs[0].(*base.CategoricalAttribute)
	if !ok {
		return nil, nil, fmt.Errorf("class attribute %s is not categorical", classAttrs[0].GetName())
	}

	attrs := floatAttributes(grid)
	if len(attrs) == 0 {
		return nil, nil, fmt.Errorf("%w: no features", dferrors.ErrDegenerateInput)
	}

	_, rows := grid.Size()
	if rows == 0 {
		return nil, nil, fmt.Errorf("%w: no training samples", dferrors.ErrDegenerateInput)
	}

	X, err := features(grid, attrs)
	if err != nil {
		return nil, nil, err
	}

	y, err := Labels(grid)
	if err != nil {
		return nil, nil, err
	}

	classes := len(classAttr.GetValues())
	for _, label := range y {
		if label >= classes {
			classes = label + 1
		}
	}

	f.attrs = attrs
	f.classAttr = classAttr
	f.classes = classes
	return X, y, nil
}

// samples extracts the features of grid, which must match the fitted features.
func (f *fitted) samples(grid base.FixedDataGrid) ([][]float64, error) {
	if f.attrs == nil {
		return nil, dferrors.ErrNotFitted
	}

	attrs := floatAttributes(grid)
	if len(attrs) != len(f.attrs) {
		return nil, dferrors.DimensionMismatch(len(f.attrs), len(attrs))
	}

	return features(grid, attrs)
}

// predictions writes labels into a prediction vector of grid.
func (f *fitted) predictions(grid base.FixedDataGrid, labels []int) (base.FixedDataGrid, error) {
	ret := base.GeneratePredictionVector(grid)
	spec, err := ret.GetAttribute(f.classAttr)
	if err != nil {
		return nil, err
	}

	for i, label := range labels {
		ret.Set(spec, i, base.PackU64ToBytes(uint64(label)))
	}

	return ret, nil
}

// Labels returns the class system values of every row, which are the labels.
func Labels(grid base.FixedDataGrid) ([]int, error) {
	classAttrs := grid.AllClassAttributes()
	if len(classAttrs) != 1 {
		return nil, errors.New("only 1 class attribute is permitted")
	}

	spec, err := grid.GetAttribute(classAttrs[0])
	if err != nil {
		return nil, err
	}

	_, rows := grid.Size()
	labels := make([]int, rows)
	for i := 0; i < rows; i++ {
		labels[i] = int(base.UnpackBytesToU64(grid.Get(spec, i)))
	}

	return labels, nil
}

// floatAttributes returns the float features of grid in column order.
// base.NonClassAttributes is not used since it collects through a map.
func floatAttributes(grid base.FixedDataGrid) []base.Attribute {
	classAttrs := grid.AllClassAttributes()
	var attrs []base.Attribute
	for _, a := range grid.AllAttributes() {
		if _, ok := a.(*base.FloatAttribute); !ok || isClassAttribute(a, classAttrs) {
			continue
		}
		attrs = append(attrs, a)
	}

	return attrs
}

func isClassAttribute(a base.Attribute, classAttrs []base.Attribute) bool {
	for _, c := range classAttrs {
		if a.GetName() == c.GetName() {
			return true
		}
	}

	return false
}

// features resolves every attribute on its own, base.ResolveAttributes
// reorders specs.
func features(grid base.FixedDataGrid, attrs []base.Attribute) ([][]float64, error) {
	specs := make([]base.AttributeSpec, len(attrs))
	for j, a := range attrs {
		spec, err := grid.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		specs[j] = spec
	}

	_, rows := grid.Size()
	X := make([][]float64, rows)
	for i := range X {
		X[i] = make([]float64, len(specs))
		for j, spec := range specs {
			X[i][j] = base.UnpackBytesToFloat(grid.Get(spec, i))
		}
	}

	return X, nil
}

// argmax returns the first index of the largest value, so ties go to the lower label.
func argmax[T int | float64](values []T) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}

	return best
}
