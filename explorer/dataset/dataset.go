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

package dataset

import (
	"fmt"
	"strings"

	"github.com/sjwhitworth/golearn/base"
	"gonum.org/v1/gonum/mat"

	"d7y.io/explorer/internal/dferrors"
)

// ID is the identifier of a built-in dataset.
type ID int

const (
	Iris ID = iota
	BreastCancer
	Wine
)

// ClassAttributeName is the name of the class attribute of every grid.
const ClassAttributeName = "target"

// IDs returns all dataset identifiers in display order.
func IDs() []ID {
	return []ID{Iris, BreastCancer, Wine}
}

func (id ID) String() string {
	switch id {
	case Iris:
		return "Iris"
	case BreastCancer:
		return "Breast Cancer"
	case Wine:
		return "Wine"
	default:
		return fmt.Sprintf("ID(%d)", int(id))
	}
}

// Slug is the url and file friendly name.
func (id ID) Slug() string {
	return strings.ReplaceAll(strings.ToLower(id.String()), " ", "_")
}

// FileName is the name of the csv file holding the dataset.
func (id ID) FileName() string {
	switch id {
	case Iris:
		return "iris.csv"
	case BreastCancer:
		return "breast_cancer.csv"
	case Wine:
		return "wine_data.csv"
	default:
		return ""
	}
}

// ParseID parses display names like "Breast Cancer" and slugs like "breast_cancer".
func ParseID(s string) (ID, error) {
	for _, id := range IDs() {
		if s == id.String() || strings.EqualFold(s, id.Slug()) {
			return id, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", dferrors.ErrUnknownDataset, s)
}

// Dataset is an immutable labeled feature matrix.
type Dataset struct {
	ID           ID
	FeatureNames []string
	ClassNames   []string
	Features     *mat.Dense
	Labels       []int

	grid         *base.DenseInstances
	featureAttrs []base.Attribute
	classAttr    *base.CategoricalAttribute
}

// Summary describes the shape of a dataset.
type Summary struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Samples      int      `json:"samples"`
	Features     int      `json:"features"`
	FeatureNames []string `json:"feature_names,omitempty"`
	Classes      int      `json:"classes"`
	ClassNames   []string `json:"class_names"`
	Available    bool     `json:"available"`
}

// New builds a dataset and its grid, features are copied.
func New(id ID, featureNames, classNames []string, features [][]float64, labels []int) (*Dataset, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("%w: no samples", dferrors.ErrMalformedDataset)
	}

	if len(features) != len(labels) {
		return nil, fmt.Errorf("%w: %d samples but %d labels", dferrors.ErrMalformedDataset, len(features), len(labels))
	}

	d := len(featureNames)
	m := mat.NewDense(len(features), d, nil)
	for i, row := range features {
		if len(row) != d {
			return nil, fmt.Errorf("%w: sample %d has %d features, expected %d", dferrors.ErrMalformedDataset, i, len(row), d)
		}
		m.SetRow(i, row)
	}

	ds := &Dataset{
		ID:           id,
		FeatureNames: append([]string(nil), featureNames...),
		ClassNames:   append([]string(nil), classNames...),
		Features:     m,
		Labels:       append([]int(nil), labels...),
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}

	ds.featureAttrs = make([]base.Attribute, d)
	for j, name := range ds.FeatureNames {
		ds.featureAttrs[j] = base.NewFloatAttribute(name)
	}

	ds.classAttr = base.NewCategoricalAttribute()
	ds.classAttr.SetName(ClassAttributeName)
	for _, name := range ds.ClassNames {
		// Registers the class names so that the system value of a class equals its label.
		ds.classAttr.GetSysValFromString(name)
	}

	grid, err := ds.newGrid(features, ds.Labels)
	if err != nil {
		return nil, err
	}
	ds.grid = grid

	return ds, nil
}

// Validate checks the invariants of the dataset.
func (ds *Dataset) Validate() error {
	n, d := ds.Features.Dims()
	if len(ds.Labels) != n {
		return fmt.Errorf("%w: %d samples but %d labels", dferrors.ErrMalformedDataset, n, len(ds.Labels))
	}

	if len(ds.FeatureNames) != d {
		return fmt.Errorf("%w: %d features but %d feature names", dferrors.ErrMalformedDataset, d, len(ds.FeatureNames))
	}

	seen := make(map[int]struct{}, len(ds.ClassNames))
	for i, label := range ds.Labels {
		if label < 0 || label >= len(ds.ClassNames) {
			return fmt.Errorf("%w: label %d of sample %d is out of [0, %d)", dferrors.ErrMalformedDataset, label, i, len(ds.ClassNames))
		}
		seen[label] = struct{}{}
	}

	if len(seen) != len(ds.ClassNames) {
		return fmt.Errorf("%w: %d class names but %d distinct labels", dferrors.ErrMalformedDataset, len(ds.ClassNames), len(seen))
	}

	return nil
}

// Rows returns the number of samples.
func (ds *Dataset) Rows() int {
	n, _ := ds.Features.Dims()
	return n
}

// Dims returns the number of features.
func (ds *Dataset) Dims() int {
	_, d := ds.Features.Dims()
	return d
}

// Summary returns the shape of the dataset.
func (ds *Dataset) Summary() Summary {
	return Summary{
		ID:           ds.ID.Slug(),
		Name:         ds.ID.String(),
		Samples:      ds.Rows(),
		Features:     ds.Dims(),
		FeatureNames: append([]string(nil), ds.FeatureNames...),
		Classes:      len(ds.ClassNames),
		ClassNames:   append([]string(nil), ds.ClassNames...),
		Available:    true,
	}
}

// ClassName maps a label to its class name.
func (ds *Dataset) ClassName(label int) (string, error) {
	if label < 0 || label >= len(ds.ClassNames) {
		return "", fmt.Errorf("%w: label %d is out of [0, %d)", dferrors.ErrMalformedDataset, label, len(ds.ClassNames))
	}

	return ds.ClassNames[label], nil
}

// Grid returns the dataset as a golearn grid, the class attribute holds the labels.
func (ds *Dataset) Grid() base.FixedDataGrid {
	return ds.grid
}

// Subset builds a labeled grid of the given rows, in the given order.
func (ds *Dataset) Subset(rows []int) (base.FixedDataGrid, error) {
	n, d := ds.Features.Dims()
	features := make([][]float64, len(rows))
	labels := make([]int, len(rows))
	for i, row := range rows {
		if row < 0 || row >= n {
			return nil, fmt.Errorf("row %d is out of [0, %d)", row, n)
		}

		features[i] = mat.Row(make([]float64, d), row, ds.Features)
		labels[i] = ds.Labels[row]
	}

	return ds.newGrid(features, labels)
}

// Samples builds a grid of unlabeled samples sharing the attributes of the dataset.
func (ds *Dataset) Samples(samples [][]float64) (base.FixedDataGrid, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no samples", dferrors.ErrDegenerateInput)
	}

	for _, s := range samples {
		if len(s) != ds.Dims() {
			return nil, dferrors.DimensionMismatch(ds.Dims(), len(s))
		}
	}

	// Class values of unlabeled samples are placeholders.
	return ds.newGrid(samples, make([]int, len(samples)))
}

func (ds *Dataset) newGrid(features [][]float64, labels []int) (*base.DenseInstances, error) {
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(ds.featureAttrs))
	for j, a := range ds.featureAttrs {
		specs[j] = inst.AddAttribute(a)
	}

	classSpec := inst.AddAttribute(ds.classAttr)
	if err := inst.AddClassAttribute(ds.classAttr); err != nil {
		return nil, err
	}

	if err := inst.Extend(len(features)); err != nil {
		return nil, err
	}

	for i, row := range features {
		for j, v := range row {
			inst.Set(specs[j], i, base.PackFloatToBytes(v))
		}
		inst.Set(classSpec, i, base.PackU64ToBytes(uint64(labels[i])))
	}

	return inst, nil
}
