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

//go:generate mockgen -destination mocks/provider_mock.go -source provider.go -package mocks

package dataset

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"d7y.io/explorer/internal/dferrors"
)

// builtin holds the bundled csv files, named by ID.FileName.
//
//go:embed data
var builtin embed.FS

const builtinDir = "data"

var (
	irisFeatureNames = []string{
		"sepal length (cm)", "sepal width (cm)", "petal length (cm)", "petal width (cm)",
	}

	wineFeatureNames = []string{
		"alcohol", "malic_acid", "ash", "alcalinity_of_ash", "magnesium", "total_phenols",
		"flavanoids", "nonflavanoid_phenols", "proanthocyanins", "color_intensity", "hue",
		"od280/od315_of_diluted_wines", "proline",
	}

	breastCancerFeatureNames = []string{
		"mean radius", "mean texture", "mean perimeter", "mean area", "mean smoothness",
		"mean compactness", "mean concavity", "mean concave points", "mean symmetry",
		"mean fractal dimension", "radius error", "texture error", "perimeter error", "area error",
		"smoothness error", "compactness error", "concavity error", "concave points error",
		"symmetry error", "fractal dimension error", "worst radius", "worst texture",
		"worst perimeter", "worst area", "worst smoothness", "worst compactness", "worst concavity",
		"worst concave points", "worst symmetry", "worst fractal dimension",
	}
)

// Provider loads built-in datasets.
type Provider interface {
	// Load loads a fresh dataset.
	Load(id ID) (*Dataset, error)
}

type provider struct {
	// dir overrides the bundled files with files of the same name.
	dir string
}

// NewProvider returns a provider of the bundled datasets, files found in dir
// take precedence. An empty dir uses the bundled files only.
func NewProvider(dir string) Provider {
	return &provider{dir: dir}
}

func (p *provider) Load(id ID) (*Dataset, error) {
	name := id.FileName()
	if name == "" {
		return nil, fmt.Errorf("%w: %s", dferrors.ErrUnknownDataset, id)
	}

	f, err := p.open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s is not bundled", dferrors.ErrDatasetUnavailable, name)
		}

		return nil, err
	}
	defer f.Close()

	return Parse(id, f)
}

func (p *provider) open(name string) (fs.File, error) {
	if p.dir != "" {
		f, err := os.Open(filepath.Join(p.dir, name))
		if err == nil {
			return f, nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return builtin.Open(path.Join(builtinDir, name))
}

// Parse reads a dataset in the layout of the scikit-learn bundled csv files,
// the first line is n_samples,n_features,class names... and every row holds
// n_features values and one integer target.
func Parse(id ID, r io.Reader) (*Dataset, error) {
	reader := gocsv.DefaultCSVReader(r)
	if cr, ok := reader.(*csv.Reader); ok {
		// The header is shorter than the rows.
		cr.FieldsPerRecord = -1
		cr.TrimLeadingSpace = true
	}

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", dferrors.ErrMalformedDataset, err)
	}

	if len(header) < 3 {
		return nil, fmt.Errorf("%w: header %q", dferrors.ErrMalformedDataset, strings.Join(header, ","))
	}

	n, err := strconv.Atoi(strings.TrimSpace(header[0]))
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("%w: invalid sample count %q", dferrors.ErrMalformedDataset, header[0])
	}

	d, err := strconv.Atoi(strings.TrimSpace(header[1]))
	if err != nil || d <= 0 {
		return nil, fmt.Errorf("%w: invalid feature count %q", dferrors.ErrMalformedDataset, header[1])
	}

	classNames := make([]string, 0, len(header)-2)
	for _, name := range header[2:] {
		classNames = append(classNames, strings.TrimSpace(name))
	}

	features := make([][]float64, 0, n)
	labels := make([]int, 0, n)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %v", dferrors.ErrMalformedDataset, err)
		}

		row := len(features) + 1
		if len(record) != d+1 {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", dferrors.ErrMalformedDataset, row, len(record), d+1)
		}

		sample := make([]float64, d)
		for j := 0; j < d; j++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[j]), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %d: %v", dferrors.ErrMalformedDataset, row, j+1, err)
			}
			sample[j] = v
		}

		label, err := strconv.Atoi(strings.TrimSpace(record[d]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d target: %v", dferrors.ErrMalformedDataset, row, err)
		}

		features = append(features, sample)
		labels = append(labels, label)
	}

	if len(features) != n {
		return nil, fmt.Errorf("%w: header declares %d samples, got %d", dferrors.ErrMalformedDataset, n, len(features))
	}

	return New(id, featureNames(id, d), classNames, features, labels)
}

func featureNames(id ID, d int) []string {
	var names []string
	switch id {
	case Iris:
		names = irisFeatureNames
	case BreastCancer:
		names = breastCancerFeatureNames
	case Wine:
		names = wineFeatureNames
	}

	if len(names) == d {
		return names
	}

	names = make([]string, d)
	for j := range names {
		names[j] = fmt.Sprintf("feature_%d", j)
	}

	return names
}
