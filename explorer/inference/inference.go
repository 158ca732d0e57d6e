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

package inference

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"d7y.io/explorer/explorer/classifier"
	"d7y.io/explorer/explorer/dataset"
	"d7y.io/explorer/internal/dferrors"
)

// PredictionColumn is the column appended to batch results.
const PredictionColumn = "Prediction"

// Table is a csv table with a header row.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// WriteCSV writes the header and rows as csv.
func (t *Table) WriteCSV(w io.Writer) error {
	writer := gocsv.DefaultCSVWriter(w)
	if err := writer.Write(t.Header); err != nil {
		return err
	}

	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// Supported reports whether samples of the dataset can be predicted,
// only iris accepts user samples.
func Supported(id dataset.ID) error {
	if id != dataset.Iris {
		return fmt.Errorf("%w: %s", dferrors.ErrInferenceUnsupported, id)
	}

	return nil
}

// PredictSample returns the class name predicted for one sample.
func PredictSample(c classifier.Classifier, ds *dataset.Dataset, sample []float64) (string, error) {
	if err := Supported(ds.ID); err != nil {
		return "", err
	}

	names, err := predict(c, ds, [][]float64{sample})
	if err != nil {
		return "", err
	}

	return names[0], nil
}

// PredictBatch reads samples from csv with a header row and returns them
// with the predicted class name appended to every row. Any invalid row
// fails the whole batch.
func PredictBatch(c classifier.Classifier, ds *dataset.Dataset, r io.Reader) (*Table, error) {
	if err := Supported(ds.ID); err != nil {
		return nil, err
	}

	records, err := gocsv.DefaultCSVReader(r).ReadAll()
	if err != nil {
		if errors.Is(err, csv.ErrFieldCount) {
			return nil, fmt.Errorf("%w: %v", dferrors.ErrDimensionMismatch, err)
		}

		return nil, fmt.Errorf("%w: %v", dferrors.ErrNonNumericInput, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header row", dferrors.ErrDimensionMismatch)
	}

	header := records[0]
	if len(header) != ds.Dims() {
		return nil, dferrors.DimensionMismatch(ds.Dims(), len(header))
	}

	body := records[1:]
	samples := make([][]float64, len(body))
	for i, record := range body {
		if len(record) != ds.Dims() {
			return nil, fmt.Errorf("row %d: %w", i+1, dferrors.DimensionMismatch(ds.Dims(), len(record)))
		}

		samples[i] = make([]float64, len(record))
		for j, cell := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %q: %q", dferrors.ErrNonNumericInput, i+1, header[j], cell)
			}
			samples[i][j] = v
		}
	}

	table := &Table{
		Header: append(append([]string{}, header...), PredictionColumn),
		Rows:   make([][]string, len(body)),
	}
	if len(body) == 0 {
		return table, nil
	}

	names, err := predict(c, ds, samples)
	if err != nil {
		return nil, err
	}

	for i, record := range body {
		table.Rows[i] = append(append([]string{}, record...), names[i])
	}

	return table, nil
}

func predict(c classifier.Classifier, ds *dataset.Dataset, samples [][]float64) ([]string, error) {
	if c == nil {
		return nil, errors.New("no fitted classifier")
	}

	grid, err := ds.Samples(samples)
	if err != nil {
		return nil, err
	}

	out, err := c.Predict(grid)
	if err != nil {
		return nil, err
	}

	labels, err := classifier.Labels(out)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(labels))
	for i, label := range labels {
		if names[i], err = ds.ClassName(label); err != nil {
			return nil, err
		}
	}

	return names, nil
}
