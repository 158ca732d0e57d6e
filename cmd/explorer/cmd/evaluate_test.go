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

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"d7y.io/explorer/explorer/classifier"
	"d7y.io/explorer/explorer/dataset"
	"d7y.io/explorer/internal/dferrors"
)

func TestRunEvaluate(t *testing.T) {
	provider := dataset.NewProvider("../../../explorer/dataset/testdata")
	tests := []struct {
		name   string
		opts   func(dir string) *evaluateOptions
		values map[string]float64
		expect func(t *testing.T, dir, out string, err error)
	}{
		{
			name: "iris with outputs",
			opts: func(dir string) *evaluateOptions {
				batch := filepath.Join(dir, "batch.csv")
				require.NoError(t, os.WriteFile(batch, []byte("sl,sw,pl,pw\n5.1,3.5,1.4,0.2\n"), 0600))
				return &evaluateOptions{
					dataset:     "Iris",
					classifier:  "KNN",
					plot:        filepath.Join(dir, "plot.png"),
					predictions: filepath.Join(dir, "predictions.csv"),
					sample:      []float64{5.1, 3.5, 1.4, 0.2},
					batch:       batch,
				}
			},
			values: map[string]float64{classifier.ParamK: 5},
			expect: func(t *testing.T, dir, out string, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				assert.Contains(out, "## Iris Dataset\n")
				assert.Contains(out, "Shape of dataset: (150, 4)\n")
				assert.Contains(out, "number of classes: 3\n")
				assert.Contains(out, "Classifier = KNN\n")
				assert.Contains(out, "Accuracy = ")
				assert.Contains(out, "Class = setosa\n")
				assert.Contains(out, "sl,sw,pl,pw,Prediction\n5.1,3.5,1.4,0.2,setosa\n")

				plot, err := os.ReadFile(filepath.Join(dir, "plot.png"))
				require.NoError(t, err)
				assert.True(bytes.HasPrefix(plot, []byte("\x89PNG")))

				predictions, err := os.ReadFile(filepath.Join(dir, "predictions.csv"))
				require.NoError(t, err)
				lines := strings.Split(strings.TrimSpace(string(predictions)), "\n")
				assert.Equal("row,actual,predicted,correct", lines[0])
				assert.Len(lines, 31)
			},
		},
		{
			name: "wine with random forest",
			opts: func(dir string) *evaluateOptions {
				return &evaluateOptions{dataset: "wine", classifier: "Random Forest"}
			},
			values: map[string]float64{classifier.ParamMaxDepth: 5, classifier.ParamNEstimators: 10},
			expect: func(t *testing.T, dir, out string, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				assert.Contains(out, "## Wine Dataset\n")
				assert.Contains(out, "Classifier = Random Forest\n")
				assert.NotContains(out, "Class = ")
			},
		},
		{
			name: "sample of wine",
			opts: func(dir string) *evaluateOptions {
				return &evaluateOptions{dataset: "Wine", classifier: "SVM", sample: []float64{1}}
			},
			expect: func(t *testing.T, dir, out string, err error) {
				assert.ErrorIs(t, err, dferrors.ErrInferenceUnsupported)
			},
		},
		{
			name: "unknown dataset",
			opts: func(dir string) *evaluateOptions {
				return &evaluateOptions{dataset: "Digits", classifier: "KNN"}
			},
			expect: func(t *testing.T, dir, out string, err error) {
				assert.ErrorIs(t, err, dferrors.ErrUnknownDataset)
			},
		},
		{
			name: "parameter out of range",
			opts: func(dir string) *evaluateOptions {
				return &evaluateOptions{dataset: "Iris", classifier: "SVM"}
			},
			values: map[string]float64{classifier.ParamC: 20},
			expect: func(t *testing.T, dir, out string, err error) {
				assert.ErrorIs(t, err, dferrors.ErrParameterOutOfRange)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			var out bytes.Buffer
			err := runEvaluate(&out, provider, tc.opts(dir), tc.values)
			tc.expect(t, dir, out.String(), err)
		})
	}
}
