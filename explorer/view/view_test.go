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

package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"d7y.io/explorer/explorer/classifier"
	"d7y.io/explorer/explorer/dataset"
	"d7y.io/explorer/explorer/inference"
	"d7y.io/explorer/explorer/types"
)

func TestControls(t *testing.T) {
	tests := []struct {
		name   string
		params classifier.Params
		expect func(t *testing.T, controls []Control)
	}{
		{
			name:   "svm",
			params: classifier.SVMParams{C: 2.5},
			expect: func(t *testing.T, controls []Control) {
				assert := assert.New(t)
				assert.Equal([]Control{{Name: "C", Min: 0.01, Max: 10, Step: 0.01, Value: 2.5}}, controls)
			},
		},
		{
			name:   "knn",
			params: classifier.KNNParams{K: 4},
			expect: func(t *testing.T, controls []Control) {
				assert := assert.New(t)
				assert.Equal([]Control{{Name: "K", Min: 1, Max: 15, Step: 1, Value: 4}}, controls)
			},
		},
		{
			name:   "random forest",
			params: classifier.RandomForestParams{MaxDepth: 3, NEstimators: 40},
			expect: func(t *testing.T, controls []Control) {
				assert := assert.New(t)
				require.Len(t, controls, 2)
				assert.Equal("max_depth", controls[0].Name)
				assert.Equal(3.0, controls[0].Value)
				assert.Equal("n_estimators", controls[1].Name)
				assert.Equal(100.0, controls[1].Max)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.expect(t, Controls(tc.params))
		})
	}
}

func TestTemplate(t *testing.T) {
	assert := assert.New(t)
	page := NewPage(dataset.Iris, classifier.KNN)
	page.Controls = Controls(classifier.KNNParams{K: 1})
	page.Summary = &dataset.Summary{Name: "Iris", Samples: 150, Features: 4, Classes: 3}
	page.Evaluation = &types.Evaluation{Classifier: "KNN", Accuracy: 0.9, Plot: []byte("png")}
	page.Inference = true
	page.SampleNames = []string{"Sepal Length", "Sepal Width", "Petal Length", "Petal Width"}
	page.Sample = make([]float64, 4)
	page.SampleClass = "setosa"
	page.Batch = &inference.Table{Header: []string{"a", inference.PredictionColumn}, Rows: [][]string{{"1", "virginica"}}}

	var buf bytes.Buffer
	require.NoError(t, Template().ExecuteTemplate(&buf, IndexTemplate, page))

	body := buf.String()
	for _, s := range []string{
		"<title>Streamlit Example</title>",
		"Explore different classifier and datasets",
		"Which one is the best?",
		"Iris Dataset",
		"Shape of dataset: (150, 4)",
		"number of classes: 3",
		"Classifier = KNN",
		"Accuracy = 0.9",
		"data:image/png;base64,cG5n",
		"Single Sample Predictions",
		"Class = setosa",
		"Multiple Samples Predictions",
		"<td>virginica</td>",
		`<option value="Breast Cancer">Breast Cancer</option>`,
	} {
		assert.Contains(body, s)
	}
}

func TestTemplate_Error(t *testing.T) {
	assert := assert.New(t)
	page := NewPage(dataset.Wine, classifier.SVM)
	page.Error = "dataset unavailable: wine_data.csv"

	var buf bytes.Buffer
	require.NoError(t, Template().ExecuteTemplate(&buf, IndexTemplate, page))
	assert.Contains(buf.String(), "Wine Dataset")
	assert.Contains(buf.String(), "dataset unavailable: wine_data.csv")
	assert.NotContains(buf.String(), "Single Sample Predictions")
}

func TestStatic(t *testing.T) {
	assert := assert.New(t)
	fs := Static()
	assert.True(fs.Exists("/static", "/static/style.css"))
	assert.False(fs.Exists("/static", "/static/"))
	assert.False(fs.Exists("/static", "/static/missing.css"))
	assert.False(fs.Exists("/static", "/"))
}
