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

package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"d7y.io/explorer/explorer/dataset"
	"d7y.io/explorer/explorer/inference"
	"d7y.io/explorer/explorer/middlewares"
	"d7y.io/explorer/explorer/types"
	"d7y.io/explorer/explorer/view"
)

var (
	mockIrisSummary = dataset.Summary{
		ID:           "iris",
		Name:         "Iris",
		Samples:      150,
		Features:     4,
		FeatureNames: []string{"sepal length (cm)", "sepal width (cm)", "petal length (cm)", "petal width (cm)"},
		Classes:      3,
		ClassNames:   []string{"setosa", "versicolor", "virginica"},
		Available:    true,
	}

	mockWineSummary = dataset.Summary{
		ID:         "wine",
		Name:       "Wine",
		Samples:    178,
		Features:   13,
		Classes:    3,
		ClassNames: []string{"class_0", "class_1", "class_2"},
		Available:  true,
	}

	mockIrisEvaluation = &types.Evaluation{
		Dataset:                mockIrisSummary,
		Classifier:             "KNN",
		Params:                 map[string]float64{"K": 1},
		Accuracy:               0.9,
		TrainSize:              120,
		TestSize:               30,
		ExplainedVarianceRatio: []float64{0.92, 0.05},
		Plot:                   []byte("png"),
	}

	mockWineEvaluation = &types.Evaluation{
		Dataset:    mockWineSummary,
		Classifier: "SVM",
		Params:     map[string]float64{"C": 0.01},
		Accuracy:   0.75,
		TrainSize:  142,
		TestSize:   36,
		Plot:       []byte("png"),
	}

	mockTable = &inference.Table{
		Header: []string{"sl", "sw", "pl", "pw", inference.PredictionColumn},
		Rows:   [][]string{{"5.1", "3.5", "1.4", "0.2", "setosa"}},
	}

	mockBatchCSV = "sl,sw,pl,pw\n5.1,3.5,1.4,0.2\n"
)

func mockRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middlewares.Error())
	r.SetHTMLTemplate(view.Template())
	r.GET("/", h.GetPage)
	r.POST("/", h.PostPage)
	r.GET("/healthy", h.GetHealth)

	apiv1 := r.Group("/api/v1")
	ds := apiv1.Group("/datasets")
	ds.GET("", h.GetDatasets)
	ds.GET(":id/projection.png", h.GetProjection)
	apiv1.POST("/evaluations", h.CreateEvaluation)
	pr := apiv1.Group("/predictions")
	pr.POST("", h.CreatePrediction)
	pr.POST("/batch", h.CreateBatchPrediction)
	return r
}

// mockMultipart returns a multipart request carrying fields and an optional file.
func mockMultipart(t *testing.T, target string, fields map[string][]string, file string) *http.Request {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, values := range fields {
		for _, v := range values {
			require.NoError(t, w.WriteField(name, v))
		}
	}

	if file != "" {
		part, err := w.CreateFormFile(FileFormField, "samples.csv")
		require.NoError(t, err)
		_, err = part.Write([]byte(file))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}
