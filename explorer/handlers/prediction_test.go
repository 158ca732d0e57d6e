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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"d7y.io/explorer/explorer/inference"
	"d7y.io/explorer/explorer/service/mocks"
	"d7y.io/explorer/explorer/types"
	"d7y.io/explorer/internal/dferrors"
)

func TestHandlers_CreatePrediction(t *testing.T) {
	tests := []struct {
		name   string
		req    *http.Request
		mock   func(ms *mocks.MockServiceMockRecorder)
		expect func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "unprocessable entity caused by missing sample",
			req:  httptest.NewRequest(http.MethodPost, "/api/v1/predictions", strings.NewReader(`{"dataset":"Iris","classifier":"KNN"}`)),
			mock: func(ms *mocks.MockServiceMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
			},
		},
		{
			name: "success",
			req:  httptest.NewRequest(http.MethodPost, "/api/v1/predictions", strings.NewReader(`{"dataset":"Iris","classifier":"KNN","sample":[5.1,3.5,1.4,0.2]}`)),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.PredictSample(gomock.Any(), gomock.Eq(types.PredictSampleRequest{
					EvaluateRequest: types.EvaluateRequest{Dataset: "Iris", Classifier: "KNN"},
					Sample:          []float64{5.1, 3.5, 1.4, 0.2},
				})).Return(&types.SamplePrediction{
					Classifier: "KNN",
					Accuracy:   0.9,
					Sample:     []float64{5.1, 3.5, 1.4, 0.2},
					Class:      "setosa",
				}, nil).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)

				var prediction types.SamplePrediction
				assert.NoError(json.Unmarshal(w.Body.Bytes(), &prediction))
				assert.Equal("setosa", prediction.Class)
			},
		},
		{
			name: "dimension mismatch",
			req:  httptest.NewRequest(http.MethodPost, "/api/v1/predictions", strings.NewReader(`{"dataset":"Iris","classifier":"KNN","sample":[5.1,3.5,1.4]}`)),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.PredictSample(gomock.Any(), gomock.Any()).Return(nil, dferrors.DimensionMismatch(4, 3)).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusBadRequest, w.Code)
				assert.Contains(w.Body.String(), "expected 4 features, got 3")
			},
		},
		{
			name: "inference unsupported",
			req:  httptest.NewRequest(http.MethodPost, "/api/v1/predictions", strings.NewReader(`{"dataset":"Wine","classifier":"SVM","sample":[1]}`)),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.PredictSample(gomock.Any(), gomock.Any()).Return(nil, dferrors.ErrInferenceUnsupported).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusBadRequest, w.Code)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			svc := mocks.NewMockService(ctl)
			w := httptest.NewRecorder()
			h := New(svc)

			tc.mock(svc.EXPECT())
			mockRouter(h).ServeHTTP(w, tc.req)
			tc.expect(t, w)
		})
	}
}

func TestHandlers_CreateBatchPrediction(t *testing.T) {
	readBatch := func(r io.Reader) (*inference.Table, error) {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}

		if string(b) != mockBatchCSV {
			return nil, fmt.Errorf("unexpected file %q", b)
		}

		return mockTable, nil
	}

	tests := []struct {
		name   string
		req    func(t *testing.T) *http.Request
		mock   func(ms *mocks.MockServiceMockRecorder)
		expect func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "unprocessable entity caused by query",
			req: func(t *testing.T) *http.Request {
				return mockMultipart(t, "/api/v1/predictions/batch", nil, mockBatchCSV)
			},
			mock: func(ms *mocks.MockServiceMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
			},
		},
		{
			name: "unprocessable entity caused by missing file",
			req: func(t *testing.T) *http.Request {
				return mockMultipart(t, "/api/v1/predictions/batch?classifier=KNN", nil, "")
			},
			mock: func(ms *mocks.MockServiceMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
			},
		},
		{
			name: "success with json",
			req: func(t *testing.T) *http.Request {
				return mockMultipart(t, "/api/v1/predictions/batch?classifier=KNN", nil, mockBatchCSV)
			},
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.PredictBatch(gomock.Any(), gomock.Eq(types.PredictBatchQuery{Classifier: "KNN"}), gomock.Any()).
					DoAndReturn(func(_ any, _ types.PredictBatchQuery, r io.Reader) (*inference.Table, error) {
						return readBatch(r)
					}).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)

				var table inference.Table
				assert.NoError(json.Unmarshal(w.Body.Bytes(), &table))
				assert.Equal(*mockTable, table)
			},
		},
		{
			name: "success with csv",
			req: func(t *testing.T) *http.Request {
				req := mockMultipart(t, "/api/v1/predictions/batch?classifier=KNN&dataset=Iris", nil, mockBatchCSV)
				req.Header.Set("Accept", MIMECSV)
				return req
			},
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.PredictBatch(gomock.Any(), gomock.Eq(types.PredictBatchQuery{Dataset: "Iris", Classifier: "KNN"}), gomock.Any()).
					DoAndReturn(func(_ any, _ types.PredictBatchQuery, r io.Reader) (*inference.Table, error) {
						return readBatch(r)
					}).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				assert.Equal(MIMECSV, w.Header().Get("Content-Type"))
				assert.Equal("sl,sw,pl,pw,Prediction\n5.1,3.5,1.4,0.2,setosa\n", w.Body.String())
			},
		},
		{
			name: "non-numeric input",
			req: func(t *testing.T) *http.Request {
				return mockMultipart(t, "/api/v1/predictions/batch?classifier=KNN", nil, "sl,sw,pl,pw\na,b,c,d\n")
			},
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.PredictBatch(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, dferrors.ErrNonNumericInput).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusBadRequest, w.Code)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			svc := mocks.NewMockService(ctl)
			w := httptest.NewRecorder()
			h := New(svc)

			tc.mock(svc.EXPECT())
			mockRouter(h).ServeHTTP(w, tc.req(t))
			tc.expect(t, w)
		})
	}
}
