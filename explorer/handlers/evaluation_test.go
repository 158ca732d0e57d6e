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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"d7y.io/explorer/explorer/service/mocks"
	"d7y.io/explorer/explorer/types"
	"d7y.io/explorer/internal/dferrors"
)

func TestHandlers_CreateEvaluation(t *testing.T) {
	k := 5
	tests := []struct {
		name   string
		req    *http.Request
		mock   func(ms *mocks.MockServiceMockRecorder)
		expect func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "unprocessable entity caused by body",
			req:  httptest.NewRequest(http.MethodPost, "/api/v1/evaluations", nil),
			mock: func(ms *mocks.MockServiceMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
			},
		},
		{
			name: "unprocessable entity caused by parameter range",
			req:  httptest.NewRequest(http.MethodPost, "/api/v1/evaluations", strings.NewReader(`{"dataset":"Iris","classifier":"KNN","K":16}`)),
			mock: func(ms *mocks.MockServiceMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
			},
		},
		{
			name: "success",
			req:  httptest.NewRequest(http.MethodPost, "/api/v1/evaluations", strings.NewReader(`{"dataset":"Iris","classifier":"KNN","K":5}`)),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.Evaluate(gomock.Any(), gomock.Eq(types.EvaluateRequest{
					Dataset:          "Iris",
					Classifier:       "KNN",
					ClassifierParams: types.ClassifierParams{K: &k},
				})).Return(mockIrisEvaluation, nil).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)

				var evaluation types.Evaluation
				assert.NoError(json.Unmarshal(w.Body.Bytes(), &evaluation))
				assert.Equal(*mockIrisEvaluation, evaluation)
			},
		},
		{
			name: "unknown classifier",
			req:  httptest.NewRequest(http.MethodPost, "/api/v1/evaluations", strings.NewReader(`{"dataset":"Iris","classifier":"Logistic"}`)),
			mock: func(ms *mocks.MockServiceMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
				assert.Contains(w.Body.String(), "'classifier' tag")
			},
		},
		{
			name: "degenerate parameter",
			req:  httptest.NewRequest(http.MethodPost, "/api/v1/evaluations", strings.NewReader(`{"dataset":"Wine","classifier":"KNN","K":15}`)),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.Evaluate(gomock.Any(), gomock.Any()).Return(nil, dferrors.ErrDegenerateParameter).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
				assert.Contains(w.Body.String(), dferrors.ErrDegenerateParameter.Error())
			},
		},
		{
			name: "dataset unavailable",
			req:  httptest.NewRequest(http.MethodPost, "/api/v1/evaluations", strings.NewReader(`{"dataset":"breast_cancer","classifier":"svm"}`)),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.Evaluate(gomock.Any(), gomock.Any()).Return(nil, dferrors.ErrDatasetUnavailable).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusServiceUnavailable, w.Code)
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
