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
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"d7y.io/explorer/explorer/dataset"
	"d7y.io/explorer/explorer/service/mocks"
	"d7y.io/explorer/explorer/types"
	"d7y.io/explorer/internal/dferrors"
)

func TestHandlers_GetDatasets(t *testing.T) {
	tests := []struct {
		name   string
		req    *http.Request
		mock   func(ms *mocks.MockServiceMockRecorder)
		expect func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "success",
			req:  httptest.NewRequest(http.MethodGet, "/api/v1/datasets", nil),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.Datasets(gomock.Any()).Return([]dataset.Summary{
					mockIrisSummary,
					{ID: "breast_cancer", Name: "Breast Cancer"},
					mockWineSummary,
				}).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)

				var summaries []dataset.Summary
				assert.NoError(json.Unmarshal(w.Body.Bytes(), &summaries))
				assert.Equal([]dataset.Summary{mockIrisSummary, {ID: "breast_cancer", Name: "Breast Cancer"}, mockWineSummary}, summaries)
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

func TestHandlers_GetProjection(t *testing.T) {
	tests := []struct {
		name   string
		req    *http.Request
		mock   func(ms *mocks.MockServiceMockRecorder)
		expect func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "success",
			req:  httptest.NewRequest(http.MethodGet, "/api/v1/datasets/iris/projection.png", nil),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.Projection(gomock.Any(), gomock.Eq(types.DatasetParams{ID: "iris"})).Return([]byte("png"), nil).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				assert.Equal("image/png", w.Header().Get("Content-Type"))
				assert.Equal("png", w.Body.String())
			},
		},
		{
			name: "unknown dataset",
			req:  httptest.NewRequest(http.MethodGet, "/api/v1/datasets/digits/projection.png", nil),
			mock: func(ms *mocks.MockServiceMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
			},
		},
		{
			name: "dataset unavailable",
			req:  httptest.NewRequest(http.MethodGet, "/api/v1/datasets/wine/projection.png", nil),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.Projection(gomock.Any(), gomock.Eq(types.DatasetParams{ID: "wine"})).Return(nil, dferrors.ErrDatasetUnavailable).Times(1)
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
