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

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"d7y.io/explorer/explorer/config"
)

func TestNew(t *testing.T) {
	assert := assert.New(t)
	cfg := &config.MetricsConfig{
		Addr: "localhost:8080",
	}
	server := New(cfg)
	assert.Equal(cfg.Addr, server.Addr)
	assert.IsType(&http.ServeMux{}, server.Handler)

	EvaluationCount.WithLabelValues("Iris", "KNN").Inc()

	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(http.StatusOK, w.Code)
	assert.Contains(w.Body.String(), "explorer_server_evaluation_total")
	assert.Contains(w.Body.String(), "explorer_server_version")
}
