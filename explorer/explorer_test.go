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

package explorer

import (
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/phayes/freeport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"d7y.io/explorer/explorer/config"
	"d7y.io/explorer/pkg/dfpath"
)

func TestServer(t *testing.T) {
	port, err := freeport.GetFreePort()
	require.NoError(t, err)

	cfg := config.New()
	cfg.Server.ListenIP = net.IPv4(127, 0, 0, 1)
	cfg.Server.Port = port
	cfg.Dataset.Dir = "dataset/testdata"
	require.NoError(t, cfg.Validate())

	d, err := dfpath.New(dfpath.WithLogDir(t.TempDir()), dfpath.WithDataDir(t.TempDir()))
	require.NoError(t, err)

	svr, err := New(cfg, d)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- svr.Serve()
	}()

	url := fmt.Sprintf("http://127.0.0.1:%d/healthy", port)
	assert.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()

		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	svr.Stop()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
