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
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"d7y.io/explorer/explorer/config"
	"d7y.io/explorer/explorer/dataset"
	"d7y.io/explorer/explorer/metrics"
	"d7y.io/explorer/explorer/router"
	"d7y.io/explorer/explorer/service"
	logger "d7y.io/explorer/internal/dflog"
	"d7y.io/explorer/pkg/dfpath"
)

type Server struct {
	// Server configuration.
	config *config.Config

	// REST server.
	restServer *http.Server

	// Metrics server.
	metricsServer *http.Server
}

func New(cfg *config.Config, d dfpath.Dfpath) (*Server, error) {
	s := &Server{config: cfg}

	// Initialize dataset provider.
	dir := cfg.Dataset.Dir
	if dir == "" {
		dir = d.DatasetDir()
	}
	provider := dataset.NewProvider(dir)
	logger.Infof("load external datasets from %s", dir)

	// Initialize REST server.
	r, err := router.Init(cfg, service.New(provider))
	if err != nil {
		return nil, err
	}
	s.restServer = &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.ListenIP.String(), strconv.Itoa(cfg.Server.Port)),
		Handler: r,
	}

	// Initialize metrics.
	if cfg.Metrics.Enable {
		s.metricsServer = metrics.New(&cfg.Metrics)
	}

	return s, nil
}

// Serve blocks until every server is closed.
func (s *Server) Serve() error {
	var eg errgroup.Group

	// Started metrics server.
	if s.metricsServer != nil {
		eg.Go(func() error {
			logger.Infof("started metrics server at %s", s.metricsServer.Addr)
			if err := s.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server closed unexpect: %w", err)
			}

			return nil
		})
	}

	// Started REST server.
	eg.Go(func() error {
		logger.Infof("started rest server at %s", s.restServer.Addr)
		if err := s.restServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("rest server closed unexpect: %w", err)
		}

		return nil
	})

	return eg.Wait()
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	// Stop REST server.
	if err := s.restServer.Shutdown(ctx); err != nil {
		logger.Errorf("rest server failed to stop: %s", err.Error())
	} else {
		logger.Info("rest server closed under request")
	}

	// Stop metrics server.
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(ctx); err != nil {
			logger.Errorf("metrics server failed to stop: %s", err.Error())
		} else {
			logger.Info("metrics server closed under request")
		}
	}
}
