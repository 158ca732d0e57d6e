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

package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/static"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/mcuadros/go-gin-prometheus"

	"d7y.io/explorer/explorer/config"
	"d7y.io/explorer/explorer/handlers"
	"d7y.io/explorer/explorer/middlewares"
	"d7y.io/explorer/explorer/service"
	"d7y.io/explorer/explorer/view"
	logger "d7y.io/explorer/internal/dflog"
)

const (
	PrometheusSubsystemName = "explorer_http"
)

func Init(cfg *config.Config, service service.Service) (*gin.Engine, error) {
	// Set mode.
	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	h := handlers.New(service)

	// Prometheus metrics.
	p := ginprometheus.NewPrometheus(PrometheusSubsystemName)
	// URL removes query string.
	// Prometheus metrics need to reduce label,
	// refer to https://prometheus.io/docs/practices/instrumentation/#do-not-overuse-labels.
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		return c.FullPath()
	}
	p.Use(r)

	// CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true

	// Middleware
	r.Use(gin.Recovery())
	r.Use(ginzap.Ginzap(logger.GinLogger.Desugar(), time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger.GinLogger.Desugar(), true))
	r.Use(middlewares.Error())
	r.Use(cors.New(corsConfig))
	r.MaxMultipartMemory = cfg.Server.MaxUploadSize

	// Explorer view.
	r.SetHTMLTemplate(view.Template())
	r.Use(static.Serve("/static", view.Static()))
	r.GET("/", middlewares.LimitBody(cfg.Server.MaxUploadSize), h.GetPage)
	r.POST("/", middlewares.LimitBody(cfg.Server.MaxUploadSize), h.PostPage)

	// Health Check.
	r.GET("/healthy", h.GetHealth)

	// Router
	apiv1 := r.Group("/api/v1")

	// Dataset
	ds := apiv1.Group("/datasets")
	ds.GET("", h.GetDatasets)
	ds.GET(":id/projection.png", h.GetProjection)

	// Evaluation
	ev := apiv1.Group("/evaluations")
	ev.POST("", h.CreateEvaluation)

	// Prediction
	pr := apiv1.Group("/predictions")
	pr.POST("", h.CreatePrediction)
	pr.POST("batch", middlewares.LimitBody(cfg.Server.MaxUploadSize), h.CreateBatchPrediction)

	return r, nil
}
