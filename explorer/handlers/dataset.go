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
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-http-utils/headers"

	"d7y.io/explorer/explorer/types"
)

// @Summary Get Datasets
// @Description Get the built-in datasets and their shapes
// @Tags Dataset
// @Accept json
// @Produce json
// @Success 200 {object} []dataset.Summary
// @Failure 500
// @Router /datasets [get]
func (h *Handlers) GetDatasets(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.service.Datasets(ctx.Request.Context()))
}

// @Summary Get Projection
// @Description Get the 2-D principal component scatter plot of a dataset
// @Tags Dataset
// @Produce png
// @Param id path string true "id"
// @Success 200
// @Failure 422
// @Failure 500
// @Failure 503
// @Router /datasets/{id}/projection.png [get]
func (h *Handlers) GetProjection(ctx *gin.Context) {
	var params types.DatasetParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	plot, err := h.service.Projection(ctx.Request.Context(), params)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.Header(headers.CacheControl, "no-cache")
	ctx.Data(http.StatusOK, "image/png", plot)
}
