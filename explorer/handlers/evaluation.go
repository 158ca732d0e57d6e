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

	"d7y.io/explorer/explorer/types"
)

// @Summary Create Evaluation
// @Description Train a classifier on a dataset and score it on the held-out split
// @Tags Evaluation
// @Accept json
// @Produce json
// @Param Evaluation body types.EvaluateRequest true "Evaluation"
// @Success 200 {object} types.Evaluation
// @Failure 422
// @Failure 500
// @Failure 503
// @Router /evaluations [post]
func (h *Handlers) CreateEvaluation(ctx *gin.Context) {
	var json types.EvaluateRequest
	if err := ctx.ShouldBindJSON(&json); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	evaluation, err := h.service.Evaluate(ctx.Request.Context(), json)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, evaluation)
}
