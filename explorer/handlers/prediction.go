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
	"github.com/gin-gonic/gin/binding"
	"github.com/go-http-utils/headers"

	"d7y.io/explorer/explorer/types"
)

const (
	// MIMECSV is the media type of csv.
	MIMECSV = "text/csv"

	// FileFormField is the form field of uploaded csv files.
	FileFormField = "file"
)

// @Summary Create Prediction
// @Description Predict the class of one sample
// @Tags Prediction
// @Accept json
// @Produce json
// @Param Prediction body types.PredictSampleRequest true "Prediction"
// @Success 200 {object} types.SamplePrediction
// @Failure 400
// @Failure 422
// @Failure 500
// @Router /predictions [post]
func (h *Handlers) CreatePrediction(ctx *gin.Context) {
	var json types.PredictSampleRequest
	if err := ctx.ShouldBindJSON(&json); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	prediction, err := h.service.PredictSample(ctx.Request.Context(), json)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, prediction)
}

// @Summary Create Batch Prediction
// @Description Predict the class of every row of an uploaded csv file
// @Tags Prediction
// @Accept mpfd
// @Produce json,text/csv
// @Param classifier query string true "classifier"
// @Param dataset query string false "dataset"
// @Param file formData file true "csv file with a header row"
// @Success 200 {object} inference.Table
// @Failure 400
// @Failure 422
// @Failure 500
// @Router /predictions/batch [post]
func (h *Handlers) CreateBatchPrediction(ctx *gin.Context) {
	var query types.PredictBatchQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	fileHeader, err := ctx.FormFile(FileFormField)
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}
	defer file.Close()

	table, err := h.service.PredictBatch(ctx.Request.Context(), query, file)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	switch ctx.NegotiateFormat(binding.MIMEJSON, MIMECSV) {
	case MIMECSV:
		ctx.Header(headers.ContentType, MIMECSV)
		ctx.Header(headers.ContentDisposition, `attachment; filename="predictions.csv"`)
		ctx.Status(http.StatusOK)
		if err := table.WriteCSV(ctx.Writer); err != nil {
			ctx.Error(err) // nolint: errcheck
		}
	default:
		ctx.JSON(http.StatusOK, table)
	}
}
