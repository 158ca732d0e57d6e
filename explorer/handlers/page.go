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
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"d7y.io/explorer/explorer/classifier"
	"d7y.io/explorer/explorer/dataset"
	"d7y.io/explorer/explorer/types"
	"d7y.io/explorer/explorer/view"
	logger "d7y.io/explorer/internal/dflog"
)

// BatchAction predicts the uploaded csv file of the page.
const BatchAction = "batch"

// @Summary Get Page
// @Description Render the explorer page for the selected dataset and classifier
// @Tags Page
// @Produce html
// @Param dataset query string false "dataset"
// @Param classifier query string false "classifier"
// @Success 200
// @Failure 422
// @Router / [get]
func (h *Handlers) GetPage(ctx *gin.Context) {
	h.renderPage(ctx)
}

// @Summary Post Page
// @Description Render the explorer page after a sidebar change or an upload
// @Tags Page
// @Accept mpfd
// @Produce html
// @Success 200
// @Failure 422
// @Router / [post]
func (h *Handlers) PostPage(ctx *gin.Context) {
	h.renderPage(ctx)
}

func (h *Handlers) renderPage(ctx *gin.Context) {
	var req types.PageRequest
	if err := ctx.ShouldBind(&req); err != nil {
		page := view.NewPage(dataset.Iris, classifier.KNN)
		page.Controls = view.Controls(classifier.KNNParams{K: classifier.MinK})
		page.Error = err.Error()
		ctx.HTML(http.StatusUnprocessableEntity, view.IndexTemplate, page)
		return
	}

	var (
		batch    io.Reader
		batchErr error
	)
	if req.Action == BatchAction {
		file, err := uploadedFile(ctx)
		if err != nil {
			batchErr = err
		} else if file != nil {
			defer file.Close()
			batch = file
		}
	}

	page, err := h.page(ctx.Request.Context(), req, batch)
	if err != nil {
		ctx.HTML(http.StatusUnprocessableEntity, view.IndexTemplate, page)
		return
	}

	if page.Inference && batchErr != nil {
		page.BatchError = batchErr.Error()
	}

	ctx.HTML(http.StatusOK, view.IndexTemplate, page)
}

// page evaluates the selection and predicts the sample and the batch with
// the same fitted classifier. The page is always returned, an invalid
// selection is reported on it.
func (h *Handlers) page(ctx context.Context, req types.PageRequest, batch io.Reader) (*view.Page, error) {
	id, kind := dataset.Iris, classifier.KNN
	page := view.NewPage(id, kind)
	page.Controls = view.Controls(classifier.KNNParams{K: classifier.MinK})

	var err error
	if req.Dataset != "" {
		if id, err = dataset.ParseID(req.Dataset); err != nil {
			page.Error = err.Error()
			return page, err
		}
	}

	if req.Classifier != "" {
		if kind, err = classifier.ParseKind(req.Classifier); err != nil {
			page.Error = err.Error()
			return page, err
		}
	}

	page = view.NewPage(id, kind)
	params, err := classifier.ParseParams(kind, req.Values())
	if err != nil {
		defaults, _ := classifier.DefaultParams(kind)
		page.Controls = view.Controls(defaults)
		page.Error = err.Error()
		return page, err
	}
	page.Controls = view.Controls(params)

	exploration, err := h.service.Explore(ctx, types.ExploreRequest{
		EvaluateRequest: types.EvaluateRequest{
			Dataset:          id.String(),
			Classifier:       kind.String(),
			ClassifierParams: req.ClassifierParams,
		},
		Sample: req.Sample,
	}, batch)
	if err != nil {
		logger.Errorf("explore %s with %s failed: %s", id, kind, err.Error())
		page.Error = err.Error()
		return page, nil
	}

	page.Evaluation = exploration.Evaluation
	page.Summary = &exploration.Evaluation.Dataset
	if !exploration.Inference {
		return page, nil
	}

	page.Inference = true
	page.SampleNames = exploration.Evaluation.Dataset.FeatureNames
	page.Sample = make([]float64, len(page.SampleNames))
	copy(page.Sample, exploration.Sample)
	page.SampleClass = exploration.SampleClass
	page.SampleError = exploration.SampleError
	page.Batch = exploration.Batch
	page.BatchError = exploration.BatchError

	return page, nil
}

// uploadedFile opens the uploaded csv file, nil when no file is chosen.
func uploadedFile(ctx *gin.Context) (multipart.File, error) {
	fileHeader, err := ctx.FormFile(FileFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}

		return nil, err
	}

	return fileHeader.Open()
}
