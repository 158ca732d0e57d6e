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

package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"d7y.io/explorer/internal/dferrors"
)

type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"errors,omitempty"`
}

func Error() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		err := c.Errors.Last()
		if err == nil || c.Writer.Written() {
			return
		}

		// Gin error handler
		if err.Type == gin.ErrorTypeBind {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Message: http.StatusText(http.StatusUnprocessableEntity),
				Error:   err.Error(),
			})
			return
		}

		status := StatusCode(err.Err)
		if status == http.StatusInternalServerError {
			c.JSON(status, ErrorResponse{
				Message: http.StatusText(status),
			})
			return
		}

		c.JSON(status, ErrorResponse{
			Message: http.StatusText(status),
			Error:   err.Error(),
		})
	}
}

// StatusCode maps an error kind to its http status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, dferrors.ErrDimensionMismatch),
		errors.Is(err, dferrors.ErrNonNumericInput),
		errors.Is(err, dferrors.ErrInferenceUnsupported):
		return http.StatusBadRequest
	case errors.Is(err, dferrors.ErrParameterOutOfRange),
		errors.Is(err, dferrors.ErrDegenerateParameter),
		errors.Is(err, dferrors.ErrDegenerateInput),
		errors.Is(err, dferrors.ErrUnknownDataset),
		errors.Is(err, dferrors.ErrUnknownClassifier):
		return http.StatusUnprocessableEntity
	case errors.Is(err, dferrors.ErrDatasetUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
