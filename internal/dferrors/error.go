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

package dferrors

import (
	"errors"
	"fmt"
)

// input errors
var (
	ErrDimensionMismatch    = errors.New("dimension mismatch")
	ErrNonNumericInput      = errors.New("non-numeric input")
	ErrParameterOutOfRange  = errors.New("parameter out of range")
	ErrDegenerateParameter  = errors.New("degenerate parameter")
	ErrDegenerateInput      = errors.New("degenerate input")
	ErrUnknownClassifier    = errors.New("unknown classifier")
	ErrUnknownDataset       = errors.New("unknown dataset")
	ErrInferenceUnsupported = errors.New("inference is not supported by dataset")
)

// internal errors
var (
	ErrMalformedDataset   = errors.New("malformed dataset")
	ErrDatasetUnavailable = errors.New("dataset unavailable")
	ErrNotFitted          = errors.New("classifier is not fitted")
)

// IsInputError reports whether err is caused by the caller input.
func IsInputError(err error) bool {
	for _, target := range []error{
		ErrDimensionMismatch,
		ErrNonNumericInput,
		ErrParameterOutOfRange,
		ErrDegenerateParameter,
		ErrDegenerateInput,
		ErrUnknownClassifier,
		ErrUnknownDataset,
		ErrInferenceUnsupported,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// DimensionMismatch returns an ErrDimensionMismatch with the expected and actual dimensions.
func DimensionMismatch(expected, actual int) error {
	return fmt.Errorf("%w: expected %d features, got %d", ErrDimensionMismatch, expected, actual)
}
