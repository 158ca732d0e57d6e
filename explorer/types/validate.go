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

package types

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"d7y.io/explorer/explorer/classifier"
	"d7y.io/explorer/explorer/dataset"
)

const (
	// DatasetTag validates dataset names and slugs.
	DatasetTag = "dataset"

	// ClassifierTag validates classifier names and slugs.
	ClassifierTag = "classifier"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := RegisterValidations(v); err != nil {
			panic(err)
		}
	}
}

// RegisterValidations registers the dataset and classifier tags.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation(DatasetTag, validateDataset); err != nil {
		return err
	}

	return v.RegisterValidation(ClassifierTag, validateClassifier)
}

func validateDataset(fl validator.FieldLevel) bool {
	_, err := dataset.ParseID(fl.Field().String())
	return err == nil
}

func validateClassifier(fl validator.FieldLevel) bool {
	_, err := classifier.ParseKind(fl.Field().String())
	return err == nil
}
