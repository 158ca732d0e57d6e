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
	"d7y.io/explorer/explorer/classifier"
	"d7y.io/explorer/explorer/dataset"
)

type DatasetParams struct {
	ID string `uri:"id" binding:"required,dataset"`
}

type ClassifierParams struct {
	C           *float64 `json:"C,omitempty" form:"C" binding:"omitempty,gte=0.01,lte=10"`
	K           *int     `json:"K,omitempty" form:"K" binding:"omitempty,gte=1,lte=15"`
	MaxDepth    *int     `json:"max_depth,omitempty" form:"max_depth" binding:"omitempty,gte=2,lte=15"`
	NEstimators *int     `json:"n_estimators,omitempty" form:"n_estimators" binding:"omitempty,gte=1,lte=100"`
}

// Values returns the parameters which are set, keyed by classifier parameter name.
func (p ClassifierParams) Values() map[string]float64 {
	values := make(map[string]float64)
	if p.C != nil {
		values[classifier.ParamC] = *p.C
	}

	if p.K != nil {
		values[classifier.ParamK] = float64(*p.K)
	}

	if p.MaxDepth != nil {
		values[classifier.ParamMaxDepth] = float64(*p.MaxDepth)
	}

	if p.NEstimators != nil {
		values[classifier.ParamNEstimators] = float64(*p.NEstimators)
	}

	return values
}

type EvaluateRequest struct {
	Dataset    string `json:"dataset" form:"dataset" binding:"required,dataset"`
	Classifier string `json:"classifier" form:"classifier" binding:"required,classifier"`
	ClassifierParams
}

type Evaluation struct {
	Dataset                dataset.Summary    `json:"dataset"`
	Classifier             string             `json:"classifier"`
	Params                 map[string]float64 `json:"params"`
	Accuracy               float64            `json:"accuracy"`
	TrainSize              int                `json:"train_size"`
	TestSize               int                `json:"test_size"`
	ExplainedVarianceRatio []float64          `json:"explained_variance_ratio"`

	// Plot is the png of the projection, encoded as base64 in json.
	Plot []byte `json:"plot"`
}
