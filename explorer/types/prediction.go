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

type PredictSampleRequest struct {
	EvaluateRequest
	Sample []float64 `json:"sample" binding:"required"`
}

type SamplePrediction struct {
	Classifier string    `json:"classifier"`
	Accuracy   float64   `json:"accuracy"`
	Sample     []float64 `json:"sample"`
	Class      string    `json:"class"`
}

type PredictBatchQuery struct {
	Dataset    string `form:"dataset" binding:"omitempty,dataset"`
	Classifier string `form:"classifier" binding:"required,classifier"`
	ClassifierParams
}
