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

import "d7y.io/explorer/explorer/inference"

// ExploreRequest evaluates a selection and predicts the sample of the page.
type ExploreRequest struct {
	EvaluateRequest
	Sample []float64 `json:"sample"`
}

// Exploration holds an evaluation and the predictions of the classifier
// fitted by it.
type Exploration struct {
	Evaluation *Evaluation `json:"evaluation"`

	// Inference is set when the dataset accepts user samples.
	Inference   bool             `json:"inference"`
	Sample      []float64        `json:"sample,omitempty"`
	SampleClass string           `json:"sample_class,omitempty"`
	SampleError string           `json:"sample_error,omitempty"`
	Batch       *inference.Table `json:"batch,omitempty"`
	BatchError  string           `json:"batch_error,omitempty"`
}
